package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// InsertMode decides where new records land in a collection.
type InsertMode int

const (
	// Append adds new records at the end.
	Append InsertMode = iota
	// Prepend adds new records at the front.
	Prepend
)

const (
	defaultBannerTimeout = 5 * time.Second
	defaultNoticeTimeout = 3 * time.Second
)

// Messages configures the feedback raised by mutations. Empty strings
// disable the corresponding banner or notice.
type Messages struct {
	Banner        string
	BannerTimeout time.Duration
	Created       string
	Updated       string
	Deleted       string
	NoticeTimeout time.Duration
}

// Definition parameterizes a Collection for one entity type.
type Definition[T any] struct {
	Name        string
	Insert      InsertMode
	IDs         IDGenerator
	GetID       func(T) ID
	SetID       func(*T, ID)
	DisplayName func(T) string
	// Normalize trims input and fills derived fields. It runs before the
	// collection lock is taken and may consult other collections.
	Normalize func(T) T
	// Stamp sets timestamps; prev is nil on create.
	Stamp func(record *T, prev *T, now time.Time)
	// Validate receives every other record of the collection.
	Validate func(record T, others []T) validation.Errors
	Search   SearchFunc[T]
	Facets   []Facet[T]
	Messages Messages
}

// ChangeFunc observes committed mutations.
type ChangeFunc func(ctx context.Context, event ChangeEvent)

// CollectionOptions carries the collaborators of a collection.
type CollectionOptions struct {
	Clock    Clock
	OnChange ChangeFunc
}

// Collection is an in-memory list of records with the list, create,
// edit and delete workflow shared by every admin page.
type Collection[T any] struct {
	def      Definition[T]
	clock    Clock
	onChange ChangeFunc

	mu          sync.RWMutex
	records     []T
	drafts      map[ID]T
	pending     *DeleteRequest
	banner      *Banner
	bannerTimer Timer
	bannerSeq   uint64
	notice      *Notice
	noticeTimer Timer
	noticeSeq   uint64
	closed      bool
}

// NewCollection builds an empty collection.
func NewCollection[T any](def Definition[T], opts CollectionOptions) *Collection[T] {
	if def.IDs == nil {
		def.IDs = TimestampIDs()
	}
	if def.Messages.BannerTimeout <= 0 {
		def.Messages.BannerTimeout = defaultBannerTimeout
	}
	if def.Messages.NoticeTimeout <= 0 {
		def.Messages.NoticeTimeout = defaultNoticeTimeout
	}
	return &Collection[T]{
		def:      def,
		clock:    normalizeClock(opts.Clock),
		onChange: opts.OnChange,
		drafts:   map[ID]T{},
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.def.Name }

// Definition exposes the entity definition.
func (c *Collection[T]) Definition() Definition[T] { return c.def }

// Replace swaps the records and clears drafts, dialogs and banners.
func (c *Collection[T]) Replace(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append([]T(nil), records...)
	c.drafts = map[ID]T{}
	c.pending = nil
	c.clearBannerLocked()
	c.clearNoticeLocked()
}

// All returns a copy of every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.records...)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Get looks a record up by id.
func (c *Collection[T]) Get(id ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.indexLocked(id); idx >= 0 {
		return c.records[idx], true
	}
	var zero T
	return zero, false
}

// List returns the records matching the filter.
func (c *Collection[T]) List(filter Filter) []T {
	records := c.All()
	return ApplyFilter(records, c.def.Search, c.def.Facets, filter, c.clock.Now())
}

// ActiveFacets counts non-default facet selections.
func (c *Collection[T]) ActiveFacets(filter Filter) int {
	return ActiveFacetCount(c.def.Facets, filter)
}

// DescribeFacets returns the filter panel for the current selection.
func (c *Collection[T]) DescribeFacets(filter Filter) []FacetInfo {
	return DescribeFacets(c.def.Facets, filter)
}

// Create validates draft and inserts it with a fresh id.
func (c *Collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	record := c.normalize(draft)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if err := c.validateLocked(record, ""); err != nil {
		c.mu.Unlock()
		return zero, err
	}
	now := c.clock.Now()
	id := c.def.IDs(now, func(candidate ID) bool { return c.indexLocked(candidate) >= 0 })
	c.def.SetID(&record, id)
	if c.def.Stamp != nil {
		c.def.Stamp(&record, nil, now)
	}
	if c.def.Insert == Prepend {
		c.records = append([]T{record}, c.records...)
	} else {
		c.records = append(c.records, record)
	}
	c.setBannerLocked(record, now)
	c.setNoticeLocked(ChangeCreated, c.def.Messages.Created, now)
	c.mu.Unlock()

	c.emit(ctx, ChangeCreated, record, now)
	return record, nil
}

// BeginEdit opens a draft holding the current values of a record.
func (c *Collection[T]) BeginEdit(id ID) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	idx := c.indexLocked(id)
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, c.def.Name, id)
	}
	draft := c.records[idx]
	c.drafts[id] = draft
	return draft, nil
}

// Draft returns the open edit draft for id.
func (c *Collection[T]) Draft(id ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	draft, ok := c.drafts[id]
	return draft, ok
}

// Editing lists ids with an open draft.
func (c *Collection[T]) Editing() []ID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]ID, 0, len(c.drafts))
	for _, record := range c.records {
		id := c.def.GetID(record)
		if _, ok := c.drafts[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SaveEdit validates draft and replaces the record with id in place.
// The id never changes; the draft is discarded on success.
func (c *Collection[T]) SaveEdit(ctx context.Context, id ID, draft T) (T, error) {
	var zero T
	record := c.normalize(draft)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, c.def.Name, id)
	}
	if err := c.validateLocked(record, id); err != nil {
		c.mu.Unlock()
		return zero, err
	}
	now := c.clock.Now()
	prev := c.records[idx]
	c.def.SetID(&record, id)
	if c.def.Stamp != nil {
		c.def.Stamp(&record, &prev, now)
	}
	c.records[idx] = record
	delete(c.drafts, id)
	c.setNoticeLocked(ChangeUpdated, c.def.Messages.Updated, now)
	c.mu.Unlock()

	c.emit(ctx, ChangeUpdated, record, now)
	return record, nil
}

// CancelEdit discards the draft for id without touching the record.
func (c *Collection[T]) CancelEdit(id ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, id)
}

// RequestDelete opens the confirmation dialog for id.
func (c *Collection[T]) RequestDelete(id ID) (DeleteRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return DeleteRequest{}, fmt.Errorf("%w: %s %s", ErrNotFound, c.def.Name, id)
	}
	req := DeleteRequest{ID: id}
	if c.def.DisplayName != nil {
		req.Name = c.def.DisplayName(c.records[idx])
	}
	c.pending = &req
	return req, nil
}

// PendingDelete returns the open confirmation dialog, if any.
func (c *Collection[T]) PendingDelete() (DeleteRequest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.pending == nil {
		return DeleteRequest{}, false
	}
	return *c.pending, true
}

// ConfirmDelete removes the record named by the open dialog.
func (c *Collection[T]) ConfirmDelete(ctx context.Context, id ID) (T, error) {
	var zero T
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if c.pending == nil || c.pending.ID != id {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s", ErrNoPendingDelete, c.def.Name, id)
	}
	c.pending = nil
	removed, now, err := c.removeLocked(id)
	c.mu.Unlock()
	if err != nil {
		return zero, err
	}
	c.emit(ctx, ChangeDeleted, removed, now)
	return removed, nil
}

// Delete removes a record without a confirmation step. An open dialog is
// closed only when it names the same record.
func (c *Collection[T]) Delete(ctx context.Context, id ID) (T, error) {
	var zero T
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	removed, now, err := c.removeLocked(id)
	if err == nil && c.pending != nil && c.pending.ID == id {
		c.pending = nil
	}
	c.mu.Unlock()
	if err != nil {
		return zero, err
	}
	c.emit(ctx, ChangeDeleted, removed, now)
	return removed, nil
}

func (c *Collection[T]) removeLocked(id ID) (T, time.Time, error) {
	var zero T
	idx := c.indexLocked(id)
	if idx < 0 {
		return zero, time.Time{}, fmt.Errorf("%w: %s %s", ErrNotFound, c.def.Name, id)
	}
	removed := c.records[idx]
	c.records = append(c.records[:idx:idx], c.records[idx+1:]...)
	delete(c.drafts, id)
	now := c.clock.Now()
	c.setNoticeLocked(ChangeDeleted, c.def.Messages.Deleted, now)
	return removed, now, nil
}

// CancelDelete closes the dialog without mutating the collection.
func (c *Collection[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Banner returns the success payload of the last create while it is live.
func (c *Collection[T]) Banner() (Banner, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.banner == nil {
		return Banner{}, false
	}
	return *c.banner, true
}

// DismissBanner clears the banner before its timer fires.
func (c *Collection[T]) DismissBanner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBannerLocked()
}

// Notice returns the live toast, if any.
func (c *Collection[T]) Notice() (Notice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.notice == nil {
		return Notice{}, false
	}
	return *c.notice, true
}

// Close stops pending timers; mutations fail afterwards.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.clearBannerLocked()
	c.clearNoticeLocked()
}

func (c *Collection[T]) normalize(draft T) T {
	if c.def.Normalize == nil {
		return draft
	}
	return c.def.Normalize(draft)
}

func (c *Collection[T]) validateLocked(record T, exclude ID) error {
	if c.def.Validate == nil {
		return nil
	}
	others := make([]T, 0, len(c.records))
	for _, existing := range c.records {
		if exclude != "" && c.def.GetID(existing) == exclude {
			continue
		}
		others = append(others, existing)
	}
	return newValidationError(c.def.Name, c.def.Validate(record, others))
}

func (c *Collection[T]) indexLocked(id ID) int {
	if id == "" {
		return -1
	}
	for i, record := range c.records {
		if c.def.GetID(record) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) setBannerLocked(record T, now time.Time) {
	msg := c.def.Messages.Banner
	if msg == "" {
		return
	}
	c.clearBannerLocked()
	c.bannerSeq++
	seq := c.bannerSeq
	timeout := c.def.Messages.BannerTimeout
	c.banner = &Banner{
		Status:    "success",
		Message:   msg,
		Data:      record,
		ExpiresAt: now.Add(timeout),
	}
	c.bannerTimer = c.clock.AfterFunc(timeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.bannerSeq != seq {
			return
		}
		c.banner = nil
		c.bannerTimer = nil
	})
}

func (c *Collection[T]) clearBannerLocked() {
	if c.bannerTimer != nil {
		c.bannerTimer.Stop()
		c.bannerTimer = nil
	}
	c.banner = nil
	c.bannerSeq++
}

func (c *Collection[T]) setNoticeLocked(action ChangeAction, msg string, now time.Time) {
	if msg == "" {
		return
	}
	c.clearNoticeLocked()
	c.noticeSeq++
	seq := c.noticeSeq
	timeout := c.def.Messages.NoticeTimeout
	c.notice = &Notice{Kind: string(action), Message: msg, ExpiresAt: now.Add(timeout)}
	c.noticeTimer = c.clock.AfterFunc(timeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.noticeSeq != seq {
			return
		}
		c.notice = nil
		c.noticeTimer = nil
	})
}

func (c *Collection[T]) clearNoticeLocked() {
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
		c.noticeTimer = nil
	}
	c.notice = nil
	c.noticeSeq++
}

func (c *Collection[T]) emit(ctx context.Context, action ChangeAction, record T, now time.Time) {
	if c.onChange == nil {
		return
	}
	event := ChangeEvent{
		Collection: c.def.Name,
		Action:     action,
		ID:         c.def.GetID(record),
		At:         now,
	}
	if c.def.DisplayName != nil {
		event.Name = c.def.DisplayName(record)
	}
	c.onChange(ctx, event)
}
