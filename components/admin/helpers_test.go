package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)

// fakeClock fires timers only from Advance, never inside AfterFunc.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if t.stopped || t.fired || t.at.After(c.now) {
			continue
		}
		t.fired = true
		due = append(due, t.fn)
	}
	c.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// stubSource serves raw JSON per collection and fails for the rest.
type stubSource map[string]string

func (s stubSource) Collection(_ context.Context, name string) (json.RawMessage, error) {
	raw, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("stub: %s unavailable", name)
	}
	return json.RawMessage(raw), nil
}

type recordingHook struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (h *recordingHook) RecordChanged(_ context.Context, event ChangeEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHook) Events() []ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ChangeEvent(nil), h.events...)
}

func newTestService(t *testing.T, clock Clock, hooks ...RecordHook) *Service {
	t.Helper()
	validator, err := NewDatasetValidator()
	if err != nil {
		t.Fatalf("NewDatasetValidator returned error: %v", err)
	}
	service := NewService(Options{Clock: clock, Validator: validator, Hooks: hooks})
	if err := service.Reset(context.Background()); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	t.Cleanup(service.Close)
	return service
}

func seedChannels() []Channel {
	return []Channel{
		{ID: "1", Name: "Email", Description: "Pengiriman notifikasi melalui email", CreatedAt: testNow.AddDate(0, 0, -40)},
		{ID: "2", Name: "SMS", Description: "Pesan singkat ke nomor pelanggan", CreatedAt: testNow.AddDate(0, 0, -3)},
	}
}
