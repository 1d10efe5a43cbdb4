package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannelCollection(clock Clock, onChange ChangeFunc) *Collection[Channel] {
	c := NewCollection(ChannelDefinition(), CollectionOptions{Clock: clock, OnChange: onChange})
	c.Replace(seedChannels())
	return c
}

func TestCollectionCreatePrependsChannel(t *testing.T) {
	clock := newFakeClock(testNow)
	var events []ChangeEvent
	c := newChannelCollection(clock, func(_ context.Context, e ChangeEvent) { events = append(events, e) })

	created, err := c.Create(context.Background(), Channel{Name: "  Push  ", Description: " Notifikasi push aplikasi "})
	require.NoError(t, err)

	assert.Equal(t, "Push", created.Name)
	assert.Equal(t, "Notifikasi push aplikasi", created.Description)
	assert.Equal(t, ID("1744277400000"), created.ID)
	assert.Equal(t, testNow, created.CreatedAt)

	all := c.All()
	require.Len(t, all, 3)
	if all[0].ID != created.ID {
		t.Fatalf("expected new channel first, got %#v", all[0])
	}
	require.Len(t, events, 1)
	assert.Equal(t, ChangeCreated, events[0].Action)
	assert.Equal(t, "Push", events[0].Name)
}

func TestCollectionCreateAppendsCategoryWithUUID(t *testing.T) {
	clock := newFakeClock(testNow)
	c := NewCollection(CategoryDefinition(), CollectionOptions{Clock: clock})
	c.Replace([]Category{{ID: "a", Name: "Transaksi"}})

	created, err := c.Create(context.Background(), Category{Name: "Promo"})
	require.NoError(t, err)

	assert.Len(t, string(created.ID), 36)
	require.NotNil(t, created.CreatedAt)
	assert.Equal(t, testNow, *created.CreatedAt)
	all := c.All()
	assert.Equal(t, created.ID, all[len(all)-1].ID)
}

func TestCollectionTimestampIDsNeverCollide(t *testing.T) {
	clock := newFakeClock(testNow)
	c := NewCollection(UserDefinition(), CollectionOptions{Clock: clock})

	first, err := c.Create(context.Background(), User{Name: "Ani", Email: "ani@gmail.com", Phone: "0811"})
	require.NoError(t, err)
	second, err := c.Create(context.Background(), User{Name: "Banu", Email: "banu@gmail.com", Phone: "0812"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []ID{second.ID, first.ID}, []ID{c.All()[0].ID, c.All()[1].ID})
}

func TestCollectionRejectsDuplicateChannelName(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)

	_, err := c.Create(context.Background(), Channel{Name: "email", Description: "Saluran email kedua"})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	assert.Equal(t, "Nama channel sudah digunakan", verr.Fields["name"])
	assert.Len(t, c.All(), 2)
	_, hasBanner := c.Banner()
	assert.False(t, hasBanner)
}

func TestCollectionValidationMessages(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)

	_, err := c.Create(context.Background(), Channel{Name: "ab", Description: "pendek"})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Nama channel minimal 3 karakter", verr.Fields["name"])
	assert.Equal(t, "Deskripsi minimal 10 karakter", verr.Fields["description"])

	_, err = c.Create(context.Background(), Channel{Name: "   "})
	verr, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Nama channel wajib diisi", verr.Fields["name"])
	assert.Equal(t, "Deskripsi wajib diisi", verr.Fields["description"])
	assert.Contains(t, err.Error(), "admin: invalid channels")
}

func TestCollectionBannerAndNoticeExpire(t *testing.T) {
	clock := newFakeClock(testNow)
	c := newChannelCollection(clock, nil)

	_, err := c.Create(context.Background(), Channel{Name: "Telegram", Description: "Bot telegram resmi"})
	require.NoError(t, err)

	banner, ok := c.Banner()
	require.True(t, ok)
	assert.Equal(t, "Channel created successfully", banner.Message)
	assert.Equal(t, testNow.Add(5*time.Second), banner.ExpiresAt)
	notice, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, "Channel berhasil dibuat", notice.Message)

	clock.Advance(3 * time.Second)
	_, ok = c.Notice()
	assert.False(t, ok, "notice should expire after 3s")
	_, ok = c.Banner()
	assert.True(t, ok, "banner should outlive the notice")

	clock.Advance(2 * time.Second)
	_, ok = c.Banner()
	assert.False(t, ok, "banner should expire after 5s")
}

func TestCollectionSecondCreateRestartsBanner(t *testing.T) {
	clock := newFakeClock(testNow)
	c := NewCollection(CategoryDefinition(), CollectionOptions{Clock: clock})

	_, err := c.Create(context.Background(), Category{Name: "Satu"})
	require.NoError(t, err)
	clock.Advance(3 * time.Second)
	second, err := c.Create(context.Background(), Category{Name: "Dua"})
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	banner, ok := c.Banner()
	require.True(t, ok, "first timer must not clear the second banner")
	assert.Equal(t, second, banner.Data)

	clock.Advance(2 * time.Second)
	_, ok = c.Banner()
	assert.False(t, ok)
}

func TestCollectionDismissBanner(t *testing.T) {
	c := NewCollection(CategoryDefinition(), CollectionOptions{Clock: newFakeClock(testNow)})
	_, err := c.Create(context.Background(), Category{Name: "Promo"})
	require.NoError(t, err)

	c.DismissBanner()
	_, ok := c.Banner()
	assert.False(t, ok)
}

func TestCollectionEditLifecycle(t *testing.T) {
	clock := newFakeClock(testNow)
	c := newChannelCollection(clock, nil)

	draft, err := c.BeginEdit("2")
	require.NoError(t, err)
	assert.Equal(t, "SMS", draft.Name)
	assert.Equal(t, []ID{"2"}, c.Editing())

	clock.Advance(time.Hour)
	draft.Name = "SMS Gateway"
	saved, err := c.SaveEdit(context.Background(), "2", draft)
	require.NoError(t, err)

	assert.Equal(t, ID("2"), saved.ID)
	assert.Equal(t, testNow.AddDate(0, 0, -3), saved.CreatedAt)
	_, open := c.Draft("2")
	assert.False(t, open)
	got, _ := c.Get("2")
	assert.Equal(t, "SMS Gateway", got.Name)
	assert.Equal(t, 1, indexOf(c.All(), "2"), "edit must keep the position")

	notice, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, "Channel berhasil diperbarui", notice.Message)
}

func TestCollectionSaveEditKeepsOwnName(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)
	record, _ := c.Get("1")
	record.Description = "Email transaksional pelanggan"
	_, err := c.SaveEdit(context.Background(), "1", record)
	require.NoError(t, err)

	record.Name = "sms"
	_, err = c.SaveEdit(context.Background(), "1", record)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Nama channel sudah digunakan", verr.Fields["name"])
}

func TestCollectionCancelEdit(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)
	_, err := c.BeginEdit("1")
	require.NoError(t, err)

	c.CancelEdit("1")
	_, open := c.Draft("1")
	assert.False(t, open)
	got, _ := c.Get("1")
	assert.Equal(t, "Email", got.Name)
}

func TestCollectionDeleteRequiresConfirmation(t *testing.T) {
	var events []ChangeEvent
	c := newChannelCollection(newFakeClock(testNow), func(_ context.Context, e ChangeEvent) { events = append(events, e) })

	_, err := c.ConfirmDelete(context.Background(), "1")
	if !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("expected ErrNoPendingDelete, got %v", err)
	}

	req, err := c.RequestDelete("1")
	require.NoError(t, err)
	assert.Equal(t, DeleteRequest{ID: "1", Name: "Email"}, req)

	c.CancelDelete()
	_, pending := c.PendingDelete()
	assert.False(t, pending)
	assert.Len(t, c.All(), 2)

	_, err = c.RequestDelete("1")
	require.NoError(t, err)
	_, err = c.ConfirmDelete(context.Background(), "2")
	require.ErrorIs(t, err, ErrNoPendingDelete)

	removed, err := c.ConfirmDelete(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Email", removed.Name)
	assert.Len(t, c.All(), 1)
	_, pending = c.PendingDelete()
	assert.False(t, pending)

	require.Len(t, events, 1)
	assert.Equal(t, ChangeDeleted, events[0].Action)
	notice, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, "Channel berhasil dihapus", notice.Message)
}

func TestCollectionDeleteLeavesOtherDialog(t *testing.T) {
	var events []ChangeEvent
	c := newChannelCollection(newFakeClock(testNow), func(_ context.Context, e ChangeEvent) { events = append(events, e) })

	_, err := c.RequestDelete("1")
	require.NoError(t, err)

	removed, err := c.Delete(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "SMS", removed.Name)
	req, pending := c.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, ID("1"), req.ID)

	_, err = c.Delete(context.Background(), "1")
	require.NoError(t, err)
	_, pending = c.PendingDelete()
	assert.False(t, pending)
	assert.Zero(t, c.Len())
	require.Len(t, events, 2)

	_, err = c.Delete(context.Background(), "1")
	require.ErrorIs(t, err, ErrNotFound)
	c.Close()
	_, err = c.Delete(context.Background(), "1")
	require.ErrorIs(t, err, ErrClosed)
}

func TestCollectionUnknownID(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)

	_, err := c.BeginEdit("404")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.SaveEdit(context.Background(), "404", Channel{Name: "Baru", Description: "Deskripsi panjang"})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.RequestDelete("404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionClose(t *testing.T) {
	clock := newFakeClock(testNow)
	c := NewCollection(CategoryDefinition(), CollectionOptions{Clock: clock})
	_, err := c.Create(context.Background(), Category{Name: "Promo"})
	require.NoError(t, err)

	c.Close()
	_, ok := c.Banner()
	assert.False(t, ok)
	_, err = c.Create(context.Background(), Category{Name: "Lagi"})
	require.ErrorIs(t, err, ErrClosed)
	clock.Advance(time.Minute)
}

func TestCollectionReplaceClearsState(t *testing.T) {
	c := newChannelCollection(newFakeClock(testNow), nil)
	_, _ = c.BeginEdit("1")
	_, _ = c.RequestDelete("2")

	c.Replace(seedChannels()[:1])
	assert.Empty(t, c.Editing())
	_, pending := c.PendingDelete()
	assert.False(t, pending)
	assert.Equal(t, 1, c.Len())
}

func TestPaymentStampsImageAndUpdatedAt(t *testing.T) {
	clock := newFakeClock(testNow)
	c := NewCollection(PaymentDefinition(), CollectionOptions{Clock: clock})

	created, err := c.Create(context.Background(), PaymentMethod{Name: "OVO", Provider: "Mitra"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ImageURL, PlaceholderImageBase))
	assert.False(t, HasCustomImage(created))
	assert.Nil(t, created.UpdatedAt)

	clock.Advance(time.Minute)
	created.Provider = "WinPay"
	updated, err := c.SaveEdit(context.Background(), created.ID, created)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, testNow.Add(time.Minute), *updated.UpdatedAt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func indexOf(channels []Channel, id ID) int {
	for i, c := range channels {
		if c.ID == id {
			return i
		}
	}
	return -1
}
