package admin

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastFanOut(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelSecond()
	require.Equal(t, 2, hook.Subscribers())

	event := ChangeEvent{Collection: CollectionUsers, Action: ChangeCreated, ID: "1"}
	require.NoError(t, hook.RecordChanged(context.Background(), event))

	assert.Equal(t, event, <-first)
	assert.Equal(t, event, <-second)

	cancelFirst()
	cancelFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, hook.Subscribers())
}

func TestBroadcastDropsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+3; i++ {
		require.NoError(t, hook.RecordChanged(context.Background(), ChangeEvent{Action: ChangeUpdated}))
	}
	assert.Len(t, events, subscriberBuffer)
}

func TestBroadcastClose(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	hook.Close()
	cancel()

	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 0, hook.Subscribers())
}

func TestBroadcastServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hook.RecordChanged(context.Background(), ChangeEvent{Collection: CollectionChannels, Action: ChangeDeleted, ID: "4"}))

	var got ChangeEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ChangeDeleted, got.Action)
	assert.Equal(t, ID("4"), got.ID)
}

func TestBroadcastServeWebSocketUnsubscribesOnDisconnect(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hook.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastStreamEndsWhenReadFails(t *testing.T) {
	hook := NewBroadcastHook()
	readErr := make(chan struct{})
	read := func() (int, []byte, error) {
		<-readErr
		return 0, nil, errors.New("connection reset")
	}
	var written []ChangeEvent
	write := func(v any) error {
		written = append(written, v.(ChangeEvent))
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- hook.Stream(context.Background(), read, write) }()
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	close(readErr)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after read failed")
	}
	assert.Equal(t, 0, hook.Subscribers())
	assert.Empty(t, written)
}

func TestBroadcastStreamReturnsWriteError(t *testing.T) {
	hook := NewBroadcastHook()
	block := make(chan struct{})
	defer close(block)
	read := func() (int, []byte, error) {
		<-block
		return 0, nil, errors.New("closed")
	}
	writeErr := errors.New("broken pipe")
	write := func(any) error { return writeErr }

	done := make(chan error, 1)
	go func() { done <- hook.Stream(context.Background(), read, write) }()
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hook.RecordChanged(context.Background(), ChangeEvent{Collection: CollectionUsers, Action: ChangeUpdated, ID: "202"}))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, writeErr)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not return the write error")
	}
	assert.Equal(t, 0, hook.Subscribers())
}

func TestBroadcastServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hook.RecordChanged(context.Background(), ChangeEvent{Collection: CollectionUsers, Action: ChangeCreated}))

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: created\n", line)
}
