package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitClient(t *testing.T, ch <-chan *Client) *Client {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for disconnect")
		return nil
	}
}

func TestReconnectReplacesPreviousConnection(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	first := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	second := &Client{UserID: "u1", Send: make(chan []byte, 1)}

	m.Register <- first
	m.Register <- second

	// The replaced connection's send channel closes.
	_, open := <-first.Send
	assert.False(t, open)
	assert.True(t, m.IsOnline("u1"))
}

func TestStaleUnregisterDoesNotFireDisconnect(t *testing.T) {
	// On reconnect the old connection's read pump still exits and
	// unregisters its client. That late unregister must not run the
	// cleanup hook, or it would tear down the session the new connection
	// just started.
	m := NewManager()
	disconnects := make(chan *Client, 4)
	m.SetDisconnectHandler(func(c *Client) { disconnects <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	first := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	second := &Client{UserID: "u1", Send: make(chan []byte, 1)}

	m.Register <- first
	m.Register <- second

	// Old connection winds down after the replacement.
	m.Unregister <- first
	assert.True(t, m.IsOnline("u1"))

	m.Unregister <- second

	// Only the current connection's unregister reaches the hook.
	c := waitClient(t, disconnects)
	assert.Same(t, second, c)
	assert.Equal(t, 0, len(disconnects))
	assert.False(t, m.IsOnline("u1"))
}
