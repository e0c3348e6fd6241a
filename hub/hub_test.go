// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orrery-viz/orrery/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestPublishReachesSubscriber(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// give the registration a moment to land
	time.Sleep(50 * time.Millisecond)

	ev := events.NewNode(events.NodeSelect, "n1")
	h.Publish(ev)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]any
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "nodeSelect", got["type"])
	assert.Equal(t, "n1", got["nodeId"])
}

func TestMultipleSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := httptest.NewServer(h)
	defer srv.Close()

	c1 := dial(t, srv)
	defer c1.Close()
	c2 := dial(t, srv)
	defer c2.Close()
	time.Sleep(50 * time.Millisecond)

	h.Publish(events.New(events.LayoutCalculated))

	for _, conn := range []*websocket.Conn{c1, c2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got map[string]any
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "layoutCalculated", got["type"])
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	h := NewHub()
	defer h.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			h.Publish(events.New(events.CameraMoved))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestPublishAfterClose(t *testing.T) {
	h := NewHub()
	h.Close()
	// must not panic or block
	h.Publish(events.New(events.CameraMoved))
}

func TestSubscriberDisconnect(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	time.Sleep(50 * time.Millisecond)
	conn.Close()
	time.Sleep(50 * time.Millisecond)

	// publishing after a disconnect must not panic
	h.Publish(events.New(events.CameraMoved))
}
