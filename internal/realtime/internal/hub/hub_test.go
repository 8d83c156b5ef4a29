// Copyright 2024 nayalc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		h.Serve(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func join(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Frame{Type: "join_room", Room: room}))
}

func waitForMembers(t *testing.T, h *Hub, room string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.rooms[room]) == want
	}, time.Second, 10*time.Millisecond)
}

func TestHub_RoomScopedBroadcast(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := startServer(t, h)

	c1 := dial(t, srv)
	c2 := dial(t, srv)
	join(t, c1, "conversation-1")
	join(t, c2, "conversation-2")
	waitForMembers(t, h, "conversation-1", 1)
	waitForMembers(t, h, "conversation-2", 1)

	h.Broadcast("conversation-1", map[string]any{
		"id":             int64(42),
		"conversationId": int64(1),
		"messageText":    "你好",
		"senderType":     "customer",
	})

	require.NoError(t, c1.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := c1.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, EnvelopeTypeMessage, env.Type)
	assert.Equal(t, "conversation-1", env.Room)
	payload, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "你好", payload["messageText"])

	// 不在房间里的连接收不到
	require.NoError(t, c2.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = c2.ReadMessage()
	assert.Error(t, err)
}

func TestHub_LeaveRoom(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := startServer(t, h)

	c1 := dial(t, srv)
	join(t, c1, "conversation-7")
	waitForMembers(t, h, "conversation-7", 1)

	require.NoError(t, c1.WriteJSON(Frame{Type: "leave_room", Room: "conversation-7"}))
	waitForMembers(t, h, "conversation-7", 0)

	h.Broadcast("conversation-7", map[string]any{"id": int64(1)})
	require.NoError(t, c1.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := c1.ReadMessage()
	assert.Error(t, err)
}

func TestHub_DisconnectCleansMembership(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := startServer(t, h)

	c1 := dial(t, srv)
	join(t, c1, "conversation-3")
	waitForMembers(t, h, "conversation-3", 1)

	require.NoError(t, c1.Close())
	waitForMembers(t, h, "conversation-3", 0)

	// 空房间的广播不应panic
	h.Broadcast("conversation-3", map[string]any{"id": int64(1)})
}
