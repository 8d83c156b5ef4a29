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
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gotomicro/ego/core/elog"
)

// Broadcaster 房间级广播。投递语义为至多一次：
// 只推给当下在房间里的连接，不补发历史，历史靠分页接口拉取
type Broadcaster interface {
	Broadcast(room string, event any)
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// 客户端只发 join_room/leave_room 控制帧，消息本体走 HTTP
	maxMessageSize = 512
	sendBufferSize = 64
)

// Frame 客户端控制帧
type Frame struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

const (
	frameJoinRoom  = "join_room"
	frameLeaveRoom = "leave_room"
)

// Envelope 推给客户端的事件信封
type Envelope struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data any    `json:"data"`
}

const EnvelopeTypeMessage = "message"

type Hub struct {
	logger *elog.Component

	mu     sync.RWMutex
	rooms  map[string]map[*subscriber]struct{}
	subs   map[*subscriber]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		logger: elog.DefaultLogger,
		rooms:  make(map[string]map[*subscriber]struct{}),
		subs:   make(map[*subscriber]struct{}),
	}
}

var _ Broadcaster = (*Hub)(nil)

// Broadcast 向房间内所有连接推送事件。
// 发送缓冲已满的连接直接丢弃本条，绝不阻塞调用方
func (h *Hub) Broadcast(room string, event any) {
	data, err := json.Marshal(Envelope{
		Type: EnvelopeTypeMessage,
		Room: room,
		Data: event,
	})
	if err != nil {
		h.logger.Error("序列化广播事件失败",
			elog.FieldErr(err),
			elog.String("room", room))
		return
	}
	h.mu.RLock()
	members := h.rooms[room]
	targets := make([]*subscriber, 0, len(members))
	for sub := range members {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()
	for _, sub := range targets {
		select {
		case sub.send <- data:
		default:
			h.logger.Warn("连接发送缓冲已满，丢弃消息",
				elog.String("room", room))
		}
	}
}

// Serve 接管一条已升级的 WebSocket 连接，阻塞到连接关闭
func (h *Hub) Serve(conn *websocket.Conn) {
	sub := &subscriber{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		done:  make(chan struct{}),
		rooms: make(map[string]struct{}),
	}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go sub.writePump()
	sub.readPump()
}

// Close 关闭所有连接，之后的 Serve 调用直接断开
func (h *Hub) Close() error {
	h.mu.Lock()
	h.closed = true
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()
	for _, sub := range subs {
		_ = sub.conn.Close()
	}
	return nil
}

func (h *Hub) join(sub *subscriber, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*subscriber]struct{})
		h.rooms[room] = members
	}
	members[sub] = struct{}{}
	sub.rooms[room] = struct{}{}
}

func (h *Hub) leave(sub *subscriber, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(sub, room)
}

func (h *Hub) leaveLocked(sub *subscriber, room string) {
	delete(sub.rooms, room)
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, sub)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// unregister 断开后静默清理全部房间成员关系
func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range sub.rooms {
		h.leaveLocked(sub, room)
	}
	delete(h.subs, sub)
}

type subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	// send 永不关闭，Broadcast 可能在注销后仍持有引用
	send chan []byte
	done chan struct{}
	// rooms 由 hub.mu 保护
	rooms map[string]struct{}
}

func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister(s)
		close(s.done)
		_ = s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame Frame
		if err = json.Unmarshal(data, &frame); err != nil {
			s.hub.logger.Warn("非法控制帧", elog.FieldErr(err))
			continue
		}
		switch frame.Type {
		case frameJoinRoom:
			s.hub.join(s, frame.Room)
		case frameLeaveRoom:
			s.hub.leave(s, frame.Room)
		}
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case data := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
