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

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/realtime/internal/hub"
)

type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	logger   *elog.Component
}

func NewHandler(h *hub.Hub) *Handler {
	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 跨域由网关层的 CORS 配置统一管理
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.GET("/ws", h.Upgrade)
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// Upgrade 升级为 WebSocket 连接并交给 hub 托管
func (h *Handler) Upgrade(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Error("升级WebSocket失败", elog.FieldErr(err))
		return
	}
	h.hub.Serve(conn)
}
