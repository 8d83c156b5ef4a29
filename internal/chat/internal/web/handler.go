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
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/nayalc/beautyshop/internal/chat/internal/domain"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/chat/internal/service"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/chat")
	g.POST("/conversation", ginx.S(h.GetOrCreate))
	g.POST("/message/send", ginx.BS[SendMessageReq](h.Send))
	g.POST("/message/list", ginx.BS[ListMessagesReq](h.ListMessages))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// GetOrCreate 返回当前用户的会话，没有非closed会话时新建一个
func (h *Handler) GetOrCreate(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	c, err := h.svc.GetOrCreate(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		if errors.Is(err, service.ErrMissingUserID) {
			return missingUserIDResult, nil
		}
		return systemErrorResult, fmt.Errorf("获取会话失败: %w", err)
	}
	return ginx.Result{Data: toConversationVO(c)}, nil
}

func (h *Handler) Send(ctx *ginx.Context, req SendMessageReq, sess session.Session) (ginx.Result, error) {
	msg, err := h.svc.PostMessage(ctx.Request.Context(),
		req.ConversationID, sess.Claims().Uid,
		domain.SenderTypeCustomer, req.MessageText)
	switch {
	case err == nil:
		return ginx.Result{Data: toMessageVO(msg)}, nil
	case errors.Is(err, dao.ErrConversationNotFound):
		return conversationNotFoundResult, nil
	case errors.Is(err, service.ErrSenderMismatch):
		return senderMismatchResult, nil
	default:
		return systemErrorResult, fmt.Errorf("发送消息失败: %w", err)
	}
}

// ListMessages 只能翻自己会话的消息
func (h *Handler) ListMessages(ctx *ginx.Context, req ListMessagesReq, sess session.Session) (ginx.Result, error) {
	c, err := h.svc.Detail(ctx.Request.Context(), req.ConversationID)
	if err != nil {
		if errors.Is(err, dao.ErrConversationNotFound) {
			return conversationNotFoundResult, nil
		}
		return systemErrorResult, fmt.Errorf("查询会话失败: %w", err)
	}
	if c.Uid != sess.Claims().Uid {
		return senderMismatchResult, nil
	}
	msgs, total, err := h.svc.ListMessages(ctx.Request.Context(),
		req.ConversationID, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询消息失败: %w", err)
	}
	return ginx.Result{
		Data: ListMessagesResp{
			Total: total,
			Messages: slice.Map(msgs, func(idx int, src domain.Message) Message {
				return toMessageVO(src)
			}),
		},
	}, nil
}
