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

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/chat")
	g.POST("/list", ginx.B[ListConversationsReq](h.List))
	g.POST("/user", ginx.B[ListByUserReq](h.ListByUser))
	g.POST("/message/list", ginx.B[ListMessagesReq](h.ListMessages))
	g.POST("/message/send", ginx.BS[SendMessageReq](h.Send))
	g.POST("/status", ginx.B[SetStatusReq](h.SetStatus))
	g.POST("/delete", ginx.B[ConversationIDReq](h.Delete))
	g.GET("/unread", ginx.W(h.UnreadCount))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) List(ctx *ginx.Context, req ListConversationsReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	cs, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询会话列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListConversationsResp{
			Total: total,
			Conversations: slice.Map(cs, func(idx int, src domain.Conversation) Conversation {
				return toConversationVO(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) ListByUser(ctx *ginx.Context, req ListByUserReq) (ginx.Result, error) {
	cs, err := h.svc.ListByUser(ctx.Request.Context(), req.UserID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询用户会话失败: %w", err)
	}
	return ginx.Result{
		Data: slice.Map(cs, func(idx int, src domain.Conversation) Conversation {
			return toConversationVO(src)
		}),
	}, nil
}

func (h *AdminHandler) ListMessages(ctx *ginx.Context, req ListMessagesReq) (ginx.Result, error) {
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

// Send 客服发消息不校验会话归属
func (h *AdminHandler) Send(ctx *ginx.Context, req SendMessageReq, sess session.Session) (ginx.Result, error) {
	msg, err := h.svc.PostMessage(ctx.Request.Context(),
		req.ConversationID, sess.Claims().Uid,
		domain.SenderTypeAdmin, req.MessageText)
	switch {
	case err == nil:
		return ginx.Result{Data: toMessageVO(msg)}, nil
	case errors.Is(err, dao.ErrConversationNotFound):
		return conversationNotFoundResult, nil
	default:
		return systemErrorResult, fmt.Errorf("发送消息失败: %w", err)
	}
}

// SetStatus 置为closed会同时清理客户侧消息
func (h *AdminHandler) SetStatus(ctx *ginx.Context, req SetStatusReq) (ginx.Result, error) {
	c, err := h.svc.SetStatus(ctx.Request.Context(),
		req.ConversationID, domain.ConversationStatus(req.Status))
	switch {
	case err == nil:
		return ginx.Result{Data: toConversationVO(c)}, nil
	case errors.Is(err, service.ErrInvalidStatus):
		return invalidStatusResult, nil
	case errors.Is(err, dao.ErrConversationNotFound):
		return conversationNotFoundResult, nil
	default:
		return systemErrorResult, fmt.Errorf("更新会话状态失败: %w", err)
	}
}

func (h *AdminHandler) Delete(ctx *ginx.Context, req ConversationIDReq) (ginx.Result, error) {
	err := h.svc.Delete(ctx.Request.Context(), req.ConversationID)
	switch {
	case err == nil:
		return ginx.Result{}, nil
	case errors.Is(err, dao.ErrConversationNotFound):
		return conversationNotFoundResult, nil
	default:
		return systemErrorResult, fmt.Errorf("删除会话失败: %w", err)
	}
}

func (h *AdminHandler) UnreadCount(ctx *ginx.Context) (ginx.Result, error) {
	count, err := h.svc.UnreadCount(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询未读数失败: %w", err)
	}
	return ginx.Result{Data: UnreadCountResp{Count: count}}, nil
}
