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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/chat/internal/domain"
	"github.com/nayalc/beautyshop/internal/chat/internal/event"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository"
	"github.com/nayalc/beautyshop/internal/realtime"
	"github.com/nayalc/beautyshop/internal/user"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingUserID  = errors.New("缺少用户ID")
	ErrSenderMismatch = errors.New("发送者与会话归属不符")
	ErrInvalidStatus  = errors.New("非法的会话状态")
)

// MessagePayload 推送到 conversation-{id} 房间的事件体
type MessagePayload struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversationId"`
	SenderID       int64  `json:"senderId"`
	MessageText    string `json:"messageText"`
	SenderType     string `json:"senderType"`
	CreatedAt      int64  `json:"createdAt"`
}

//go:generate mockgen -source=./service.go -destination=../../mocks/chat.mock.go -package=chatmocks -typed=true Service
type Service interface {
	// GetOrCreate 返回uid名下非closed的会话，没有则新建，幂等
	GetOrCreate(ctx context.Context, uid int64) (domain.Conversation, error)
	Detail(ctx context.Context, id int64) (domain.Conversation, error)
	PostMessage(ctx context.Context, conversationID, senderID int64,
		senderType domain.SenderType, content string) (domain.Message, error)
	// ListMessages 按新到旧分页返回消息和总数
	ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]domain.Message, int64, error)
	SetStatus(ctx context.Context, id int64, status domain.ConversationStatus) (domain.Conversation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]domain.Conversation, int64, error)
	ListByUser(ctx context.Context, uid int64) ([]domain.Conversation, error)
	UnreadCount(ctx context.Context) (int64, error)
}

type service struct {
	repo        repository.Repository
	userSvc     user.Service
	producer    event.ChatMessageEventProducer
	broadcaster realtime.Broadcaster
	logger      *elog.Component
}

func NewService(repo repository.Repository,
	userSvc user.Service,
	producer event.ChatMessageEventProducer,
	broadcaster realtime.Broadcaster) Service {
	return &service{
		repo:        repo,
		userSvc:     userSvc,
		producer:    producer,
		broadcaster: broadcaster,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) GetOrCreate(ctx context.Context, uid int64) (domain.Conversation, error) {
	if uid <= 0 {
		return domain.Conversation{}, ErrMissingUserID
	}
	return s.repo.GetOrCreate(ctx, uid)
}

func (s *service) Detail(ctx context.Context, id int64) (domain.Conversation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) PostMessage(ctx context.Context, conversationID, senderID int64,
	senderType domain.SenderType, content string) (domain.Message, error) {
	c, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return domain.Message{}, err
	}
	// 客户只能往自己的会话里发，客服不受归属限制
	if senderType == domain.SenderTypeCustomer && senderID != c.Uid {
		return domain.Message{}, ErrSenderMismatch
	}
	flipPending := senderType == domain.SenderTypeCustomer
	msg, err := s.repo.CreateMessage(ctx, domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderType:     senderType,
		Content:        content,
	}, flipPending)
	if err != nil {
		return domain.Message{}, err
	}
	if flipPending {
		s.notifyAdmin(msg)
	}
	s.broadcast(msg)
	return msg, nil
}

// notifyAdmin 客户来消息后异步通知客服，失败只记日志
func (s *service) notifyAdmin(msg domain.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		evt := event.ChatMessageEvent{
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			Content:        msg.Content,
		}
		u, err := s.userSvc.FindByID(ctx, msg.SenderID)
		if err != nil {
			s.logger.Warn("查询消息发送者失败",
				elog.FieldErr(err),
				elog.Int64("uid", msg.SenderID))
		} else {
			evt.SenderName = u.FullName()
			evt.SenderEmail = u.Email
		}
		if err = s.producer.Produce(ctx, evt); err != nil {
			s.logger.Error("发送客服通知事件失败",
				elog.FieldErr(err),
				elog.Int64("conversationID", msg.ConversationID))
		}
	}()
}

// broadcast 消息已落库，推送失败或没有广播器都只记日志
func (s *service) broadcast(msg domain.Message) {
	if s.broadcaster == nil {
		s.logger.Warn("未配置实时广播器，跳过推送",
			elog.Int64("conversationID", msg.ConversationID))
		return
	}
	s.broadcaster.Broadcast(
		fmt.Sprintf("conversation-%d", msg.ConversationID),
		MessagePayload{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			MessageText:    msg.Content,
			SenderType:     string(msg.SenderType),
			CreatedAt:      msg.Ctime,
		})
}

func (s *service) ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]domain.Message, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	var (
		eg    errgroup.Group
		msgs  []domain.Message
		total int64
	)
	eg.Go(func() error {
		var err error
		msgs, err = s.repo.ListMessages(ctx, conversationID, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountMessages(ctx, conversationID)
		return err
	})
	return msgs, total, eg.Wait()
}

func (s *service) SetStatus(ctx context.Context, id int64, status domain.ConversationStatus) (domain.Conversation, error) {
	if !status.Valid() {
		return domain.Conversation{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Conversation, int64, error) {
	var (
		eg    errgroup.Group
		cs    []domain.Conversation
		total int64
	)
	eg.Go(func() error {
		var err error
		cs, err = s.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return s.enrich(ctx, cs), total, nil
}

func (s *service) ListByUser(ctx context.Context, uid int64) ([]domain.Conversation, error) {
	return s.repo.ListByUser(ctx, uid)
}

func (s *service) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.UnreadCount(ctx)
}

// enrich 补齐客户姓名邮箱，查询失败时降级为不带展示字段
func (s *service) enrich(ctx context.Context, cs []domain.Conversation) []domain.Conversation {
	if len(cs) == 0 {
		return cs
	}
	uids := make([]int64, 0, len(cs))
	seen := make(map[int64]struct{}, len(cs))
	for _, c := range cs {
		if _, ok := seen[c.Uid]; !ok {
			seen[c.Uid] = struct{}{}
			uids = append(uids, c.Uid)
		}
	}
	users, err := s.userSvc.FindByIDs(ctx, uids)
	if err != nil {
		s.logger.Warn("查询会话归属用户失败", elog.FieldErr(err))
		return cs
	}
	byID := make(map[int64]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range cs {
		if u, ok := byID[cs[i].Uid]; ok {
			cs[i].CustomerName = u.FullName()
			cs[i].CustomerEmail = u.Email
		}
	}
	return cs
}
