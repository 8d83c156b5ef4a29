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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/nayalc/beautyshop/internal/chat/internal/domain"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository/dao"
	"github.com/pkg/errors"
)

type Repository interface {
	GetOrCreate(ctx context.Context, uid int64) (domain.Conversation, error)
	FindByID(ctx context.Context, id int64) (domain.Conversation, error)
	CreateMessage(ctx context.Context, msg domain.Message, flipPending bool) (domain.Message, error)
	ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]domain.Message, error)
	CountMessages(ctx context.Context, conversationID int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ConversationStatus) (domain.Conversation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]domain.Conversation, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, uid int64) ([]domain.Conversation, error)
	UnreadCount(ctx context.Context) (int64, error)
}

type repository struct {
	dao dao.ChatDAO
}

func NewRepository(d dao.ChatDAO) Repository {
	return &repository{dao: d}
}

func (r *repository) GetOrCreate(ctx context.Context, uid int64) (domain.Conversation, error) {
	c, err := r.dao.GetOrCreate(ctx, uid)
	if err != nil {
		return domain.Conversation{}, errors.Wrap(err, "获取或创建会话失败")
	}
	return r.toConversation(c), nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (domain.Conversation, error) {
	c, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Conversation{}, err
	}
	return r.toConversation(c), nil
}

func (r *repository) CreateMessage(ctx context.Context, msg domain.Message, flipPending bool) (domain.Message, error) {
	created, err := r.dao.CreateMessage(ctx, dao.Message{
		ConversationId: msg.ConversationID,
		SenderId:       msg.SenderID,
		SenderType:     string(msg.SenderType),
		Content:        msg.Content,
	}, flipPending)
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "持久化消息失败")
	}
	return r.toMessage(created), nil
}

func (r *repository) ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]domain.Message, error) {
	msgs, err := r.dao.ListMessages(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(msgs, func(idx int, src dao.Message) domain.Message {
		return r.toMessage(src)
	}), nil
}

func (r *repository) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	return r.dao.CountMessages(ctx, conversationID)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status domain.ConversationStatus) (domain.Conversation, error) {
	c, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Conversation{}, err
	}
	return r.toConversation(c), nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.dao.Delete(ctx, id)
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]domain.Conversation, error) {
	cs, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(cs, func(idx int, src dao.Conversation) domain.Conversation {
		return r.toConversation(src)
	}), nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func (r *repository) ListByUser(ctx context.Context, uid int64) ([]domain.Conversation, error) {
	cs, err := r.dao.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(cs, func(idx int, src dao.Conversation) domain.Conversation {
		return r.toConversation(src)
	}), nil
}

func (r *repository) UnreadCount(ctx context.Context) (int64, error) {
	return r.dao.UnreadCount(ctx)
}

func (r *repository) toConversation(c dao.Conversation) domain.Conversation {
	return domain.Conversation{
		ID:     c.Id,
		Uid:    c.Uid,
		Status: domain.ConversationStatus(c.Status),
		Ctime:  c.Ctime,
		Utime:  c.Utime,
	}
}

func (r *repository) toMessage(m dao.Message) domain.Message {
	return domain.Message{
		ID:             m.Id,
		ConversationID: m.ConversationId,
		SenderID:       m.SenderId,
		SenderType:     domain.SenderType(m.SenderType),
		Content:        m.Content,
		Ctime:          m.Ctime,
	}
}
