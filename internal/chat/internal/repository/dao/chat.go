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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("会话未找到")

const (
	statusOpen         = "open"
	statusPendingAdmin = "pending_admin_response"
	statusClosed       = "closed"
)

type Conversation struct {
	Id     int64  `gorm:"primaryKey;autoIncrement;comment:会话自增ID"`
	Uid    int64  `gorm:"not null;index:idx_uid;comment:归属用户ID"`
	Status string `gorm:"type:varchar(32);not null;default:'open';index:idx_status;comment:open|pending_admin_response|closed"`
	Ctime  int64
	Utime  int64 `gorm:"index:idx_utime"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	Id             int64  `gorm:"primaryKey;autoIncrement;comment:消息自增ID"`
	ConversationId int64  `gorm:"not null;index:idx_conversation_id;comment:所属会话ID"`
	SenderId       int64  `gorm:"not null;comment:发送者用户ID"`
	SenderType     string `gorm:"type:varchar(16);not null;comment:customer|admin"`
	Content        string `gorm:"type:text;not null;comment:消息正文"`
	Ctime          int64
}

func (Message) TableName() string {
	return "messages"
}

type ChatDAO interface {
	// GetOrCreate 返回uid名下非closed的会话，没有则新建一个open会话
	GetOrCreate(ctx context.Context, uid int64) (Conversation, error)
	FindByID(ctx context.Context, id int64) (Conversation, error)
	// CreateMessage flipPending为true时同一事务内把会话置为pending_admin_response并刷新utime
	CreateMessage(ctx context.Context, msg Message, flipPending bool) (Message, error)
	ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]Message, error)
	CountMessages(ctx context.Context, conversationID int64) (int64, error)
	// UpdateStatus 置为closed时同一事务内删除会话归属用户发的全部消息
	UpdateStatus(ctx context.Context, id int64, status string) (Conversation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]Conversation, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, uid int64) ([]Conversation, error)
	// UnreadCount 等待客服回复的会话里客户消息的总数
	UnreadCount(ctx context.Context) (int64, error)
}

type chatDAO struct {
	db *egorm.Component
}

func NewChatGORMDAO(db *egorm.Component) ChatDAO {
	return &chatDAO{db: db}
}

func (g *chatDAO) GetOrCreate(ctx context.Context, uid int64) (Conversation, error) {
	var c Conversation
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("uid = ? AND status != ?", uid, statusClosed).
			Order("id DESC").First(&c).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		now := time.Now().UnixMilli()
		c = Conversation{
			Uid:    uid,
			Status: statusOpen,
			Ctime:  now,
			Utime:  now,
		}
		return tx.Create(&c).Error
	})
	return c, err
}

func (g *chatDAO) FindByID(ctx context.Context, id int64) (Conversation, error) {
	var c Conversation
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Conversation{}, ErrConversationNotFound
	}
	return c, err
}

func (g *chatDAO) CreateMessage(ctx context.Context, msg Message, flipPending bool) (Message, error) {
	now := time.Now().UnixMilli()
	msg.Ctime = now
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		if !flipPending {
			return nil
		}
		return tx.Model(&Conversation{}).
			Where("id = ?", msg.ConversationId).
			Updates(map[string]any{
				"status": statusPendingAdmin,
				"utime":  now,
			}).Error
	})
	return msg, err
}

func (g *chatDAO) ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]Message, error) {
	var msgs []Message
	err := g.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (g *chatDAO) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	return count, err
}

func (g *chatDAO) UpdateStatus(ctx context.Context, id int64, status string) (Conversation, error) {
	var c Conversation
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		if err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		err = tx.Model(&Conversation{}).Where("id = ?", id).
			Updates(map[string]any{
				"status": status,
				"utime":  now,
			}).Error
		if err != nil {
			return err
		}
		c.Status, c.Utime = status, now
		if status != statusClosed {
			return nil
		}
		// 关闭即清理客户侧消息，客服消息留档
		return tx.Where("conversation_id = ? AND sender_id = ?", id, c.Uid).
			Delete(&Message{}).Error
	})
	return c, err
}

func (g *chatDAO) Delete(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Conversation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
}

func (g *chatDAO) List(ctx context.Context, offset, limit int) ([]Conversation, error) {
	var cs []Conversation
	err := g.db.WithContext(ctx).
		Order("utime DESC").
		Offset(offset).Limit(limit).
		Find(&cs).Error
	return cs, err
}

func (g *chatDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Conversation{}).Count(&count).Error
	return count, err
}

func (g *chatDAO) ListByUser(ctx context.Context, uid int64) ([]Conversation, error) {
	var cs []Conversation
	err := g.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("utime DESC").
		Find(&cs).Error
	return cs, err
}

func (g *chatDAO) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.status = ? AND messages.sender_type = ?",
			statusPendingAdmin, "customer").
		Count(&count).Error
	return count, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Conversation{}, &Message{})
}
