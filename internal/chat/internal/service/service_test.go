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
	"sync"
	"testing"
	"time"

	"github.com/nayalc/beautyshop/internal/chat/internal/domain"
	"github.com/nayalc/beautyshop/internal/chat/internal/event"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/realtime"
	"github.com/nayalc/beautyshop/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	mu            sync.Mutex
	nextConvID    int64
	nextMsgID     int64
	conversations map[int64]domain.Conversation
	messages      map[int64][]domain.Message
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextConvID:    1,
		nextMsgID:     1,
		conversations: make(map[int64]domain.Conversation),
		messages:      make(map[int64][]domain.Message),
	}
}

func (f *fakeRepository) GetOrCreate(ctx context.Context, uid int64) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conversations {
		if c.Uid == uid && c.Status != domain.ConversationStatusClosed {
			return c, nil
		}
	}
	c := domain.Conversation{
		ID:     f.nextConvID,
		Uid:    uid,
		Status: domain.ConversationStatusOpen,
		Ctime:  time.Now().UnixMilli(),
		Utime:  time.Now().UnixMilli(),
	}
	f.nextConvID++
	f.conversations[c.ID] = c
	return c, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id int64) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conversations[id]
	if !ok {
		return domain.Conversation{}, dao.ErrConversationNotFound
	}
	return c, nil
}

func (f *fakeRepository) CreateMessage(ctx context.Context, msg domain.Message, flipPending bool) (domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = f.nextMsgID
	f.nextMsgID++
	msg.Ctime = time.Now().UnixMilli()
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], msg)
	if flipPending {
		c := f.conversations[msg.ConversationID]
		c.Status = domain.ConversationStatusPendingAdmin
		c.Utime = msg.Ctime
		f.conversations[msg.ConversationID] = c
	}
	return msg, nil
}

func (f *fakeRepository) ListMessages(ctx context.Context, conversationID int64, offset, limit int) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.messages[conversationID]
	res := make([]domain.Message, 0, limit)
	for i := len(msgs) - 1 - offset; i >= 0 && len(res) < limit; i-- {
		res = append(res, msgs[i])
	}
	return res, nil
}

func (f *fakeRepository) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.messages[conversationID])), nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id int64, status domain.ConversationStatus) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conversations[id]
	if !ok {
		return domain.Conversation{}, dao.ErrConversationNotFound
	}
	c.Status = status
	c.Utime = time.Now().UnixMilli()
	f.conversations[id] = c
	if status == domain.ConversationStatusClosed {
		kept := make([]domain.Message, 0)
		for _, m := range f.messages[id] {
			if m.SenderID != c.Uid {
				kept = append(kept, m)
			}
		}
		f.messages[id] = kept
	}
	return c, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.conversations[id]; !ok {
		return dao.ErrConversationNotFound
	}
	delete(f.conversations, id)
	delete(f.messages, id)
	return nil
}

func (f *fakeRepository) List(ctx context.Context, offset, limit int) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]domain.Conversation, 0, len(f.conversations))
	for _, c := range f.conversations {
		res = append(res, c)
	}
	return res, nil
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.conversations)), nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, uid int64) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]domain.Conversation, 0)
	for _, c := range f.conversations {
		if c.Uid == uid {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeRepository) UnreadCount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for id, c := range f.conversations {
		if c.Status != domain.ConversationStatusPendingAdmin {
			continue
		}
		for _, m := range f.messages[id] {
			if m.SenderType == domain.SenderTypeCustomer {
				count++
			}
		}
	}
	return count, nil
}

type broadcastCall struct {
	room  string
	event any
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (f *fakeBroadcaster) Broadcast(room string, event any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{room: room, event: event})
}

func (f *fakeBroadcaster) Calls() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]broadcastCall(nil), f.calls...)
}

type fakeProducer struct {
	events chan event.ChatMessageEvent
}

func (f *fakeProducer) Produce(ctx context.Context, evt event.ChatMessageEvent) error {
	f.events <- evt
	return nil
}

type fakeUserService struct{}

func (f *fakeUserService) FindByID(ctx context.Context, id int64) (user.User, error) {
	return user.User{
		ID:        id,
		FirstName: "梅",
		LastName:  "林",
		Email:     "mei@example.com",
	}, nil
}

func (f *fakeUserService) FindByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	res := make([]user.User, 0, len(ids))
	for _, id := range ids {
		u, _ := f.FindByID(ctx, id)
		res = append(res, u)
	}
	return res, nil
}

func newTestService(broadcaster *fakeBroadcaster, producer *fakeProducer) (Service, *fakeRepository) {
	repo := newFakeRepository()
	var b realtime.Broadcaster
	if broadcaster != nil {
		b = broadcaster
	}
	return NewService(repo, &fakeUserService{}, producer, b), repo
}

func TestService_GetOrCreate(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(&fakeBroadcaster{}, &fakeProducer{events: make(chan event.ChatMessageEvent, 8)})
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, 0)
	assert.ErrorIs(t, err, ErrMissingUserID)

	c1, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)

	// 幂等：再取一次是同一个会话
	c2, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)

	// 关闭后再取会新建
	_, err = svc.SetStatus(ctx, c1.ID, domain.ConversationStatusClosed)
	require.NoError(t, err)
	c3, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c3.ID)
}

func TestService_PostMessage(t *testing.T) {
	t.Parallel()
	broadcaster := &fakeBroadcaster{}
	producer := &fakeProducer{events: make(chan event.ChatMessageEvent, 8)}
	svc, _ := newTestService(broadcaster, producer)
	ctx := context.Background()

	c, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, 999, 7, domain.SenderTypeCustomer, "在吗")
	assert.ErrorIs(t, err, dao.ErrConversationNotFound)

	_, err = svc.PostMessage(ctx, c.ID, 8, domain.SenderTypeCustomer, "在吗")
	assert.ErrorIs(t, err, ErrSenderMismatch)

	msg, err := svc.PostMessage(ctx, c.ID, 7, domain.SenderTypeCustomer, "这个精华液有现货吗")
	require.NoError(t, err)
	assert.Equal(t, domain.SenderTypeCustomer, msg.SenderType)

	// 客户消息翻转会话状态
	detail, err := svc.Detail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationStatusPendingAdmin, detail.Status)

	// 落库后推送到对应房间
	calls := broadcaster.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "conversation-1", calls[0].room)
	payload, ok := calls[0].event.(MessagePayload)
	require.True(t, ok)
	assert.Equal(t, "这个精华液有现货吗", payload.MessageText)
	assert.Equal(t, "customer", payload.SenderType)

	// 异步客服通知带上了用户姓名邮箱
	select {
	case evt := <-producer.events:
		assert.Equal(t, c.ID, evt.ConversationID)
		assert.Equal(t, "梅 林", evt.SenderName)
		assert.Equal(t, "mei@example.com", evt.SenderEmail)
	case <-time.After(time.Second):
		t.Fatal("等待客服通知事件超时")
	}

	// 客服回复不翻转状态，也不发客服通知
	_, err = svc.PostMessage(ctx, c.ID, 100, domain.SenderTypeAdmin, "有的")
	require.NoError(t, err)
	detail, err = svc.Detail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationStatusPendingAdmin, detail.Status)
	assert.Len(t, broadcaster.Calls(), 2)
	select {
	case <-producer.events:
		t.Fatal("客服消息不应产生客服通知事件")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestService_PostMessage_NilBroadcaster(t *testing.T) {
	t.Parallel()
	producer := &fakeProducer{events: make(chan event.ChatMessageEvent, 8)}
	svc, _ := newTestService(nil, producer)
	ctx := context.Background()

	c, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	// 没有广播器时消息照常落库
	msg, err := svc.PostMessage(ctx, c.ID, 7, domain.SenderTypeCustomer, "在吗")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
}

func TestService_CloseDeletesCustomerMessages(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(&fakeBroadcaster{}, &fakeProducer{events: make(chan event.ChatMessageEvent, 8)})
	ctx := context.Background()

	c, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, c.ID, 7, domain.SenderTypeCustomer, "第一条")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, c.ID, 100, domain.SenderTypeAdmin, "回复")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, c.ID, 7, domain.SenderTypeCustomer, "第二条")
	require.NoError(t, err)

	closed, err := svc.SetStatus(ctx, c.ID, domain.ConversationStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationStatusClosed, closed.Status)

	// 客户消息清掉，客服消息留档
	msgs, total, err := svc.ListMessages(ctx, c.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.SenderTypeAdmin, msgs[0].SenderType)
}

func TestService_PostMessage_ClosedConversation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(&fakeBroadcaster{}, &fakeProducer{events: make(chan event.ChatMessageEvent, 8)})
	ctx := context.Background()

	c, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, c.ID, domain.ConversationStatusClosed)
	require.NoError(t, err)

	// 已关闭的会话客户仍然可以继续发，消息落库并把会话拉回待客服处理
	msg, err := svc.PostMessage(ctx, c.ID, 7, domain.SenderTypeCustomer, "问题还没解决")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	detail, err := svc.Detail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationStatusPendingAdmin, detail.Status)

	msgs, total, err := svc.ListMessages(ctx, c.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, msgs, 1)
	assert.Equal(t, "问题还没解决", msgs[0].Content)
}

func TestService_SetStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(&fakeBroadcaster{}, &fakeProducer{events: make(chan event.ChatMessageEvent, 8)})
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, 1, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, 999, domain.ConversationStatusClosed)
	assert.ErrorIs(t, err, dao.ErrConversationNotFound)
}

func TestService_UnreadCount(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(&fakeBroadcaster{}, &fakeProducer{events: make(chan event.ChatMessageEvent, 8)})
	ctx := context.Background()

	c1, err := svc.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, c1.ID, 7, domain.SenderTypeCustomer, "在吗")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, c1.ID, 7, domain.SenderTypeCustomer, "有人吗")
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
