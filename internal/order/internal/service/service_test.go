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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/event"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/pkg/sequencenumber"
	"github.com/nayalc/beautyshop/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	mu         sync.Mutex
	nextID     int64
	active     map[int64]domain.Order
	delivered  map[int64]domain.Order
	cancelled  map[int64]domain.Order
	requestIDs map[string]struct{}
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:     1,
		active:     make(map[int64]domain.Order),
		delivered:  make(map[int64]domain.Order),
		cancelled:  make(map[int64]domain.Order),
		requestIDs: make(map[string]struct{}),
	}
}

func (f *fakeRepository) Create(ctx context.Context, o domain.Order) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = f.nextID
	f.nextID++
	o.Ctime = time.Now().UnixMilli()
	o.Utime = o.Ctime
	f.active[o.ID] = o
	return o.ID, nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, t domain.Tracking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.active[id]
	if !ok {
		return dao.ErrOrderNotFound
	}
	o.Status = status
	o.Tracking = t
	o.Utime = time.Now().UnixMilli()
	f.active[id] = o
	return nil
}

func (f *fakeRepository) ArchiveToDelivered(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.active[id]
	if !ok {
		return dao.ErrOrderNotFound
	}
	delete(f.active, id)
	o.Status = domain.StatusDelivered
	o.DeliveredAt = time.Now().UnixMilli()
	f.delivered[id] = o
	return nil
}

func (f *fakeRepository) ArchiveToCancelled(ctx context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.active[id]
	if !ok {
		return dao.ErrOrderNotFound
	}
	delete(f.active, id)
	o.Status = domain.StatusCancelled
	o.CancellationReason = reason
	o.CancelledAt = time.Now().UnixMilli()
	f.cancelled[id] = o
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.active[id]; ok {
		return o, nil
	}
	if o, ok := f.delivered[id]; ok {
		return o, nil
	}
	if o, ok := f.cancelled[id]; ok {
		return o, nil
	}
	return domain.Order{}, dao.ErrOrderNotFound
}

func (f *fakeRepository) ListActive(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]domain.Order, 0, len(f.active))
	for _, o := range f.active {
		if uid == 0 || o.Uid == uid {
			res = append(res, o)
		}
	}
	return res, nil
}

func (f *fakeRepository) CountActive(ctx context.Context, uid int64) (int64, error) {
	os, _ := f.ListActive(ctx, uid, 0, 0)
	return int64(len(os)), nil
}

func (f *fakeRepository) ListDelivered(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]domain.Order, 0, len(f.delivered))
	for _, o := range f.delivered {
		res = append(res, o)
	}
	return res, nil
}

func (f *fakeRepository) CountDelivered(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.delivered)), nil
}

func (f *fakeRepository) ListCancelled(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]domain.Order, 0, len(f.cancelled))
	for _, o := range f.cancelled {
		res = append(res, o)
	}
	return res, nil
}

func (f *fakeRepository) CountCancelled(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.cancelled)), nil
}

func (f *fakeRepository) SaveRequestID(ctx context.Context, requestID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requestIDs[requestID]; ok {
		return false, nil
	}
	f.requestIDs[requestID] = struct{}{}
	return true, nil
}

type fakeProducer struct {
	events chan event.OrderEvent
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{events: make(chan event.OrderEvent, 10)}
}

func (f *fakeProducer) Produce(ctx context.Context, evt event.OrderEvent) error {
	f.events <- evt
	return nil
}

type fakeProductService struct{}

func (f fakeProductService) Create(ctx context.Context, p product.Product) (int64, error) {
	panic("不该被调用")
}

func (f fakeProductService) Update(ctx context.Context, p product.Product) error {
	panic("不该被调用")
}

func (f fakeProductService) FindByID(ctx context.Context, id int64) (product.Product, error) {
	return product.Product{ID: id, Name: fmt.Sprintf("商品-%d", id)}, nil
}

func (f fakeProductService) FindByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	res := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		res = append(res, product.Product{ID: id, Name: fmt.Sprintf("商品-%d", id)})
	}
	return res, nil
}

func (f fakeProductService) List(ctx context.Context, offset, limit int) ([]product.Product, int64, error) {
	return nil, 0, nil
}

func newTestService(repo *fakeRepository, producer *fakeProducer) Service {
	return NewService(repo, fakeProductService{}, producer, sequencenumber.NewGenerator())
}

func receiveEvent(t *testing.T, producer *fakeProducer) event.OrderEvent {
	t.Helper()
	select {
	case evt := <-producer.events:
		return evt
	case <-time.After(time.Second):
		t.Fatal("等待订单事件超时")
		return event.OrderEvent{}
	}
}

func TestService_CreateOrder(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)

	o, err := svc.CreateOrder(context.Background(), "req-1", domain.Order{
		Uid:           1234,
		PaymentMethod: "credit_card",
		Subtotal:      12900,
		Total:         12900,
		Items: []domain.OrderItem{
			{ProductID: 7, Quantity: 2, Price: 6450},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Len(t, o.SN, 32)

	evt := receiveEvent(t, producer)
	assert.Equal(t, event.OrderEventTypeCreated, evt.Type)
	assert.Equal(t, o.ID, evt.OrderID)
	assert.Equal(t, int64(1234), evt.UserID)
	assert.Equal(t, int64(12900), evt.Total)
	require.Len(t, evt.Items, 1)
	assert.Equal(t, "商品-7", evt.Items[0].ProductName)
	assert.Equal(t, int64(2), evt.Items[0].Quantity)
}

func TestService_CreateOrder_DuplicateRequest(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)

	_, err := svc.CreateOrder(context.Background(), "req-dup", domain.Order{Uid: 1})
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), "req-dup", domain.Order{Uid: 1})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	// 重复请求不会再落一单
	total, err := repo.CountActive(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestService_UpdateStatus(t *testing.T) {
	t.Parallel()
	tracking := domain.Tracking{
		Number:         "SF123456",
		CourierName:    "顺丰速运",
		CourierWebsite: "https://www.sf-express.com",
	}
	testCases := []struct {
		name      string
		status    domain.Status
		tracking  domain.Tracking
		reason    string
		wantErr   error
		wantEvent bool
		after     func(t *testing.T, repo *fakeRepository, id int64)
	}{
		{
			name:    "非法状态",
			status:  domain.Status("Archived"),
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "Shipped缺运单信息",
			status:  domain.StatusShipped,
			wantErr: ErrMissingTrackingInfo,
			after: func(t *testing.T, repo *fakeRepository, id int64) {
				o, err := repo.FindByID(context.Background(), id)
				require.NoError(t, err)
				// 校验失败时不得有任何改动
				assert.Equal(t, domain.StatusPending, o.Status)
			},
		},
		{
			name:      "Shipped带齐运单信息",
			status:    domain.StatusShipped,
			tracking:  tracking,
			wantEvent: true,
			after: func(t *testing.T, repo *fakeRepository, id int64) {
				o, err := repo.FindByID(context.Background(), id)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusShipped, o.Status)
				assert.Equal(t, tracking, o.Tracking)
			},
		},
		{
			name:      "Delivered移入归档分区",
			status:    domain.StatusDelivered,
			wantEvent: true,
			after: func(t *testing.T, repo *fakeRepository, id int64) {
				assert.NotContains(t, repo.active, id)
				o, ok := repo.delivered[id]
				require.True(t, ok)
				assert.Equal(t, domain.StatusDelivered, o.Status)
				assert.NotZero(t, o.DeliveredAt)
			},
		},
		{
			name:      "Cancelled带取消原因",
			status:    domain.StatusCancelled,
			reason:    "客户改了主意",
			wantEvent: true,
			after: func(t *testing.T, repo *fakeRepository, id int64) {
				assert.NotContains(t, repo.active, id)
				o, ok := repo.cancelled[id]
				require.True(t, ok)
				assert.Equal(t, "客户改了主意", o.CancellationReason)
				assert.NotZero(t, o.CancelledAt)
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := newFakeRepository()
			producer := newFakeProducer()
			svc := newTestService(repo, producer)
			o, err := svc.CreateOrder(context.Background(), "req-"+tc.name, domain.Order{Uid: 88})
			require.NoError(t, err)
			// 先吃掉创建事件
			receiveEvent(t, producer)

			err = svc.UpdateStatus(context.Background(), o.ID, tc.status, tc.tracking, tc.reason)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tc.wantEvent {
				evt := receiveEvent(t, producer)
				assert.Equal(t, event.OrderEventTypeStatusChanged, evt.Type)
				assert.Equal(t, o.ID, evt.OrderID)
				assert.Equal(t, string(tc.status), evt.Status)
			}
			if tc.after != nil {
				tc.after(t, repo, o.ID)
			}
		})
	}
}

func TestService_UpdateStatus_ClearsTracking(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)
	o, err := svc.CreateOrder(context.Background(), "req-clear", domain.Order{Uid: 1})
	require.NoError(t, err)
	receiveEvent(t, producer)

	err = svc.UpdateStatus(context.Background(), o.ID, domain.StatusShipped, domain.Tracking{
		Number:         "SF1",
		CourierName:    "顺丰速运",
		CourierWebsite: "https://www.sf-express.com",
	}, "")
	require.NoError(t, err)
	receiveEvent(t, producer)

	// 回退出Shipped后运单字段必须清空
	err = svc.UpdateStatus(context.Background(), o.ID, domain.StatusProcessing, domain.Tracking{}, "")
	require.NoError(t, err)
	receiveEvent(t, producer)

	got, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)
	assert.Equal(t, domain.Tracking{}, got.Tracking)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)

	err := svc.UpdateStatus(context.Background(), 999, domain.StatusDelivered, domain.Tracking{}, "")
	assert.ErrorIs(t, err, dao.ErrOrderNotFound)
}

func TestService_FindOrderByID_AcrossPartitions(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)

	o1, err := svc.CreateOrder(context.Background(), "req-p1", domain.Order{Uid: 1})
	require.NoError(t, err)
	o2, err := svc.CreateOrder(context.Background(), "req-p2", domain.Order{Uid: 1})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), o2.ID, domain.StatusCancelled, domain.Tracking{}, "缺货"))

	// 归档前后都能按原ID查到
	got, err := svc.FindOrderByID(context.Background(), o1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	got, err = svc.FindOrderByID(context.Background(), o2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, "缺货", got.CancellationReason)

	_, err = svc.FindOrderByID(context.Background(), 999)
	assert.ErrorIs(t, err, dao.ErrOrderNotFound)
}

func TestService_ListOrders(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	producer := newFakeProducer()
	svc := newTestService(repo, producer)

	_, err := svc.CreateOrder(context.Background(), "req-l1", domain.Order{Uid: 1})
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), "req-l2", domain.Order{Uid: 2})
	require.NoError(t, err)

	os, total, err := svc.ListOrders(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, os, 1)
	assert.Equal(t, int64(1), os[0].Uid)

	// uid为0时列全部
	_, total, err = svc.ListOrders(context.Background(), 0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
