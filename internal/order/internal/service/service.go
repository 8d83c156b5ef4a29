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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/event"
	"github.com/nayalc/beautyshop/internal/order/internal/repository"
	"github.com/nayalc/beautyshop/internal/pkg/sequencenumber"
	"github.com/nayalc/beautyshop/internal/product"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidStatus       = errors.New("非法的订单状态")
	ErrMissingTrackingInfo = errors.New("Shipped状态必须带齐运单号、承运商和查询地址")
	ErrDuplicateRequest    = errors.New("重复的下单请求")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/order.mock.go -package=ordermocks -typed=true Service
type Service interface {
	// CreateOrder 同一requestID只允许成功提交一次
	CreateOrder(ctx context.Context, requestID string, order domain.Order) (domain.Order, error)
	// UpdateStatus 流转到Delivered/Cancelled会把订单挪进对应归档分区
	UpdateStatus(ctx context.Context, id int64, status domain.Status,
		tracking domain.Tracking, cancellationReason string) error
	// FindOrderByID 依次探测活跃、已送达、已取消三个分区
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	// ListOrders uid为0时列出全部活跃订单
	ListOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error)
	ListDelivered(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)
	ListCancelled(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)
}

type service struct {
	repo       repository.Repository
	productSvc product.Service
	producer   event.OrderEventProducer
	snGen      *sequencenumber.Generator
	logger     *elog.Component
}

func NewService(repo repository.Repository,
	productSvc product.Service,
	producer event.OrderEventProducer,
	snGen *sequencenumber.Generator) Service {
	return &service{
		repo:       repo,
		productSvc: productSvc,
		producer:   producer,
		snGen:      snGen,
		logger:     elog.DefaultLogger,
	}
}

func (s *service) CreateOrder(ctx context.Context, requestID string, order domain.Order) (domain.Order, error) {
	ok, err := s.repo.SaveRequestID(ctx, requestID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, ErrDuplicateRequest
	}
	sn, err := s.snGen.Generate(order.Uid)
	if err != nil {
		return domain.Order{}, err
	}
	order.SN = sn
	order.Status = domain.StatusPending
	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = id
	s.sendOrderEvent(event.OrderEventTypeCreated, order)
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status domain.Status,
	tracking domain.Tracking, cancellationReason string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if status == domain.StatusShipped && !tracking.Complete() {
		return ErrMissingTrackingInfo
	}
	var err error
	switch status {
	case domain.StatusDelivered:
		err = s.repo.ArchiveToDelivered(ctx, id)
	case domain.StatusCancelled:
		err = s.repo.ArchiveToCancelled(ctx, id, cancellationReason)
	default:
		// 非Shipped状态下tracking为零值，刚好把运单字段清掉
		err = s.repo.UpdateStatus(ctx, id, status, tracking)
	}
	if err != nil {
		return err
	}
	if status != domain.StatusPending {
		s.sendStatusChangedEvent(id)
	}
	return nil
}

// sendStatusChangedEvent 状态已落库，事件只做尽力通知。
// 订单此刻可能已在归档分区里，所以重新按ID全分区探测一次
func (s *service) sendStatusChangedEvent(id int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		o, err := s.repo.FindByID(ctx, id)
		if err != nil {
			s.logger.Error("回查订单详情失败",
				elog.FieldErr(err),
				elog.Int64("orderID", id))
			return
		}
		s.produce(ctx, event.OrderEventTypeStatusChanged, o)
	}()
}

func (s *service) sendOrderEvent(typ string, o domain.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		s.produce(ctx, typ, o)
	}()
}

func (s *service) produce(ctx context.Context, typ string, o domain.Order) {
	evt := event.OrderEvent{
		Type:    typ,
		OrderID: o.ID,
		UserID:  o.Uid,
		Status:  string(o.Status),
		Total:   o.Total,
		Items:   s.itemEvents(ctx, o.Items),
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送订单事件失败",
			elog.FieldErr(err),
			elog.Int64("orderID", o.ID),
			elog.String("type", typ))
	}
}

// itemEvents 给事件补上商品名，查询失败就带空名发出去
func (s *service) itemEvents(ctx context.Context, items []domain.OrderItem) []event.OrderItemEvent {
	ids := slice.Map(items, func(idx int, src domain.OrderItem) int64 {
		return src.ProductID
	})
	names := make(map[int64]string, len(ids))
	ps, err := s.productSvc.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("查询订单商品展示信息失败", elog.FieldErr(err))
	} else {
		for _, p := range ps {
			names[p.ID] = p.Name
		}
	}
	return slice.Map(items, func(idx int, src domain.OrderItem) event.OrderItemEvent {
		return event.OrderItemEvent{
			ProductName: names[src.ProductID],
			Quantity:    src.Quantity,
			Price:       src.Price,
		}
	})
}

func (s *service) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListActive(ctx, uid, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountActive(ctx, uid)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListDelivered(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListDelivered(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountDelivered(ctx)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListCancelled(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListCancelled(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountCancelled(ctx)
		return err
	})
	return os, total, eg.Wait()
}
