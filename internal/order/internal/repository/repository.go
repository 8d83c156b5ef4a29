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
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/cache"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, t domain.Tracking) error
	ArchiveToDelivered(ctx context.Context, id int64) error
	ArchiveToCancelled(ctx context.Context, id int64, reason string) error
	FindByID(ctx context.Context, id int64) (domain.Order, error)
	ListActive(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error)
	CountActive(ctx context.Context, uid int64) (int64, error)
	ListDelivered(ctx context.Context, offset, limit int) ([]domain.Order, error)
	CountDelivered(ctx context.Context) (int64, error)
	ListCancelled(ctx context.Context, offset, limit int) ([]domain.Order, error)
	CountCancelled(ctx context.Context) (int64, error)
	// SaveRequestID 首次见到该requestID返回true，用于挡重复下单
	SaveRequestID(ctx context.Context, requestID string) (bool, error)
}

type repository struct {
	dao   dao.OrderDAO
	cache cache.RequestCache
}

func NewRepository(d dao.OrderDAO, c cache.RequestCache) Repository {
	return &repository{dao: d, cache: c}
}

func (r *repository) Create(ctx context.Context, o domain.Order) (int64, error) {
	items := slice.Map(o.Items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductId: src.ProductID,
			Quantity:  src.Quantity,
			Price:     src.Price,
		}
	})
	return r.dao.Create(ctx, r.toEntity(o), items)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status domain.Status, t domain.Tracking) error {
	return r.dao.UpdateStatus(ctx, id, string(status),
		t.Number, t.CourierName, t.CourierWebsite)
}

func (r *repository) ArchiveToDelivered(ctx context.Context, id int64) error {
	return r.dao.ArchiveToDelivered(ctx, id)
}

func (r *repository) ArchiveToCancelled(ctx context.Context, id int64, reason string) error {
	return r.dao.ArchiveToCancelled(ctx, id, reason)
}

func (r *repository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	o, items, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	res := r.toDomain(o)
	res.Items = slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
		return domain.OrderItem{
			ID:        src.Id,
			ProductID: src.ProductId,
			Quantity:  src.Quantity,
			Price:     src.Price,
		}
	})
	return res, nil
}

func (r *repository) ListActive(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error) {
	os, err := r.dao.ListActive(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src)
	}), nil
}

func (r *repository) CountActive(ctx context.Context, uid int64) (int64, error) {
	return r.dao.CountActive(ctx, uid)
}

func (r *repository) ListDelivered(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	os, err := r.dao.ListDelivered(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.DeliveredOrder) domain.Order {
		return r.toDomainDelivered(src)
	}), nil
}

func (r *repository) CountDelivered(ctx context.Context) (int64, error) {
	return r.dao.CountDelivered(ctx)
}

func (r *repository) ListCancelled(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	os, err := r.dao.ListCancelled(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.CancelledOrder) domain.Order {
		return r.toDomainCancelled(src)
	}), nil
}

func (r *repository) CountCancelled(ctx context.Context) (int64, error) {
	return r.dao.CountCancelled(ctx)
}

func (r *repository) SaveRequestID(ctx context.Context, requestID string) (bool, error) {
	return r.cache.SetNXRequestKey(ctx, requestID)
}

func (r *repository) toEntity(o domain.Order) dao.Order {
	return dao.Order{
		Id:                 o.ID,
		SN:                 o.SN,
		Uid:                o.Uid,
		ShippingAddressId:  o.ShippingAddressID,
		PaymentMethod:      o.PaymentMethod,
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		Discount:           o.Discount,
		ShippingCost:       o.ShippingCost,
		GiftWrap:           o.GiftWrap,
		GiftWrapCost:       o.GiftWrapCost,
		Total:              o.Total,
		Status:             string(o.Status),
		TrackingNumber:     o.Tracking.Number,
		CourierName:        o.Tracking.CourierName,
		CourierWebsite:     o.Tracking.CourierWebsite,
		CouponId:           o.CouponID,
		PaymentConfirmed:   o.PaymentConfirmed,
		CancellationReason: o.CancellationReason,
	}
}

func (r *repository) toDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:                o.Id,
		SN:                o.SN,
		Uid:               o.Uid,
		ShippingAddressID: o.ShippingAddressId,
		PaymentMethod:     o.PaymentMethod,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		Discount:          o.Discount,
		ShippingCost:      o.ShippingCost,
		GiftWrap:          o.GiftWrap,
		GiftWrapCost:      o.GiftWrapCost,
		Total:             o.Total,
		Status:            domain.Status(o.Status),
		Tracking: domain.Tracking{
			Number:         o.TrackingNumber,
			CourierName:    o.CourierName,
			CourierWebsite: o.CourierWebsite,
		},
		CouponID:           o.CouponId,
		PaymentConfirmed:   o.PaymentConfirmed,
		CancellationReason: o.CancellationReason,
		Ctime:              o.Ctime,
		Utime:              o.Utime,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
	}
}

func (r *repository) toDomainDelivered(o dao.DeliveredOrder) domain.Order {
	res := r.toDomain(dao.Order{
		Id:                o.Id,
		SN:                o.SN,
		Uid:               o.Uid,
		ShippingAddressId: o.ShippingAddressId,
		PaymentMethod:     o.PaymentMethod,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		Discount:          o.Discount,
		ShippingCost:      o.ShippingCost,
		GiftWrap:          o.GiftWrap,
		GiftWrapCost:      o.GiftWrapCost,
		Total:             o.Total,
		Status:            string(domain.StatusDelivered),
		TrackingNumber:    o.TrackingNumber,
		CourierName:       o.CourierName,
		CourierWebsite:    o.CourierWebsite,
		CouponId:          o.CouponId,
		PaymentConfirmed:  o.PaymentConfirmed,
		Ctime:             o.Ctime,
		Utime:             o.Utime,
		DeliveredAt:       o.DeliveredAt,
	})
	return res
}

func (r *repository) toDomainCancelled(o dao.CancelledOrder) domain.Order {
	return r.toDomain(dao.Order{
		Id:                 o.Id,
		SN:                 o.SN,
		Uid:                o.Uid,
		ShippingAddressId:  o.ShippingAddressId,
		PaymentMethod:      o.PaymentMethod,
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		Discount:           o.Discount,
		ShippingCost:       o.ShippingCost,
		GiftWrap:           o.GiftWrap,
		GiftWrapCost:       o.GiftWrapCost,
		Total:              o.Total,
		Status:             string(domain.StatusCancelled),
		TrackingNumber:     o.TrackingNumber,
		CourierName:        o.CourierName,
		CourierWebsite:     o.CourierWebsite,
		CouponId:           o.CouponId,
		PaymentConfirmed:   o.PaymentConfirmed,
		CancellationReason: o.CancellationReason,
		Ctime:              o.Ctime,
		Utime:              o.Utime,
		CancelledAt:        o.CancelledAt,
	})
}
