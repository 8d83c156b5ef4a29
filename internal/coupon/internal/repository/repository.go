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
	"github.com/nayalc/beautyshop/internal/coupon/internal/domain"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository/dao"
)

type Repository interface {
	Create(ctx context.Context, c domain.Coupon) (int64, error)
	Update(ctx context.Context, c domain.Coupon) error
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	dao dao.CouponDAO
}

func NewRepository(d dao.CouponDAO) Repository {
	return &repository{dao: d}
}

func (r *repository) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(c))
}

func (r *repository) Update(ctx context.Context, c domain.Coupon) error {
	return r.dao.Update(ctx, r.toEntity(c))
}

func (r *repository) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	c, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]domain.Coupon, error) {
	cs, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(cs, func(idx int, src dao.Coupon) domain.Coupon {
		return r.toDomain(src)
	}), nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func (r *repository) toEntity(c domain.Coupon) dao.Coupon {
	return dao.Coupon{
		Id:             c.ID,
		Code:           c.Code,
		Type:           string(c.Type),
		Value:          c.Value,
		ExpirationDate: c.ExpirationDate,
		UsageLimit:     c.UsageLimit,
		UsageCount:     c.UsageCount,
		MinPurchase:    c.MinPurchase,
		Active:         c.Active,
	}
}

func (r *repository) toDomain(c dao.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:             c.Id,
		Code:           c.Code,
		Type:           domain.DiscountType(c.Type),
		Value:          c.Value,
		ExpirationDate: c.ExpirationDate,
		UsageLimit:     c.UsageLimit,
		UsageCount:     c.UsageCount,
		MinPurchase:    c.MinPurchase,
		Active:         c.Active,
	}
}
