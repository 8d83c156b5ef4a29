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

	"github.com/nayalc/beautyshop/internal/coupon/internal/domain"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCouponInactive    = errors.New("优惠券已停用")
	ErrCouponExpired     = errors.New("优惠券已过期")
	ErrUsageLimitReached = errors.New("优惠券使用次数已达上限")
	ErrMinPurchaseNotMet = errors.New("未达到优惠券最低消费金额")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/coupon.mock.go -package=couponmocks -typed=true Service
type Service interface {
	Create(ctx context.Context, c domain.Coupon) (int64, error)
	Update(ctx context.Context, c domain.Coupon) error
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)
	// Validate 校验券码在total金额下是否可用，可用时返回券本身
	Validate(ctx context.Context, code string, total int64) (domain.Coupon, error)
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error)
}

type service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	return s.repo.Create(ctx, c)
}

func (s *service) Update(ctx context.Context, c domain.Coupon) error {
	return s.repo.Update(ctx, c)
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Validate(ctx context.Context, code string, total int64) (domain.Coupon, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	if !c.Active {
		return domain.Coupon{}, ErrCouponInactive
	}
	if c.ExpirationDate > 0 && c.ExpirationDate < time.Now().UnixMilli() {
		return domain.Coupon{}, ErrCouponExpired
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return domain.Coupon{}, ErrUsageLimitReached
	}
	if c.MinPurchase > 0 && total < c.MinPurchase {
		return domain.Coupon{}, ErrMinPurchaseNotMet
	}
	return c, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error) {
	var (
		eg    errgroup.Group
		cs    []domain.Coupon
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
	return cs, total, eg.Wait()
}
