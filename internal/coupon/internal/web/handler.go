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

	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/nayalc/beautyshop/internal/coupon/internal/domain"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/coupon/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/coupon/validate", ginx.B[ValidateCouponReq](h.Validate))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// Validate 结算前校验券码，可用时返回券信息与折扣金额
func (h *Handler) Validate(ctx *ginx.Context, req ValidateCouponReq) (ginx.Result, error) {
	c, err := h.svc.Validate(ctx.Request.Context(), req.Code, req.Total)
	switch {
	case err == nil:
		return ginx.Result{
			Data: ValidateCouponResp{
				Coupon:   toCouponVO(c),
				Discount: c.DiscountFor(req.Total),
			},
		}, nil
	case errors.Is(err, dao.ErrCouponNotFound):
		return couponNotFoundResult, nil
	case errors.Is(err, service.ErrCouponInactive),
		errors.Is(err, service.ErrCouponExpired):
		return couponUnusableResult, nil
	case errors.Is(err, service.ErrUsageLimitReached):
		return couponLimitExhaustedResult, nil
	case errors.Is(err, service.ErrMinPurchaseNotMet):
		return couponMinPurchaseResult, nil
	default:
		return systemErrorResult, fmt.Errorf("校验优惠券失败: %w", err)
	}
}

func toCouponVO(c domain.Coupon) Coupon {
	return Coupon{
		ID:             c.ID,
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
