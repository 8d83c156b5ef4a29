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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/nayalc/beautyshop/internal/coupon/internal/domain"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/coupon/internal/service"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/coupon")
	g.POST("/save", ginx.B[SaveCouponReq](h.Save))
	g.POST("/list", ginx.B[ListCouponsReq](h.List))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// Save 创建或更新优惠券，ID为0表示创建。usage_count不在此处修改
func (h *AdminHandler) Save(ctx *ginx.Context, req SaveCouponReq) (ginx.Result, error) {
	c := domain.Coupon{
		ID:             req.ID,
		Code:           req.Code,
		Type:           domain.DiscountType(req.Type),
		Value:          req.Value,
		ExpirationDate: req.ExpirationDate,
		UsageLimit:     req.UsageLimit,
		MinPurchase:    req.MinPurchase,
		Active:         req.Active,
	}
	if req.ID == 0 {
		id, err := h.svc.Create(ctx.Request.Context(), c)
		if err != nil {
			if errors.Is(err, dao.ErrCouponCodeDuplicate) {
				return couponCodeDuplicateResult, nil
			}
			return systemErrorResult, fmt.Errorf("创建优惠券失败: %w", err)
		}
		return ginx.Result{Data: SaveCouponResp{ID: id}}, nil
	}
	err := h.svc.Update(ctx.Request.Context(), c)
	if err != nil {
		if errors.Is(err, dao.ErrCouponNotFound) {
			return couponNotFoundResult, nil
		}
		return systemErrorResult, fmt.Errorf("更新优惠券失败: %w", err)
	}
	return ginx.Result{Data: SaveCouponResp{ID: req.ID}}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListCouponsReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	cs, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询优惠券列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListCouponsResp{
			Total: total,
			Coupons: slice.Map(cs, func(idx int, src domain.Coupon) Coupon {
				return toCouponVO(src)
			}),
		},
	}, nil
}
