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
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/order/internal/service"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[ListOrdersReq](h.List))
	g.POST("/list/delivered", ginx.B[ListOrdersReq](h.ListDelivered))
	g.POST("/list/cancelled", ginx.B[ListOrdersReq](h.ListCancelled))
	g.POST("/detail", ginx.B[OrderIDReq](h.Detail))
	g.POST("/status", ginx.B[UpdateStatusReq](h.UpdateStatus))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// List 列出全部活跃订单
func (h *AdminHandler) List(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	os, total, err := h.svc.ListOrders(ctx.Request.Context(), 0, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{Data: h.toResp(os, total)}, nil
}

func (h *AdminHandler) ListDelivered(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	os, total, err := h.svc.ListDelivered(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询已送达订单失败: %w", err)
	}
	return ginx.Result{Data: h.toResp(os, total)}, nil
}

func (h *AdminHandler) ListCancelled(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	os, total, err := h.svc.ListCancelled(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询已取消订单失败: %w", err)
	}
	return ginx.Result{Data: h.toResp(os, total)}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req OrderIDReq) (ginx.Result, error) {
	o, err := h.svc.FindOrderByID(ctx.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return orderNotFoundResult, nil
		}
		return systemErrorResult, fmt.Errorf("查询订单失败: %w", err)
	}
	return ginx.Result{Data: toOrderVO(o)}, nil
}

// UpdateStatus 状态流转到Delivered/Cancelled后订单会移入归档分区
func (h *AdminHandler) UpdateStatus(ctx *ginx.Context, req UpdateStatusReq) (ginx.Result, error) {
	err := h.svc.UpdateStatus(ctx.Request.Context(),
		req.OrderID, domain.Status(req.Status),
		domain.Tracking{
			Number:         req.TrackingNumber,
			CourierName:    req.CourierName,
			CourierWebsite: req.CourierWebsite,
		}, req.CancellationReason)
	switch {
	case err == nil:
		return ginx.Result{}, nil
	case errors.Is(err, service.ErrInvalidStatus):
		return invalidStatusResult, nil
	case errors.Is(err, service.ErrMissingTrackingInfo):
		return missingTrackingInfoResult, nil
	case errors.Is(err, dao.ErrOrderNotFound):
		return orderNotFoundResult, nil
	default:
		return systemErrorResult, fmt.Errorf("更新订单状态失败: %w", err)
	}
}

func (h *AdminHandler) toResp(os []domain.Order, total int64) ListOrdersResp {
	return ListOrdersResp{
		Total: total,
		Orders: slice.Map(os, func(idx int, src domain.Order) Order {
			return toOrderVO(src)
		}),
	}
}
