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
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/order/internal/service"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/create", ginx.BS[CreateOrderReq](h.Create))
	g.POST("/list", ginx.BS[ListOrdersReq](h.List))
	g.POST("/detail", ginx.BS[OrderIDReq](h.Detail))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) Create(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.CreateOrder(ctx.Request.Context(), req.RequestID, domain.Order{
		Uid:               sess.Claims().Uid,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     req.PaymentMethod,
		Subtotal:          req.Subtotal,
		Tax:               req.Tax,
		Discount:          req.Discount,
		ShippingCost:      req.ShippingCost,
		GiftWrap:          req.GiftWrap,
		GiftWrapCost:      req.GiftWrapCost,
		Total:             req.Total,
		CouponID:          req.CouponID,
		Items: slice.Map(req.Items, func(idx int, src OrderItem) domain.OrderItem {
			return domain.OrderItem{
				ProductID: src.ProductID,
				Quantity:  src.Quantity,
				Price:     src.Price,
			}
		}),
	})
	var stockErr *dao.InsufficientStockError
	switch {
	case err == nil:
		return ginx.Result{Data: toOrderVO(o)}, nil
	case errors.Is(err, service.ErrDuplicateRequest):
		return duplicateRequestResult, nil
	case errors.Is(err, dao.ErrProductNotFound):
		return productNotFoundResult, nil
	case errors.As(err, &stockErr):
		// 把具体哪个商品缺多少库存带给前端
		res := insufficientStockResult
		res.Msg = stockErr.Error()
		return res, nil
	default:
		return systemErrorResult, fmt.Errorf("创建订单失败: %w", err)
	}
}

// List 只列当前用户自己的活跃订单
func (h *Handler) List(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	os, total, err := h.svc.ListOrders(ctx.Request.Context(),
		sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(os, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req OrderIDReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.FindOrderByID(ctx.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return orderNotFoundResult, nil
		}
		return systemErrorResult, fmt.Errorf("查询订单失败: %w", err)
	}
	// 不是自己的订单一律按不存在处理
	if o.Uid != sess.Claims().Uid {
		return orderNotFoundResult, nil
	}
	return ginx.Result{Data: toOrderVO(o)}, nil
}
