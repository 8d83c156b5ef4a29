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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/nayalc/beautyshop/internal/product/internal/domain"
	"github.com/nayalc/beautyshop/internal/product/internal/service"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/save", ginx.B[SaveProductReq](h.Save))
	g.POST("/list", ginx.B[ListProductsReq](h.List))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// Save 创建或更新商品，ID为0表示创建
func (h *AdminHandler) Save(ctx *ginx.Context, req SaveProductReq) (ginx.Result, error) {
	p := domain.Product{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		BrandName:     req.BrandName,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if req.ID == 0 {
		id, err := h.svc.Create(ctx.Request.Context(), p)
		if err != nil {
			return systemErrorResult, fmt.Errorf("创建商品失败: %w", err)
		}
		return ginx.Result{Data: SaveProductResp{ID: id}}, nil
	}
	if err := h.svc.Update(ctx.Request.Context(), p); err != nil {
		return systemErrorResult, fmt.Errorf("更新商品失败: %w", err)
	}
	return ginx.Result{Data: SaveProductResp{ID: req.ID}}, nil
}

// List 后台分页查询商品
func (h *AdminHandler) List(ctx *ginx.Context, req ListProductsReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	products, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListProductsResp{
			Total: total,
			Products: slice.Map(products, func(idx int, src domain.Product) Product {
				return toProductVO(src)
			}),
		},
	}, nil
}
