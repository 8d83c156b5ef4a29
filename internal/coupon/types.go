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

package coupon

import (
	"github.com/nayalc/beautyshop/internal/coupon/internal/domain"
	"github.com/nayalc/beautyshop/internal/coupon/internal/service"
	"github.com/nayalc/beautyshop/internal/coupon/internal/web"
)

// Handler 暴露出去给 ioc 使用
type Handler = web.Handler
type AdminHandler = web.AdminHandler
type Coupon = domain.Coupon

// Service 方便订单模块在下单前校验券码
type Service = service.Service

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
}
