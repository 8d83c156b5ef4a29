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

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/order/internal/event"
	"github.com/nayalc/beautyshop/internal/order/internal/repository"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/cache"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/order/internal/service"
	"github.com/nayalc/beautyshop/internal/order/internal/web"
	"github.com/nayalc/beautyshop/internal/pkg/sequencenumber"
	"github.com/nayalc/beautyshop/internal/product"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	cache.NewRequestECache,
	InitOrderEventProducer,
	sequencenumber.NewGenerator,
	repository.NewRepository,
	service.NewService,
	web.NewHandler,
	web.NewAdminHandler,
	wire.Struct(new(Module), "*"))

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	productSvc product.Service) (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}

func InitOrderEventProducer(q mq.MQ) event.OrderEventProducer {
	producer, err := event.NewOrderEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
