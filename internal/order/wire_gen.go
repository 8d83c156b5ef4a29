// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package order

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/order/internal/event"
	"github.com/nayalc/beautyshop/internal/order/internal/repository"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/cache"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	service2 "github.com/nayalc/beautyshop/internal/order/internal/service"
	"github.com/nayalc/beautyshop/internal/order/internal/web"
	"github.com/nayalc/beautyshop/internal/pkg/sequencenumber"
	"github.com/nayalc/beautyshop/internal/product"
	"gorm.io/gorm"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *gorm.DB, ec ecache.Cache, q mq.MQ, productSvc product.Service) (*Module, error) {
	orderDAO := InitTablesOnce(db)
	requestCache := cache.NewRequestECache(ec)
	repositoryRepository := repository.NewRepository(orderDAO, requestCache)
	orderEventProducer := InitOrderEventProducer(q)
	generator := sequencenumber.NewGenerator()
	serviceService := service2.NewService(repositoryRepository, productSvc, orderEventProducer, generator)
	handler := web.NewHandler(serviceService)
	adminHandler := web.NewAdminHandler(serviceService)
	module := &Module{
		Hdl:      handler,
		AdminHdl: adminHandler,
		Svc:      serviceService,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, cache.NewRequestECache, InitOrderEventProducer, sequencenumber.NewGenerator, repository.NewRepository, service2.NewService, web.NewHandler, web.NewAdminHandler, wire.Struct(new(Module), "*"))

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
