// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package startup

import (
	"github.com/nayalc/beautyshop/internal/order"
	"github.com/nayalc/beautyshop/internal/order/internal/repository"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/cache"
	service2 "github.com/nayalc/beautyshop/internal/order/internal/service"
	"github.com/nayalc/beautyshop/internal/order/internal/web"
	"github.com/nayalc/beautyshop/internal/pkg/sequencenumber"
	"github.com/nayalc/beautyshop/internal/product"
	"github.com/nayalc/beautyshop/internal/test/ioc"
)

// Injectors from wire.go:

func InitModule(productSvc product.Service) (*order.Module, error) {
	db := testioc.InitDB()
	orderDAO := order.InitTablesOnce(db)
	ecacheCache := testioc.InitCache()
	requestCache := cache.NewRequestECache(ecacheCache)
	repositoryRepository := repository.NewRepository(orderDAO, requestCache)
	mq := testioc.InitMQ()
	orderEventProducer := order.InitOrderEventProducer(mq)
	generator := sequencenumber.NewGenerator()
	serviceService := service2.NewService(repositoryRepository, productSvc, orderEventProducer, generator)
	handler := web.NewHandler(serviceService)
	adminHandler := web.NewAdminHandler(serviceService)
	module := &order.Module{
		Hdl:      handler,
		AdminHdl: adminHandler,
		Svc:      serviceService,
	}
	return module, nil
}
