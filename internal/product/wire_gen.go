// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package product

import (
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/product/internal/repository"
	"github.com/nayalc/beautyshop/internal/product/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/product/internal/service"
	"github.com/nayalc/beautyshop/internal/product/internal/web"
	"gorm.io/gorm"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *gorm.DB) (*Module, error) {
	productDAO := InitTablesOnce(db)
	productRepository := repository.NewProductRepository(productDAO)
	serviceService := service.NewService(productRepository)
	handler := web.NewHandler(serviceService)
	adminHandler := web.NewAdminHandler(serviceService)
	module := &Module{
		Hdl:      handler,
		AdminHdl: adminHandler,
		Svc:      serviceService,
	}
	return module, nil
}

func InitService(db *gorm.DB) service.Service {
	productDAO := InitTablesOnce(db)
	productRepository := repository.NewProductRepository(productDAO)
	serviceService := service.NewService(productRepository)
	return serviceService
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewProductRepository, service.NewService, web.NewHandler, web.NewAdminHandler, wire.Struct(new(Module), "*"))

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ProductDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewProductGORMDAO(db)
}
