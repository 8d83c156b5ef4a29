// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package coupon

import (
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository"
	"github.com/nayalc/beautyshop/internal/coupon/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/coupon/internal/service"
	"github.com/nayalc/beautyshop/internal/coupon/internal/web"
	"gorm.io/gorm"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *gorm.DB) (*Module, error) {
	couponDAO := InitTablesOnce(db)
	repositoryRepository := repository.NewRepository(couponDAO)
	serviceService := service.NewService(repositoryRepository)
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
	couponDAO := InitTablesOnce(db)
	repositoryRepository := repository.NewRepository(couponDAO)
	serviceService := service.NewService(repositoryRepository)
	return serviceService
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewRepository, service.NewService, web.NewHandler, web.NewAdminHandler, wire.Struct(new(Module), "*"))

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.CouponDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewCouponGORMDAO(db)
}
