// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package user

import (
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/user/internal/repository"
	"github.com/nayalc/beautyshop/internal/user/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/user/internal/service"
	"gorm.io/gorm"
	"sync"
)

// Injectors from wire.go:

func InitService(db *gorm.DB) service.Service {
	userDAO := InitTablesOnce(db)
	userRepository := repository.NewRepository(userDAO)
	serviceService := service.NewService(userRepository)
	return serviceService
}

// wire.go:

var ServiceSet = wire.NewSet(
	InitTablesOnce, repository.NewRepository, service.NewService,
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.UserDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewUserGORMDAO(db)
}
