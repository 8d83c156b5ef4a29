// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/chat"
	"github.com/nayalc/beautyshop/internal/coupon"
	"github.com/nayalc/beautyshop/internal/notification"
	"github.com/nayalc/beautyshop/internal/order"
	"github.com/nayalc/beautyshop/internal/product"
	"github.com/nayalc/beautyshop/internal/realtime"
	"github.com/nayalc/beautyshop/internal/user"
)

// Injectors from wire.go:

func InitApp() (*App, error) {
	cmdable := InitRedis()
	provider := InitSession(cmdable)
	db := InitDB()
	module, err := product.InitModule(db)
	if err != nil {
		return nil, err
	}
	handler := module.Hdl
	couponModule, err := coupon.InitModule(db)
	if err != nil {
		return nil, err
	}
	webHandler := couponModule.Hdl
	cache := InitCache(cmdable)
	mq := InitMQ()
	service := module.Svc
	orderModule, err := order.InitModule(db, cache, mq, service)
	if err != nil {
		return nil, err
	}
	handler2 := orderModule.Hdl
	serviceService := user.InitService(db)
	realtimeModule, err := realtime.InitModule()
	if err != nil {
		return nil, err
	}
	hub := realtimeModule.Hub
	chatModule, err := chat.InitModule(db, mq, serviceService, hub)
	if err != nil {
		return nil, err
	}
	handler3 := chatModule.Hdl
	handler4 := realtimeModule.Hdl
	component := initGinxServer(provider, handler, webHandler, handler2, handler3, handler4)
	adminHandler := module.AdminHdl
	webAdminHandler := couponModule.AdminHdl
	adminHandler2 := orderModule.AdminHdl
	adminHandler3 := chatModule.AdminHdl
	handler5 := initCosHandler()
	adminServer := InitAdminServer(adminHandler, webAdminHandler, adminHandler2, adminHandler3, handler5)
	emailService := InitEmailService()
	config := InitNotificationConfig()
	notificationModule, err := notification.InitModule(mq, emailService, serviceService, config)
	if err != nil {
		return nil, err
	}
	v := initMQConsumers(mq, notificationModule)
	app := &App{
		Web:       component,
		Admin:     adminServer,
		Hub:       hub,
		Consumers: v,
	}
	return app, nil
}

// wire.go:

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)
