// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package notification

import (
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/email"
	"github.com/nayalc/beautyshop/internal/notification/internal/event/consumer"
	service2 "github.com/nayalc/beautyshop/internal/notification/internal/service"
	"github.com/nayalc/beautyshop/internal/user"
)

// Injectors from wire.go:

func InitModule(q mq.MQ, emailSvc email.Service, userSvc user.Service, cfg service2.Config) (*Module, error) {
	serviceService := service2.NewService(emailSvc, cfg)
	orderEventConsumer := initOrderEventConsumer(serviceService, userSvc, q)
	chatEventConsumer := initChatEventConsumer(serviceService, q)
	module := &Module{
		Svc:           serviceService,
		OrderConsumer: orderEventConsumer,
		ChatConsumer:  chatEventConsumer,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(service2.NewService, initOrderEventConsumer,
	initChatEventConsumer, wire.Struct(new(Module), "*"))

func initOrderEventConsumer(svc Service, userSvc user.Service, q mq.MQ) *consumer.OrderEventConsumer {
	c, err := consumer.NewOrderEventConsumer(svc, userSvc, q)
	if err != nil {
		panic(err)
	}
	return c
}

func initChatEventConsumer(svc Service, q mq.MQ) *consumer.ChatEventConsumer {
	c, err := consumer.NewChatEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}
