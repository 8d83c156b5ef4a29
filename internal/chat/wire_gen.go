// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package chat

import (
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/chat/internal/event"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository/dao"
	service2 "github.com/nayalc/beautyshop/internal/chat/internal/service"
	"github.com/nayalc/beautyshop/internal/chat/internal/web"
	"github.com/nayalc/beautyshop/internal/realtime"
	"github.com/nayalc/beautyshop/internal/user"
	"gorm.io/gorm"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *gorm.DB, q mq.MQ, userSvc user.Service, broadcaster realtime.Broadcaster) (*Module, error) {
	chatDAO := InitTablesOnce(db)
	repositoryRepository := repository.NewRepository(chatDAO)
	chatMessageEventProducer := initChatMessageEventProducer(q)
	serviceService := service2.NewService(repositoryRepository, userSvc, chatMessageEventProducer, broadcaster)
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
	InitTablesOnce,
	initChatMessageEventProducer, repository.NewRepository, service2.NewService, web.NewHandler, web.NewAdminHandler, wire.Struct(new(Module), "*"))

func initChatMessageEventProducer(q mq.MQ) event.ChatMessageEventProducer {
	producer, err := event.NewChatMessageEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ChatDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewChatGORMDAO(db)
}
