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

package chat

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/chat/internal/event"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository"
	"github.com/nayalc/beautyshop/internal/chat/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/chat/internal/service"
	"github.com/nayalc/beautyshop/internal/chat/internal/web"
	"github.com/nayalc/beautyshop/internal/realtime"
	"github.com/nayalc/beautyshop/internal/user"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	initChatMessageEventProducer,
	repository.NewRepository,
	service.NewService,
	web.NewHandler,
	web.NewAdminHandler,
	wire.Struct(new(Module), "*"))

func InitModule(db *egorm.Component,
	q mq.MQ,
	userSvc user.Service,
	broadcaster realtime.Broadcaster) (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}

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
