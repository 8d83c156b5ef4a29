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

package notification

import (
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/email"
	"github.com/nayalc/beautyshop/internal/notification/internal/event/consumer"
	"github.com/nayalc/beautyshop/internal/notification/internal/service"
	"github.com/nayalc/beautyshop/internal/user"
)

var ModuleSet = wire.NewSet(
	service.NewService,
	initOrderEventConsumer,
	initChatEventConsumer,
	wire.Struct(new(Module), "*"))

func InitModule(q mq.MQ,
	emailSvc email.Service,
	userSvc user.Service,
	cfg Config) (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}

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
