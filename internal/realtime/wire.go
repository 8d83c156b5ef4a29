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

package realtime

import (
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/realtime/internal/hub"
	"github.com/nayalc/beautyshop/internal/realtime/internal/web"
)

var ModuleSet = wire.NewSet(
	hub.NewHub,
	web.NewHandler,
	wire.Bind(new(Broadcaster), new(*Hub)),
	wire.Struct(new(Module), "*"))

func InitModule() (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}
