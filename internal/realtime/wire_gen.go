// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package realtime

import (
	"github.com/google/wire"
	"github.com/nayalc/beautyshop/internal/realtime/internal/hub"
	"github.com/nayalc/beautyshop/internal/realtime/internal/web"
)

// Injectors from wire.go:

func InitModule() (*Module, error) {
	hubHub := hub.NewHub()
	handler := web.NewHandler(hubHub)
	module := &Module{
		Hub: hubHub,
		Hdl: handler,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(hub.NewHub, web.NewHandler, wire.Bind(new(Broadcaster), new(*Hub)), wire.Struct(new(Module), "*"))
