//go:build wireinject

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

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		InitSession,
		InitEmailService,
		InitNotificationConfig,
		initCosHandler,
		user.InitService,
		product.InitModule,
		wire.FieldsOf(new(*product.Module), "Hdl", "AdminHdl", "Svc"),
		coupon.InitModule,
		wire.FieldsOf(new(*coupon.Module), "Hdl", "AdminHdl"),
		realtime.InitModule,
		wire.FieldsOf(new(*realtime.Module), "Hub", "Hdl"),
		wire.Bind(new(realtime.Broadcaster), new(*realtime.Hub)),
		chat.InitModule,
		wire.FieldsOf(new(*chat.Module), "Hdl", "AdminHdl"),
		order.InitModule,
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl"),
		notification.InitModule,
		initMQConsumers,
		initGinxServer,
		InitAdminServer)
	return new(App), nil
}
