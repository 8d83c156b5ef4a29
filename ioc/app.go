package ioc

import (
	"context"

	"github.com/gotomicro/ego/server/egin"
	"github.com/nayalc/beautyshop/internal/realtime"
)

type Consumer interface {
	Start(ctx context.Context)
}

type App struct {
	Web   *egin.Component
	Admin AdminServer
	// Hub 进程级广播器，关停时要Close掉
	Hub       *realtime.Hub
	Consumers []Consumer
}
