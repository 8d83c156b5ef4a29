package ioc

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gotomicro/ego/server/egin"
	"github.com/nayalc/beautyshop/internal/chat"
	"github.com/nayalc/beautyshop/internal/coupon"
	"github.com/nayalc/beautyshop/internal/order"
	"github.com/nayalc/beautyshop/internal/pkg/middleware"
	"github.com/nayalc/beautyshop/internal/product"
	"github.com/nayalc/beautyshop/internal/realtime"
)

func initGinxServer(sp session.Provider,
	productHdl *product.Handler,
	couponHdl *coupon.Handler,
	orderHdl *order.Handler,
	chatHdl *chat.Handler,
	wsHdl *realtime.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "nayalc.com")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	productHdl.PublicRoutes(res.Engine)
	couponHdl.PublicRoutes(res.Engine)
	// websocket连接在升级后再按房间鉴别，不走登录校验
	wsHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	orderHdl.PrivateRoutes(res.Engine)
	chatHdl.PrivateRoutes(res.Engine)
	return res
}
