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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/nayalc/beautyshop/internal/order"
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
	"github.com/nayalc/beautyshop/internal/order/internal/errs"
	"github.com/nayalc/beautyshop/internal/order/internal/integration/startup"
	"github.com/nayalc/beautyshop/internal/order/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/order/internal/web"
	"github.com/nayalc/beautyshop/internal/product"
	"github.com/nayalc/beautyshop/internal/test"
	testioc "github.com/nayalc/beautyshop/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testUID = int64(234)

type fakeProductService struct{}

func (f fakeProductService) Create(_ context.Context, _ product.Product) (int64, error) {
	return 0, nil
}

func (f fakeProductService) Update(_ context.Context, _ product.Product) error {
	return nil
}

func (f fakeProductService) FindByID(_ context.Context, id int64) (product.Product, error) {
	return product.Product{ID: id, Name: fmt.Sprintf("商品-%d", id)}, nil
}

func (f fakeProductService) FindByIDs(_ context.Context, ids []int64) ([]product.Product, error) {
	res := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		res = append(res, product.Product{ID: id, Name: fmt.Sprintf("商品-%d", id)})
	}
	return res, nil
}

func (f fakeProductService) List(_ context.Context, _, _ int) ([]product.Product, int64, error) {
	return nil, 0, nil
}

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(OrderModuleTestSuite))
}

type OrderModuleTestSuite struct {
	suite.Suite
	server      *egin.Component
	adminServer *egin.Component
	db          *egorm.Component
	svc         order.Service
}

func (s *OrderModuleTestSuite) SetupSuite() {
	mod, err := startup.InitModule(fakeProductService{})
	require.NoError(s.T(), err)
	s.svc = mod.Svc

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	mod.Hdl.PrivateRoutes(server.Engine)
	s.server = server

	// 客户端和管理端路由分属两个服务
	adminServer := egin.Load("server").Build()
	mod.AdminHdl.PrivateRoutes(adminServer.Engine)
	s.adminServer = adminServer

	s.db = testioc.InitDB()
	// 商品和优惠券表归对应模块建，这里给测试搭个最小结构
	require.NoError(s.T(), s.db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		stock_quantity BIGINT NOT NULL)`).Error)
	require.NoError(s.T(), s.db.Exec(`CREATE TABLE IF NOT EXISTS coupons (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		usage_count BIGINT NOT NULL DEFAULT 0)`).Error)
}

func (s *OrderModuleTestSuite) TearDownTest() {
	for _, table := range []string{
		"orders", "order_items",
		"delivered_orders", "delivered_order_items",
		"cancelled_orders", "cancelled_order_items",
		"products", "coupons",
	} {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *OrderModuleTestSuite) seedProduct(name string, stock int64) int64 {
	p := dao.Product{Name: name, StockQuantity: stock}
	require.NoError(s.T(), s.db.Create(&p).Error)
	return p.Id
}

func (s *OrderModuleTestSuite) stockOf(id int64) int64 {
	var p dao.Product
	require.NoError(s.T(), s.db.Where("id = ?", id).First(&p).Error)
	return p.StockQuantity
}

func (s *OrderModuleTestSuite) TestHandler_Create() {
	t := s.T()
	pid := s.seedProduct("玫瑰精华液", 10)
	var coupon dao.Coupon
	require.NoError(t, s.db.Create(&coupon).Error)

	req, err := http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(web.CreateOrderReq{
			RequestID:     "e2e-create-1",
			PaymentMethod: "credit_card",
			Subtotal:      25800,
			Total:         25800,
			CouponID:      coupon.Id,
			Items: []web.OrderItem{
				{ProductID: pid, Quantity: 2, Price: 12900},
			},
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.Order]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan()
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, string(domain.StatusPending), resp.Data.Status)
	assert.Equal(t, testUID, resp.Data.UserID)
	assert.Len(t, resp.Data.SN, 32)
	// 库存和券用量在同一个事务里动了
	assert.Equal(t, int64(8), s.stockOf(pid))
	var c dao.Coupon
	require.NoError(t, s.db.Where("id = ?", coupon.Id).First(&c).Error)
	assert.Equal(t, int64(1), c.UsageCount)
}

func (s *OrderModuleTestSuite) TestHandler_CreateInsufficientStock() {
	t := s.T()
	pid := s.seedProduct("烟酰胺面膜", 1)

	req, err := http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(web.CreateOrderReq{
			RequestID: "e2e-stock-1",
			Subtotal:  9900,
			Total:     9900,
			Items: []web.OrderItem{
				{ProductID: pid, Quantity: 3, Price: 3300},
			},
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan()
	assert.Equal(t, errs.InsufficientStock.Code, resp.Code)
	// 校验失败时库存原样，订单一条都没落
	assert.Equal(t, int64(1), s.stockOf(pid))
	var count int64
	require.NoError(t, s.db.Model(&dao.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func (s *OrderModuleTestSuite) TestHandler_CreateDuplicateRequest() {
	t := s.T()
	pid := s.seedProduct("洁面乳", 5)
	body := func() io.Reader {
		return iox.NewJSONReader(web.CreateOrderReq{
			RequestID: "e2e-dup-1",
			Subtotal:  5900,
			Total:     5900,
			Items: []web.OrderItem{
				{ProductID: pid, Quantity: 1, Price: 5900},
			},
		})
	}

	req, err := http.NewRequest(http.MethodPost, "/order/create", body())
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.Order]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	require.Equal(t, 0, recorder.MustScan().Code)

	req, err = http.NewRequest(http.MethodPost, "/order/create", body())
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	dupRecorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(dupRecorder, req)
	require.Equal(t, 200, dupRecorder.Code)
	assert.Equal(t, errs.DuplicateRequest.Code, dupRecorder.MustScan().Code)
	assert.Equal(t, int64(4), s.stockOf(pid))
}

func (s *OrderModuleTestSuite) TestAdminHandler_UpdateStatusArchives() {
	t := s.T()
	pid := s.seedProduct("精华水", 10)
	o, err := s.svc.CreateOrder(context.Background(), "e2e-archive-1", domain.Order{
		Uid:      testUID,
		Subtotal: 9900,
		Total:    9900,
		Items: []domain.OrderItem{
			{ProductID: pid, Quantity: 1, Price: 9900},
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/order/status", iox.NewJSONReader(web.UpdateStatusReq{
			OrderID: o.ID,
			Status:  string(domain.StatusDelivered),
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.adminServer.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	require.Equal(t, 0, recorder.MustScan().Code)

	// 活跃分区没了，归档分区按原ID能查到
	var count int64
	require.NoError(t, s.db.Model(&dao.Order{}).Where("id = ?", o.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	var archived dao.DeliveredOrder
	require.NoError(t, s.db.Where("id = ?", o.ID).First(&archived).Error)
	assert.Equal(t, o.SN, archived.SN)
	assert.NotZero(t, archived.DeliveredAt)

	detail, err := s.svc.FindOrderByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, detail.Status)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, pid, detail.Items[0].ProductID)
}

func (s *OrderModuleTestSuite) TestService_UpdateStatusResubmitSameStatus() {
	t := s.T()
	pid := s.seedProduct("面膜", 10)
	o, err := s.svc.CreateOrder(context.Background(), "e2e-resubmit-1", domain.Order{
		Uid:      testUID,
		Subtotal: 9900,
		Total:    9900,
		Items: []domain.OrderItem{
			{ProductID: pid, Quantity: 1, Price: 9900},
		},
	})
	require.NoError(t, err)

	// 同一毫秒内重复提交同一个状态，列值不变也不能误报订单不存在
	require.NoError(t, s.svc.UpdateStatus(context.Background(),
		o.ID, domain.StatusProcessing, domain.Tracking{}, ""))
	require.NoError(t, s.svc.UpdateStatus(context.Background(),
		o.ID, domain.StatusProcessing, domain.Tracking{}, ""))

	got, err := s.svc.FindOrderByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)
}

func (s *OrderModuleTestSuite) TestService_ConcurrentArchival() {
	t := s.T()
	pid := s.seedProduct("口红", 10)
	o, err := s.svc.CreateOrder(context.Background(), "e2e-race-1", domain.Order{
		Uid:      testUID,
		Subtotal: 19900,
		Total:    19900,
		Items: []domain.OrderItem{
			{ProductID: pid, Quantity: 1, Price: 19900},
		},
	})
	require.NoError(t, err)

	// 并发归档只允许一个成功，另一个看到行已被删
	const workers = 2
	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			errCh <- s.svc.UpdateStatus(context.Background(),
				o.ID, domain.StatusDelivered, domain.Tracking{}, "")
		}()
	}
	wg.Wait()
	close(errCh)

	var succeeded, notFound int
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, dao.ErrOrderNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, notFound)

	var count int64
	require.NoError(t, s.db.Model(&dao.DeliveredOrder{}).Where("id = ?", o.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
