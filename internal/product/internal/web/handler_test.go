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

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/nayalc/beautyshop/internal/product/internal/domain"
	"github.com/nayalc/beautyshop/internal/product/internal/repository/dao"
	"github.com/nayalc/beautyshop/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	products map[int64]domain.Product
}

func (f fakeService) Create(ctx context.Context, p domain.Product) (int64, error) {
	panic("不该被调用")
}

func (f fakeService) Update(ctx context.Context, p domain.Product) error {
	panic("不该被调用")
}

func (f fakeService) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, dao.ErrProductNotFound
	}
	return p, nil
}

func (f fakeService) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	res := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f fakeService) List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error) {
	res := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		res = append(res, p)
	}
	return res, int64(len(f.products)), nil
}

func newTestServer(t *testing.T) *egin.Component {
	t.Helper()
	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	hdl := NewHandler(fakeService{products: map[int64]domain.Product{
		1: {
			ID:            1,
			Name:          "玫瑰精华液",
			BrandName:     "nayalc",
			Price:         12900,
			StockQuantity: 10,
			ImageURL:      "https://cdn.nayalc.com/product-images/1.jpg",
		},
	}})
	hdl.PublicRoutes(server.Engine)
	return server
}

func TestHandler_Detail(t *testing.T) {
	server := newTestServer(t)

	body, err := json.Marshal(DetailReq{ID: 1})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/product/detail", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := test.NewJSONResponseRecorder[Product]()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	p := recorder.MustScan().Data
	assert.Equal(t, "玫瑰精华液", p.Name)
	assert.Equal(t, int64(12900), p.Price)
	assert.Equal(t, int64(10), p.StockQuantity)
}

func TestHandler_DetailNotFound(t *testing.T) {
	server := newTestServer(t)

	body, err := json.Marshal(DetailReq{ID: 999})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/product/detail", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var res test.Result[any]
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	assert.Equal(t, productNotFoundResult.Code, res.Code)
}

func TestHandler_List(t *testing.T) {
	server := newTestServer(t)

	body, err := json.Marshal(ListProductsReq{Offset: 0, Limit: 10})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/product/list", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := test.NewJSONResponseRecorder[ListProductsResp]()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := recorder.MustScan().Data
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "nayalc", resp.Products[0].BrandName)
}
