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

package dao

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestProductDAO_Update(t *testing.T) {
	testCases := []struct {
		name    string
		product Product
		mock    func(t *testing.T) *sql.DB
		wantErr error
	}{
		{
			// 补货场景：stock_quantity 必须出现在 UPDATE 语句里
			name: "更新库存",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `products` SET .*`stock_quantity`=.* WHERE id = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			product: Product{
				Id:            1,
				Name:          "玫瑰精华液",
				Price:         12900,
				StockQuantity: 42,
			},
		},
		{
			name: "商品不存在",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `products` SET .*").
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
			product: Product{Id: 999},
			wantErr: ErrProductNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := gorm.Open(gormMysql.New(gormMysql.Config{
				Conn:                      tc.mock(t),
				SkipInitializeWithVersion: true,
			}), &gorm.Config{
				DisableAutomaticPing:   true,
				SkipDefaultTransaction: true,
			})
			require.NoError(t, err)
			d := NewProductGORMDAO(db)
			err = d.Update(context.Background(), tc.product)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}
