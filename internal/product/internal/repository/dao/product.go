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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("商品未找到")

// Product 商品表，stock_quantity 由订单模块在下单事务中扣减，管理端更新可直接覆盖
type Product struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	Name          string `gorm:"type:varchar(255);not null;index:idx_name;comment:商品名称"`
	Description   string `gorm:"type:text;comment:商品描述"`
	BrandName     string `gorm:"type:varchar(255);not null;default:'';comment:品牌名称"`
	Price         int64  `gorm:"not null;comment:单价;单位为分, 999表示9.99元"`
	StockQuantity int64  `gorm:"not null;default:0;comment:库存数量"`
	ImageURL      string `gorm:"type:varchar(1024);not null;default:'';comment:主图URL"`
	Ctime         int64
	Utime         int64
}

func (Product) TableName() string {
	return "products"
}

type ProductDAO interface {
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, p Product) error
	FindByID(ctx context.Context, id int64) (Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, offset, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
}

type productDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &productDAO{db: db}
}

func (g *productDAO) Create(ctx context.Context, p Product) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := g.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

func (g *productDAO) Update(ctx context.Context, p Product) error {
	p.Utime = time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", p.Id).
		Updates(map[string]any{
			"name":           p.Name,
			"description":    p.Description,
			"brand_name":     p.BrandName,
			"price":          p.Price,
			"stock_quantity": p.StockQuantity,
			"image_url":      p.ImageURL,
			"utime":          p.Utime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (g *productDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := g.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (g *productDAO) FindByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	var res []Product
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (g *productDAO) List(ctx context.Context, offset, limit int) ([]Product, error) {
	var res []Product
	err := g.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *productDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Product{}).Count(&count).Error
	return count, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{})
}
