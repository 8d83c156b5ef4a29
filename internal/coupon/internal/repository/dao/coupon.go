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
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("优惠券未找到")
	ErrCouponCodeDuplicate = errors.New("券码已存在")
)

// Coupon 优惠券表，usage_count 由订单模块在下单事务中递增
type Coupon struct {
	Id             int64  `gorm:"primaryKey;autoIncrement;comment:优惠券自增ID"`
	Code           string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_code;comment:券码"`
	Type           string `gorm:"type:varchar(16);not null;comment:折扣类型 percentage|fixed_amount"`
	Value          int64  `gorm:"not null;comment:折扣值;百分比折扣为百分数,固定金额单位为分"`
	ExpirationDate int64  `gorm:"not null;default:0;comment:过期时间毫秒数,0表示永不过期"`
	UsageLimit     int64  `gorm:"not null;default:0;comment:使用次数上限,0表示不限"`
	UsageCount     int64  `gorm:"not null;default:0;comment:已使用次数"`
	MinPurchase    int64  `gorm:"not null;default:0;comment:最低消费金额,单位为分,0表示不限"`
	Active         bool   `gorm:"not null;default:true;comment:是否启用"`
	Ctime          int64
	Utime          int64
}

func (Coupon) TableName() string {
	return "coupons"
}

type CouponDAO interface {
	Create(ctx context.Context, c Coupon) (int64, error)
	Update(ctx context.Context, c Coupon) error
	FindByID(ctx context.Context, id int64) (Coupon, error)
	FindByCode(ctx context.Context, code string) (Coupon, error)
	List(ctx context.Context, offset, limit int) ([]Coupon, error)
	Count(ctx context.Context) (int64, error)
}

type couponDAO struct {
	db *egorm.Component
}

func NewCouponGORMDAO(db *egorm.Component) CouponDAO {
	return &couponDAO{db: db}
}

func (g *couponDAO) Create(ctx context.Context, c Coupon) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := g.db.WithContext(ctx).Create(&c).Error
	if me, ok := err.(*mysql.MySQLError); ok {
		const uniqueIndexConflict uint16 = 1062
		if me.Number == uniqueIndexConflict {
			return 0, ErrCouponCodeDuplicate
		}
	}
	return c.Id, err
}

func (g *couponDAO) Update(ctx context.Context, c Coupon) error {
	c.Utime = time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ?", c.Id).
		Updates(map[string]any{
			"code":            c.Code,
			"type":            c.Type,
			"value":           c.Value,
			"expiration_date": c.ExpirationDate,
			"usage_limit":     c.UsageLimit,
			"min_purchase":    c.MinPurchase,
			"active":          c.Active,
			"utime":           c.Utime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (g *couponDAO) FindByID(ctx context.Context, id int64) (Coupon, error) {
	var c Coupon
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Coupon{}, ErrCouponNotFound
	}
	return c, err
}

func (g *couponDAO) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var c Coupon
	err := g.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Coupon{}, ErrCouponNotFound
	}
	return c, err
}

func (g *couponDAO) List(ctx context.Context, offset, limit int) ([]Coupon, error) {
	var cs []Coupon
	err := g.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&cs).Error
	return cs, err
}

func (g *couponDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Coupon{}).Count(&count).Error
	return count, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Coupon{})
}
