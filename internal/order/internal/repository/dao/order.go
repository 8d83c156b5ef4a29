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
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound     = errors.New("订单未找到")
	ErrProductNotFound   = errors.New("商品不存在")
	ErrInsufficientStock = errors.New("库存不足")
)

// InsufficientStockError 带上商品与数量信息，方便前台提示
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("库存不足: 商品ID=%d 剩余=%d 请求=%d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

const (
	statusPending   = "Pending"
	statusShipped   = "Shipped"
	statusDelivered = "Delivered"
	statusCancelled = "Cancelled"
)

// Order 活跃分区。订单任一时刻只会出现在
// orders/delivered_orders/cancelled_orders 三张表中的一张里
type Order struct {
	Id                 int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN                 string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	Uid                int64  `gorm:"not null;index:idx_uid;comment:购买者ID"`
	ShippingAddressId  int64  `gorm:"not null;comment:收货地址ID"`
	PaymentMethod      string `gorm:"type:varchar(64);not null;comment:支付方式"`
	Subtotal           int64  `gorm:"not null;comment:商品小计;单位为分"`
	Tax                int64  `gorm:"not null;default:0;comment:税费;单位为分"`
	Discount           int64  `gorm:"not null;default:0;comment:折扣金额;单位为分"`
	ShippingCost       int64  `gorm:"not null;default:0;comment:运费;单位为分"`
	GiftWrap           bool   `gorm:"not null;default:false;comment:是否礼品包装"`
	GiftWrapCost       int64  `gorm:"not null;default:0;comment:礼品包装费;单位为分"`
	Total              int64  `gorm:"not null;comment:实付总价;单位为分"`
	Status             string `gorm:"type:varchar(32);not null;default:'Pending';index:idx_status;comment:Pending|Processing|Shipped"`
	TrackingNumber     string `gorm:"type:varchar(255);not null;default:'';comment:运单号,仅Shipped状态有值"`
	CourierName        string `gorm:"type:varchar(255);not null;default:'';comment:承运商名称"`
	CourierWebsite     string `gorm:"type:varchar(1024);not null;default:'';comment:承运商查询地址"`
	CouponId           int64  `gorm:"not null;default:0;comment:使用的优惠券ID,0表示未用券"`
	PaymentConfirmed   bool   `gorm:"not null;default:false;comment:支付是否确认"`
	CancellationReason string `gorm:"type:varchar(1024);not null;default:'';comment:取消原因"`
	Ctime              int64
	Utime              int64
	// DeliveredAt CancelledAt 不落在orders表里，
	// 只在从归档分区探测回来时带出终态时间戳
	DeliveredAt int64 `gorm:"-"`
	CancelledAt int64 `gorm:"-"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id        int64 `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64 `gorm:"not null;index:idx_order_id;comment:订单ID"`
	ProductId int64 `gorm:"not null;comment:商品ID"`
	Quantity  int64 `gorm:"not null;comment:购买数量"`
	Price     int64 `gorm:"not null;comment:下单时单价快照;单位为分"`
	Ctime     int64
}

func (OrderItem) TableName() string {
	return "order_items"
}

// DeliveredOrder 归档时沿用原订单ID，保证三分区内按ID探测一致
type DeliveredOrder struct {
	Id                 int64  `gorm:"primaryKey;comment:原订单ID"`
	SN                 string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_delivered_order_sn;comment:订单序列号"`
	Uid                int64  `gorm:"not null;index:idx_uid;comment:购买者ID"`
	ShippingAddressId  int64  `gorm:"not null;comment:收货地址ID"`
	PaymentMethod      string `gorm:"type:varchar(64);not null;comment:支付方式"`
	Subtotal           int64  `gorm:"not null;comment:商品小计;单位为分"`
	Tax                int64  `gorm:"not null;default:0;comment:税费;单位为分"`
	Discount           int64  `gorm:"not null;default:0;comment:折扣金额;单位为分"`
	ShippingCost       int64  `gorm:"not null;default:0;comment:运费;单位为分"`
	GiftWrap           bool   `gorm:"not null;default:false;comment:是否礼品包装"`
	GiftWrapCost       int64  `gorm:"not null;default:0;comment:礼品包装费;单位为分"`
	Total              int64  `gorm:"not null;comment:实付总价;单位为分"`
	TrackingNumber     string `gorm:"type:varchar(255);not null;default:'';comment:运单号"`
	CourierName        string `gorm:"type:varchar(255);not null;default:'';comment:承运商名称"`
	CourierWebsite     string `gorm:"type:varchar(1024);not null;default:'';comment:承运商查询地址"`
	CouponId           int64  `gorm:"not null;default:0;comment:使用的优惠券ID"`
	PaymentConfirmed   bool   `gorm:"not null;default:false;comment:支付是否确认"`
	Ctime              int64
	Utime              int64
	DeliveredAt        int64 `gorm:"not null;comment:送达归档时间"`
}

func (DeliveredOrder) TableName() string {
	return "delivered_orders"
}

type DeliveredOrderItem struct {
	Id        int64 `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64 `gorm:"not null;index:idx_order_id;comment:原订单ID"`
	ProductId int64 `gorm:"not null;comment:商品ID"`
	Quantity  int64 `gorm:"not null;comment:购买数量"`
	Price     int64 `gorm:"not null;comment:下单时单价快照;单位为分"`
	Ctime     int64
}

func (DeliveredOrderItem) TableName() string {
	return "delivered_order_items"
}

type CancelledOrder struct {
	Id                 int64  `gorm:"primaryKey;comment:原订单ID"`
	SN                 string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_cancelled_order_sn;comment:订单序列号"`
	Uid                int64  `gorm:"not null;index:idx_uid;comment:购买者ID"`
	ShippingAddressId  int64  `gorm:"not null;comment:收货地址ID"`
	PaymentMethod      string `gorm:"type:varchar(64);not null;comment:支付方式"`
	Subtotal           int64  `gorm:"not null;comment:商品小计;单位为分"`
	Tax                int64  `gorm:"not null;default:0;comment:税费;单位为分"`
	Discount           int64  `gorm:"not null;default:0;comment:折扣金额;单位为分"`
	ShippingCost       int64  `gorm:"not null;default:0;comment:运费;单位为分"`
	GiftWrap           bool   `gorm:"not null;default:false;comment:是否礼品包装"`
	GiftWrapCost       int64  `gorm:"not null;default:0;comment:礼品包装费;单位为分"`
	Total              int64  `gorm:"not null;comment:实付总价;单位为分"`
	TrackingNumber     string `gorm:"type:varchar(255);not null;default:'';comment:运单号"`
	CourierName        string `gorm:"type:varchar(255);not null;default:'';comment:承运商名称"`
	CourierWebsite     string `gorm:"type:varchar(1024);not null;default:'';comment:承运商查询地址"`
	CouponId           int64  `gorm:"not null;default:0;comment:使用的优惠券ID"`
	PaymentConfirmed   bool   `gorm:"not null;default:false;comment:支付是否确认"`
	CancellationReason string `gorm:"type:varchar(1024);not null;default:'';comment:取消原因"`
	Ctime              int64
	Utime              int64
	CancelledAt        int64 `gorm:"not null;comment:取消归档时间"`
}

func (CancelledOrder) TableName() string {
	return "cancelled_orders"
}

type CancelledOrderItem struct {
	Id        int64 `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64 `gorm:"not null;index:idx_order_id;comment:原订单ID"`
	ProductId int64 `gorm:"not null;comment:商品ID"`
	Quantity  int64 `gorm:"not null;comment:购买数量"`
	Price     int64 `gorm:"not null;comment:下单时单价快照;单位为分"`
	Ctime     int64
}

func (CancelledOrderItem) TableName() string {
	return "cancelled_order_items"
}

// Product 共享products表的最小映射，扣库存必须和下单共事务。
// 表结构归商品模块管，这里不参与建表
type Product struct {
	Id            int64
	Name          string
	StockQuantity int64
}

func (Product) TableName() string {
	return "products"
}

// Coupon 共享coupons表的最小映射，只用于事务内递增usage_count
type Coupon struct {
	Id         int64
	UsageCount int64
}

func (Coupon) TableName() string {
	return "coupons"
}

type OrderDAO interface {
	// Create 检查库存在前，任何写入在后，整体一个事务
	Create(ctx context.Context, o Order, items []OrderItem) (int64, error)
	// UpdateStatus 活跃分区内的原地状态变更，新状态不是Shipped时清空运单字段
	UpdateStatus(ctx context.Context, id int64, status string,
		trackingNumber, courierName, courierWebsite string) error
	ArchiveToDelivered(ctx context.Context, id int64) error
	ArchiveToCancelled(ctx context.Context, id int64, reason string) error
	// FindByID 依次探测 active → delivered → cancelled
	FindByID(ctx context.Context, id int64) (Order, []OrderItem, error)
	ListActive(ctx context.Context, uid int64, offset, limit int) ([]Order, error)
	CountActive(ctx context.Context, uid int64) (int64, error)
	ListDelivered(ctx context.Context, offset, limit int) ([]DeliveredOrder, error)
	CountDelivered(ctx context.Context) (int64, error)
	ListCancelled(ctx context.Context, offset, limit int) ([]CancelledOrder, error)
	CountCancelled(ctx context.Context) (int64, error)
}

type orderDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &orderDAO{db: db}
}

func (g *orderDAO) Create(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	o.Ctime, o.Utime = now, now
	o.Status = statusPending
	o.PaymentConfirmed = false
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先锁住全部商品行并校验库存，确认无误前不做任何写入
		for _, item := range items {
			var p Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", item.ProductId).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 商品ID=%d", ErrProductNotFound, item.ProductId)
			}
			if err != nil {
				return err
			}
			if p.StockQuantity < item.Quantity {
				return &InsufficientStockError{
					ProductID: item.ProductId,
					Available: p.StockQuantity,
					Requested: item.Quantity,
				}
			}
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime = now
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			err := tx.Model(&Product{}).
				Where("id = ?", item.ProductId).
				UpdateColumn("stock_quantity",
					gorm.Expr("stock_quantity - ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}
		if o.CouponId > 0 {
			return tx.Model(&Coupon{}).
				Where("id = ?", o.CouponId).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
		}
		return nil
	})
	return o.Id, err
}

func (g *orderDAO) UpdateStatus(ctx context.Context, id int64, status string,
	trackingNumber, courierName, courierWebsite string) error {
	updates := map[string]any{
		"status": status,
		"utime":  time.Now().UnixMilli(),
	}
	if status == statusShipped {
		updates["tracking_number"] = trackingNumber
		updates["courier_name"] = courierName
		updates["courier_website"] = courierWebsite
	} else {
		// 离开Shipped即清空运单字段
		updates["tracking_number"] = ""
		updates["courier_name"] = ""
		updates["courier_website"] = ""
	}
	// 不能拿 RowsAffected 判断订单存在：列值没变化时 MySQL 报 0 行
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&o).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		return tx.Model(&Order{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (g *orderDAO) ArchiveToDelivered(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, items, err := g.lockActive(tx, id)
		if err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		d := DeliveredOrder{
			Id:                o.Id,
			SN:                o.SN,
			Uid:               o.Uid,
			ShippingAddressId: o.ShippingAddressId,
			PaymentMethod:     o.PaymentMethod,
			Subtotal:          o.Subtotal,
			Tax:               o.Tax,
			Discount:          o.Discount,
			ShippingCost:      o.ShippingCost,
			GiftWrap:          o.GiftWrap,
			GiftWrapCost:      o.GiftWrapCost,
			Total:             o.Total,
			TrackingNumber:    o.TrackingNumber,
			CourierName:       o.CourierName,
			CourierWebsite:    o.CourierWebsite,
			CouponId:          o.CouponId,
			PaymentConfirmed:  o.PaymentConfirmed,
			Ctime:             o.Ctime,
			Utime:             now,
			DeliveredAt:       now,
		}
		if err = tx.Create(&d).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			dItems := make([]DeliveredOrderItem, 0, len(items))
			for _, item := range items {
				dItems = append(dItems, DeliveredOrderItem{
					OrderId:   o.Id,
					ProductId: item.ProductId,
					Quantity:  item.Quantity,
					Price:     item.Price,
					Ctime:     item.Ctime,
				})
			}
			if err = tx.Create(&dItems).Error; err != nil {
				return err
			}
		}
		return g.deleteActive(tx, id)
	})
}

func (g *orderDAO) ArchiveToCancelled(ctx context.Context, id int64, reason string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, items, err := g.lockActive(tx, id)
		if err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		c := CancelledOrder{
			Id:                 o.Id,
			SN:                 o.SN,
			Uid:                o.Uid,
			ShippingAddressId:  o.ShippingAddressId,
			PaymentMethod:      o.PaymentMethod,
			Subtotal:           o.Subtotal,
			Tax:                o.Tax,
			Discount:           o.Discount,
			ShippingCost:       o.ShippingCost,
			GiftWrap:           o.GiftWrap,
			GiftWrapCost:       o.GiftWrapCost,
			Total:              o.Total,
			TrackingNumber:     o.TrackingNumber,
			CourierName:        o.CourierName,
			CourierWebsite:     o.CourierWebsite,
			CouponId:           o.CouponId,
			PaymentConfirmed:   o.PaymentConfirmed,
			CancellationReason: reason,
			Ctime:              o.Ctime,
			Utime:              now,
			CancelledAt:        now,
		}
		if err = tx.Create(&c).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			cItems := make([]CancelledOrderItem, 0, len(items))
			for _, item := range items {
				cItems = append(cItems, CancelledOrderItem{
					OrderId:   o.Id,
					ProductId: item.ProductId,
					Quantity:  item.Quantity,
					Price:     item.Price,
					Ctime:     item.Ctime,
				})
			}
			if err = tx.Create(&cItems).Error; err != nil {
				return err
			}
		}
		return g.deleteActive(tx, id)
	})
}

// lockActive 锁住活跃分区的订单行，两个并发归档只会有一个拿到行，
// 另一个在锁释放后看到行已被删，得到 ErrOrderNotFound
func (g *orderDAO) lockActive(tx *gorm.DB, id int64) (Order, []OrderItem, error) {
	var o Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, nil, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	err = tx.Where("order_id = ?", id).Find(&items).Error
	if err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (g *orderDAO) deleteActive(tx *gorm.DB, id int64) error {
	if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&Order{}).Error
}

func (g *orderDAO) FindByID(ctx context.Context, id int64) (Order, []OrderItem, error) {
	db := g.db.WithContext(ctx)
	var o Order
	err := db.Where("id = ?", id).First(&o).Error
	if err == nil {
		var items []OrderItem
		err = db.Where("order_id = ?", id).Find(&items).Error
		return o, items, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, nil, err
	}

	var d DeliveredOrder
	err = db.Where("id = ?", id).First(&d).Error
	if err == nil {
		var dItems []DeliveredOrderItem
		if err = db.Where("order_id = ?", id).Find(&dItems).Error; err != nil {
			return Order{}, nil, err
		}
		items := make([]OrderItem, 0, len(dItems))
		for _, item := range dItems {
			items = append(items, OrderItem{
				Id:        item.Id,
				OrderId:   item.OrderId,
				ProductId: item.ProductId,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Ctime:     item.Ctime,
			})
		}
		return deliveredToOrder(d), items, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, nil, err
	}

	var c CancelledOrder
	err = db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, nil, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, nil, err
	}
	var cItems []CancelledOrderItem
	if err = db.Where("order_id = ?", id).Find(&cItems).Error; err != nil {
		return Order{}, nil, err
	}
	items := make([]OrderItem, 0, len(cItems))
	for _, item := range cItems {
		items = append(items, OrderItem{
			Id:        item.Id,
			OrderId:   item.OrderId,
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Ctime:     item.Ctime,
		})
	}
	return cancelledToOrder(c), items, nil
}

func (g *orderDAO) ListActive(ctx context.Context, uid int64, offset, limit int) ([]Order, error) {
	var os []Order
	db := g.db.WithContext(ctx)
	if uid > 0 {
		db = db.Where("uid = ?", uid)
	}
	err := db.Order("id DESC").Offset(offset).Limit(limit).Find(&os).Error
	return os, err
}

func (g *orderDAO) CountActive(ctx context.Context, uid int64) (int64, error) {
	var count int64
	db := g.db.WithContext(ctx).Model(&Order{})
	if uid > 0 {
		db = db.Where("uid = ?", uid)
	}
	err := db.Count(&count).Error
	return count, err
}

func (g *orderDAO) ListDelivered(ctx context.Context, offset, limit int) ([]DeliveredOrder, error) {
	var os []DeliveredOrder
	err := g.db.WithContext(ctx).
		Order("delivered_at DESC").
		Offset(offset).Limit(limit).
		Find(&os).Error
	return os, err
}

func (g *orderDAO) CountDelivered(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&DeliveredOrder{}).Count(&count).Error
	return count, err
}

func (g *orderDAO) ListCancelled(ctx context.Context, offset, limit int) ([]CancelledOrder, error) {
	var os []CancelledOrder
	err := g.db.WithContext(ctx).
		Order("cancelled_at DESC").
		Offset(offset).Limit(limit).
		Find(&os).Error
	return os, err
}

func (g *orderDAO) CountCancelled(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&CancelledOrder{}).Count(&count).Error
	return count, err
}

func deliveredToOrder(d DeliveredOrder) Order {
	return Order{
		Id:                d.Id,
		SN:                d.SN,
		Uid:               d.Uid,
		ShippingAddressId: d.ShippingAddressId,
		PaymentMethod:     d.PaymentMethod,
		Subtotal:          d.Subtotal,
		Tax:               d.Tax,
		Discount:          d.Discount,
		ShippingCost:      d.ShippingCost,
		GiftWrap:          d.GiftWrap,
		GiftWrapCost:      d.GiftWrapCost,
		Total:             d.Total,
		Status:            statusDelivered,
		TrackingNumber:    d.TrackingNumber,
		CourierName:       d.CourierName,
		CourierWebsite:    d.CourierWebsite,
		CouponId:          d.CouponId,
		PaymentConfirmed:  d.PaymentConfirmed,
		Ctime:             d.Ctime,
		Utime:             d.Utime,
		DeliveredAt:       d.DeliveredAt,
	}
}

func cancelledToOrder(c CancelledOrder) Order {
	return Order{
		Id:                 c.Id,
		SN:                 c.SN,
		Uid:                c.Uid,
		ShippingAddressId:  c.ShippingAddressId,
		PaymentMethod:      c.PaymentMethod,
		Subtotal:           c.Subtotal,
		Tax:                c.Tax,
		Discount:           c.Discount,
		ShippingCost:       c.ShippingCost,
		GiftWrap:           c.GiftWrap,
		GiftWrapCost:       c.GiftWrapCost,
		Total:              c.Total,
		Status:             statusCancelled,
		TrackingNumber:     c.TrackingNumber,
		CourierName:        c.CourierName,
		CourierWebsite:     c.CourierWebsite,
		CouponId:           c.CouponId,
		PaymentConfirmed:   c.PaymentConfirmed,
		CancellationReason: c.CancellationReason,
		Ctime:              c.Ctime,
		Utime:              c.Utime,
		CancelledAt:        c.CancelledAt,
	}
}

// InitTables 不包含共享的products/coupons表，那两张表归各自模块建
func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&Order{}, &OrderItem{},
		&DeliveredOrder{}, &DeliveredOrderItem{},
		&CancelledOrder{}, &CancelledOrderItem{},
	)
}
