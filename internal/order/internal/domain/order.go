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

package domain

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal 归档后状态不再变化
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Tracking 只在Shipped状态下有值，离开Shipped即清空
type Tracking struct {
	Number         string
	CourierName    string
	CourierWebsite string
}

func (t Tracking) Complete() bool {
	return t.Number != "" && t.CourierName != "" && t.CourierWebsite != ""
}

type Order struct {
	ID  int64
	SN  string
	Uid int64
	// ShippingAddressID 收货地址引用，地址本身归外围CRUD管
	ShippingAddressID int64
	PaymentMethod     string
	// 金额单位都是分。Total = Subtotal - Discount + Tax + ShippingCost + GiftWrapCost，
	// 由下单方核算，这里原样落库以便审计
	Subtotal     int64
	Tax          int64
	Discount     int64
	ShippingCost int64
	GiftWrap     bool
	GiftWrapCost int64
	Total        int64
	Status       Status
	Tracking     Tracking
	// CouponID 0表示没有用券
	CouponID           int64
	PaymentConfirmed   bool
	CancellationReason string
	Items              []OrderItem
	Ctime              int64
	Utime              int64
	// DeliveredAt CancelledAt 归档时服务端打的终态时间戳
	DeliveredAt int64
	CancelledAt int64
}

// OrderItem 单价是下单时刻的快照，创建后不可变
type OrderItem struct {
	ID        int64
	ProductID int64
	Quantity  int64
	Price     int64
}
