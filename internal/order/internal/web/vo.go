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
	"github.com/ecodeclub/ekit/slice"
	"github.com/nayalc/beautyshop/internal/order/internal/domain"
)

type Order struct {
	ID                 int64       `json:"id"`
	SN                 string      `json:"sn"`
	UserID             int64       `json:"userId"`
	ShippingAddressID  int64       `json:"shippingAddressId"`
	PaymentMethod      string      `json:"paymentMethod"`
	Subtotal           int64       `json:"subtotal"`
	Tax                int64       `json:"tax"`
	Discount           int64       `json:"discount"`
	ShippingCost       int64       `json:"shippingCost"`
	GiftWrap           bool        `json:"giftWrap"`
	GiftWrapCost       int64       `json:"giftWrapCost"`
	Total              int64       `json:"total"`
	Status             string      `json:"status"`
	TrackingNumber     string      `json:"trackingNumber,omitempty"`
	CourierName        string      `json:"courierName,omitempty"`
	CourierWebsite     string      `json:"courierWebsite,omitempty"`
	CouponID           int64       `json:"couponId,omitempty"`
	PaymentConfirmed   bool        `json:"paymentConfirmed"`
	CancellationReason string      `json:"cancellationReason,omitempty"`
	Items              []OrderItem `json:"items,omitempty"`
	Ctime              int64       `json:"ctime"`
	Utime              int64       `json:"utime"`
	DeliveredAt        int64       `json:"deliveredAt,omitempty"`
	CancelledAt        int64       `json:"cancelledAt,omitempty"`
}

type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type CreateOrderReq struct {
	// RequestID 由前端生成，用来挡重复提交
	RequestID         string      `json:"requestId"`
	ShippingAddressID int64       `json:"shippingAddressId"`
	PaymentMethod     string      `json:"paymentMethod"`
	Subtotal          int64       `json:"subtotal"`
	Tax               int64       `json:"tax"`
	Discount          int64       `json:"discount"`
	ShippingCost      int64       `json:"shippingCost"`
	GiftWrap          bool        `json:"giftWrap"`
	GiftWrapCost      int64       `json:"giftWrapCost"`
	Total             int64       `json:"total"`
	CouponID          int64       `json:"couponId"`
	Items             []OrderItem `json:"items"`
}

type OrderIDReq struct {
	OrderID int64 `json:"orderId"`
}

type ListOrdersReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type UpdateStatusReq struct {
	OrderID            int64  `json:"orderId"`
	Status             string `json:"status"`
	TrackingNumber     string `json:"trackingNumber"`
	CourierName        string `json:"courierName"`
	CourierWebsite     string `json:"courierWebsite"`
	CancellationReason string `json:"cancellationReason"`
}

func toOrderVO(o domain.Order) Order {
	return Order{
		ID:                 o.ID,
		SN:                 o.SN,
		UserID:             o.Uid,
		ShippingAddressID:  o.ShippingAddressID,
		PaymentMethod:      o.PaymentMethod,
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		Discount:           o.Discount,
		ShippingCost:       o.ShippingCost,
		GiftWrap:           o.GiftWrap,
		GiftWrapCost:       o.GiftWrapCost,
		Total:              o.Total,
		Status:             string(o.Status),
		TrackingNumber:     o.Tracking.Number,
		CourierName:        o.Tracking.CourierName,
		CourierWebsite:     o.Tracking.CourierWebsite,
		CouponID:           o.CouponID,
		PaymentConfirmed:   o.PaymentConfirmed,
		CancellationReason: o.CancellationReason,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				ProductID: src.ProductID,
				Quantity:  src.Quantity,
				Price:     src.Price,
			}
		}),
		Ctime:       o.Ctime,
		Utime:       o.Utime,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
	}
}
