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

type ValidateCouponReq struct {
	Code string `json:"code"`
	// Total 购物车金额，单位为分
	Total int64 `json:"total"`
}

type ValidateCouponResp struct {
	Coupon   Coupon `json:"coupon"`
	Discount int64  `json:"discount"`
}

type Coupon struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Type           string `json:"type"`
	Value          int64  `json:"value"`
	ExpirationDate int64  `json:"expirationDate"`
	UsageLimit     int64  `json:"usageLimit"`
	UsageCount     int64  `json:"usageCount"`
	MinPurchase    int64  `json:"minPurchase"`
	Active         bool   `json:"active"`
}

type SaveCouponReq struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Type           string `json:"type"`
	Value          int64  `json:"value"`
	ExpirationDate int64  `json:"expirationDate"`
	UsageLimit     int64  `json:"usageLimit"`
	MinPurchase    int64  `json:"minPurchase"`
	Active         bool   `json:"active"`
}

type SaveCouponResp struct {
	ID int64 `json:"id"`
}

type ListCouponsReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListCouponsResp struct {
	Total   int64    `json:"total"`
	Coupons []Coupon `json:"coupons"`
}
