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

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

type Coupon struct {
	ID   int64
	Code string
	Type DiscountType
	// Value 百分比折扣时为百分数(例如10表示九折)，固定金额折扣时单位为分
	Value int64
	// ExpirationDate 过期时间毫秒数，0表示永不过期
	ExpirationDate int64
	// UsageLimit 0表示不限次数
	UsageLimit int64
	UsageCount int64
	// MinPurchase 最低消费金额，单位为分，0表示不限
	MinPurchase int64
	Active      bool
}

// DiscountFor 计算total金额下本券的折扣金额，单位为分
func (c Coupon) DiscountFor(total int64) int64 {
	switch c.Type {
	case DiscountTypePercentage:
		return total * c.Value / 100
	case DiscountTypeFixedAmount:
		if c.Value > total {
			return total
		}
		return c.Value
	default:
		return 0
	}
}
