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

// OrderSummary 邮件正文需要的订单摘要
type OrderSummary struct {
	OrderID int64
	Status  string
	// Total 单位为分
	Total int64
	Items []OrderItemSummary
}

type OrderItemSummary struct {
	ProductName string
	Quantity    int64
	// Price 下单时的单价快照，单位为分
	Price int64
}
