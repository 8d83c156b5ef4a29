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

package event

const (
	OrderEventName = "order_events"

	OrderEventTypeCreated       = "created"
	OrderEventTypeStatusChanged = "status_changed"
)

type OrderEvent struct {
	Type    string           `json:"type"`
	OrderID int64            `json:"orderId"`
	UserID  int64            `json:"userId"`
	Status  string           `json:"status"`
	Total   int64            `json:"total"`
	Items   []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}
