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

type ListProductsReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListProductsResp struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}

type DetailReq struct {
	ID int64 `json:"id"`
}

type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	BrandName     string `json:"brandName"`
	Price         int64  `json:"price"`
	StockQuantity int64  `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
}

type SaveProductReq struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BrandName   string `json:"brandName"`
	Price       int64  `json:"price"`
	// 库存数量，下单事务只做扣减，补货走这里
	StockQuantity int64  `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
}

type SaveProductResp struct {
	ID int64 `json:"id"`
}
