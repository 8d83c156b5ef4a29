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

type Product struct {
	ID          int64
	Name        string
	Description string
	BrandName   string
	// 单价，单位为分, 999表示9.99元
	Price int64
	// 当前库存
	StockQuantity int64
	// 主图URL，由资产托管方（COS）返回的不透明URL字符串
	ImageURL string
	Ctime    int64
	Utime    int64
}
