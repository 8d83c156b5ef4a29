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

package service

import (
	"fmt"
	"html/template"
)

var funcs = template.FuncMap{
	// yuan 分转元展示
	"yuan": func(cents int64) string {
		return fmt.Sprintf("%.2f", float64(cents)/100)
	},
}

var orderConfirmedTmpl = template.Must(template.New("orderConfirmed").Funcs(funcs).Parse(`
<h2>感谢您的订单</h2>
<p>订单号：{{.OrderID}}</p>
<table>
{{range .Items}}
  <tr><td>{{.ProductName}}</td><td>x{{.Quantity}}</td><td>¥{{yuan .Price}}</td></tr>
{{end}}
</table>
<p>合计：¥{{yuan .Total}}</p>
<p>我们会在发货后第一时间通知您。</p>
`))

var newOrderAdminTmpl = template.Must(template.New("newOrderAdmin").Funcs(funcs).Parse(`
<h2>新订单提醒</h2>
<p>订单号：{{.OrderID}}，金额：¥{{yuan .Total}}</p>
<table>
{{range .Items}}
  <tr><td>{{.ProductName}}</td><td>x{{.Quantity}}</td></tr>
{{end}}
</table>
`))

var statusChangedTmpl = template.Must(template.New("statusChanged").Funcs(funcs).Parse(`
<h2>订单状态更新</h2>
<p>您的订单 {{.OrderID}} 当前状态：{{.Status}}</p>
`))

var newChatMessageTmpl = template.Must(template.New("newChatMessage").Parse(`
<h2>新的客户留言</h2>
<p>来自：{{.CustomerName}} ({{.CustomerEmail}})</p>
<p>会话：{{.ConversationID}}</p>
<blockquote>{{.Body}}</blockquote>
`))
