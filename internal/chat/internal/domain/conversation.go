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

type ConversationStatus string

const (
	ConversationStatusOpen ConversationStatus = "open"
	// ConversationStatusPendingAdmin 客户发了新消息，等待客服回复
	ConversationStatusPendingAdmin ConversationStatus = "pending_admin_response"
	ConversationStatusClosed       ConversationStatus = "closed"
)

func (s ConversationStatus) Valid() bool {
	switch s {
	case ConversationStatusOpen, ConversationStatusPendingAdmin, ConversationStatusClosed:
		return true
	default:
		return false
	}
}

type SenderType string

const (
	SenderTypeCustomer SenderType = "customer"
	SenderTypeAdmin    SenderType = "admin"
)

type Conversation struct {
	ID     int64
	Uid    int64
	Status ConversationStatus
	// CustomerName CustomerEmail 从用户模块取来的展示字段，仅后台列表用
	CustomerName  string
	CustomerEmail string
	Ctime         int64
	Utime         int64
}

// Message 只增不改，唯一的删除路径是会话关闭清理与整会话删除
type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	SenderType     SenderType
	Content        string
	Ctime          int64
}
