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

const ChatMessageEventName = "chat_message_events"

// ChatMessageEvent 客户发消息后通知客服用
type ChatMessageEvent struct {
	ConversationID int64  `json:"conversationId"`
	SenderID       int64  `json:"senderId"`
	SenderName     string `json:"senderName"`
	SenderEmail    string `json:"senderEmail"`
	Content        string `json:"content"`
}
