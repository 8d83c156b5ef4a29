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

import "github.com/nayalc/beautyshop/internal/chat/internal/domain"

type Conversation struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Status        string `json:"status"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
}

type Message struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversationId"`
	SenderID       int64  `json:"senderId"`
	MessageText    string `json:"messageText"`
	SenderType     string `json:"senderType"`
	CreatedAt      int64  `json:"createdAt"`
}

type SendMessageReq struct {
	ConversationID int64  `json:"conversationId"`
	MessageText    string `json:"messageText"`
}

type ListMessagesReq struct {
	ConversationID int64 `json:"conversationId"`
	Offset         int   `json:"offset"`
	Limit          int   `json:"limit"`
}

type ListMessagesResp struct {
	Total    int64     `json:"total"`
	Messages []Message `json:"messages"`
}

type ListConversationsReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListConversationsResp struct {
	Total         int64          `json:"total"`
	Conversations []Conversation `json:"conversations"`
}

type ListByUserReq struct {
	UserID int64 `json:"userId"`
}

type SetStatusReq struct {
	ConversationID int64  `json:"conversationId"`
	Status         string `json:"status"`
}

type ConversationIDReq struct {
	ConversationID int64 `json:"conversationId"`
}

type UnreadCountResp struct {
	Count int64 `json:"count"`
}

func toConversationVO(c domain.Conversation) Conversation {
	return Conversation{
		ID:            c.ID,
		UserID:        c.Uid,
		Status:        string(c.Status),
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CreatedAt:     c.Ctime,
		UpdatedAt:     c.Utime,
	}
}

func toMessageVO(m domain.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		MessageText:    m.Content,
		SenderType:     string(m.SenderType),
		CreatedAt:      m.Ctime,
	}
}
