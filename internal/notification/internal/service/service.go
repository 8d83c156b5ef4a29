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
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/nayalc/beautyshop/internal/email"
	"github.com/nayalc/beautyshop/internal/notification/internal/domain"
)

// Config 发信方与客服收件地址
type Config struct {
	FromEmail  string `yaml:"fromEmail"`
	AdminEmail string `yaml:"adminEmail"`
}

//go:generate mockgen -source=./service.go -destination=../../mocks/notification.mock.go -package=notificationmocks -typed=true Service
type Service interface {
	NotifyOrderConfirmed(ctx context.Context, to string, o domain.OrderSummary) error
	NotifyNewOrder(ctx context.Context, o domain.OrderSummary) error
	NotifyOrderStatusChanged(ctx context.Context, to string, o domain.OrderSummary) error
	NotifyNewChatMessage(ctx context.Context, customerName, customerEmail string,
		conversationID int64, body string) error
}

type service struct {
	emailSvc email.Service
	cfg      Config
}

func NewService(emailSvc email.Service, cfg Config) Service {
	return &service{
		emailSvc: emailSvc,
		cfg:      cfg,
	}
}

func (s *service) NotifyOrderConfirmed(ctx context.Context, to string, o domain.OrderSummary) error {
	return s.send(ctx, to, fmt.Sprintf("订单确认 #%d", o.OrderID), orderConfirmedTmpl, o)
}

func (s *service) NotifyNewOrder(ctx context.Context, o domain.OrderSummary) error {
	return s.send(ctx, s.cfg.AdminEmail, fmt.Sprintf("新订单 #%d", o.OrderID), newOrderAdminTmpl, o)
}

func (s *service) NotifyOrderStatusChanged(ctx context.Context, to string, o domain.OrderSummary) error {
	return s.send(ctx, to, fmt.Sprintf("订单 #%d 状态更新：%s", o.OrderID, o.Status), statusChangedTmpl, o)
}

func (s *service) NotifyNewChatMessage(ctx context.Context, customerName, customerEmail string,
	conversationID int64, body string) error {
	return s.send(ctx, s.cfg.AdminEmail, "新的客户留言", newChatMessageTmpl, map[string]any{
		"CustomerName":   customerName,
		"CustomerEmail":  customerEmail,
		"ConversationID": conversationID,
		"Body":           body,
	})
}

func (s *service) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return s.emailSvc.SendMail(ctx, email.Mail{
		From:    s.cfg.FromEmail,
		To:      to,
		Subject: subject,
		Body:    buf.Bytes(),
	})
}
