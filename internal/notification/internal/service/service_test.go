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
	"context"
	"testing"

	"github.com/nayalc/beautyshop/internal/email"
	emailmocks "github.com/nayalc/beautyshop/internal/email/mocks"
	"github.com/nayalc/beautyshop/internal/notification/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (Service, *emailmocks.MockService) {
	ctrl := gomock.NewController(t)
	mockEmail := emailmocks.NewMockService(ctrl)
	svc := NewService(mockEmail, Config{
		FromEmail:  "noreply@nayalc.com",
		AdminEmail: "support@nayalc.com",
	})
	return svc, mockEmail
}

func TestService_NotifyOrderConfirmed(t *testing.T) {
	t.Parallel()
	svc, mockEmail := newTestService(t)
	var sent email.Mail
	mockEmail.EXPECT().SendMail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, mail email.Mail) error {
			sent = mail
			return nil
		})

	err := svc.NotifyOrderConfirmed(context.Background(), "mei@example.com", domain.OrderSummary{
		OrderID: 42,
		Status:  "Pending",
		Total:   12900,
		Items: []domain.OrderItemSummary{
			{ProductName: "玫瑰精华液", Quantity: 2, Price: 4950},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@nayalc.com", sent.From)
	assert.Equal(t, "mei@example.com", sent.To)
	assert.Equal(t, "订单确认 #42", sent.Subject)
	body := string(sent.Body)
	assert.Contains(t, body, "玫瑰精华液")
	assert.Contains(t, body, "x2")
	assert.Contains(t, body, "129.00")
}

func TestService_NotifyNewOrder_GoesToAdmin(t *testing.T) {
	t.Parallel()
	svc, mockEmail := newTestService(t)
	var sent email.Mail
	mockEmail.EXPECT().SendMail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, mail email.Mail) error {
			sent = mail
			return nil
		})

	err := svc.NotifyNewOrder(context.Background(), domain.OrderSummary{OrderID: 42, Total: 12900})
	require.NoError(t, err)
	assert.Equal(t, "support@nayalc.com", sent.To)
}

func TestService_NotifyNewChatMessage(t *testing.T) {
	t.Parallel()
	svc, mockEmail := newTestService(t)
	var sent email.Mail
	mockEmail.EXPECT().SendMail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, mail email.Mail) error {
			sent = mail
			return nil
		})

	err := svc.NotifyNewChatMessage(context.Background(),
		"梅 林", "mei@example.com", 7, "这个精华液有现货吗")
	require.NoError(t, err)
	assert.Equal(t, "support@nayalc.com", sent.To)
	body := string(sent.Body)
	assert.Contains(t, body, "梅 林")
	assert.Contains(t, body, "mei@example.com")
	assert.Contains(t, body, "这个精华液有现货吗")
}

func TestService_NotifyOrderStatusChanged(t *testing.T) {
	t.Parallel()
	svc, mockEmail := newTestService(t)
	var sent email.Mail
	mockEmail.EXPECT().SendMail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, mail email.Mail) error {
			sent = mail
			return nil
		})

	err := svc.NotifyOrderStatusChanged(context.Background(), "mei@example.com", domain.OrderSummary{
		OrderID: 42,
		Status:  "Shipped",
	})
	require.NoError(t, err)
	assert.Contains(t, string(sent.Body), "Shipped")
	assert.Contains(t, sent.Subject, "Shipped")
}
