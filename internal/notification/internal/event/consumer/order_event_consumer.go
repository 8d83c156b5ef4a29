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

package consumer

import (
	"context"
	"encoding/json"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/notification/internal/domain"
	"github.com/nayalc/beautyshop/internal/notification/internal/event"
	"github.com/nayalc/beautyshop/internal/notification/internal/service"
	"github.com/nayalc/beautyshop/internal/user"
)

type OrderEventConsumer struct {
	svc      service.Service
	userSvc  user.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewOrderEventConsumer(svc service.Service, userSvc user.Service, q mq.MQ) (*OrderEventConsumer, error) {
	groupID := "notification-order"
	consumer, err := q.Consumer(event.OrderEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderEventConsumer{
		svc:      svc,
		userSvc:  userSvc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *OrderEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *OrderEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return err
	}
	var evt event.OrderEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		return err
	}

	summary := domain.OrderSummary{
		OrderID: evt.OrderID,
		Status:  evt.Status,
		Total:   evt.Total,
		Items: slice.Map(evt.Items, func(idx int, src event.OrderItemEvent) domain.OrderItemSummary {
			return domain.OrderItemSummary{
				ProductName: src.ProductName,
				Quantity:    src.Quantity,
				Price:       src.Price,
			}
		}),
	}

	switch evt.Type {
	case event.OrderEventTypeCreated:
		u, err := c.userSvc.FindByID(ctx, evt.UserID)
		if err != nil {
			return err
		}
		if err = c.svc.NotifyOrderConfirmed(ctx, u.Email, summary); err != nil {
			c.logger.Error("发送订单确认邮件失败",
				elog.FieldErr(err),
				elog.Int64("orderID", evt.OrderID))
		}
		if err = c.svc.NotifyNewOrder(ctx, summary); err != nil {
			c.logger.Error("发送新订单提醒失败",
				elog.FieldErr(err),
				elog.Int64("orderID", evt.OrderID))
		}
	case event.OrderEventTypeStatusChanged:
		u, err := c.userSvc.FindByID(ctx, evt.UserID)
		if err != nil {
			return err
		}
		if err = c.svc.NotifyOrderStatusChanged(ctx, u.Email, summary); err != nil {
			c.logger.Error("发送订单状态更新邮件失败",
				elog.FieldErr(err),
				elog.Int64("orderID", evt.OrderID))
		}
	default:
		c.logger.Warn("未知的订单事件类型", elog.String("type", evt.Type))
	}
	return nil
}
