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

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/notification/internal/event"
	"github.com/nayalc/beautyshop/internal/notification/internal/service"
)

type ChatEventConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewChatEventConsumer(svc service.Service, q mq.MQ) (*ChatEventConsumer, error) {
	groupID := "notification-chat"
	consumer, err := q.Consumer(event.ChatMessageEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &ChatEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *ChatEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费客户留言事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *ChatEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return err
	}
	var evt event.ChatMessageEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		return err
	}
	if err = c.svc.NotifyNewChatMessage(ctx,
		evt.SenderName, evt.SenderEmail,
		evt.ConversationID, evt.Content); err != nil {
		c.logger.Error("发送客户留言提醒失败",
			elog.FieldErr(err),
			elog.Int64("conversationID", evt.ConversationID))
	}
	return nil
}
