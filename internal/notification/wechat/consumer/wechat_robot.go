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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/nayalc/beautyshop/internal/notification/internal/event"
)

// 企业微信机器人text消息的内容上限
const maxContentBytes = 2048

type Text struct {
	Content string `json:"content"`
}

type WechatRobotMessage struct {
	MsgType string `json:"msgtype"`
	Text    Text   `json:"text"`
}

type WechatRobotConfig struct {
	// ChatRobots 机器人名字到webhook地址的映射，新订单播报用 orders
	ChatRobots map[string]string `yaml:"chatRobots"`
}

// WechatRobotEventConsumer 把新订单播报进运营群，和邮件通知互不影响
type WechatRobotEventConsumer struct {
	consumer mq.Consumer
	config   *WechatRobotConfig
	logger   *elog.Component
}

func NewWechatRobotEventConsumer(q mq.MQ, config *WechatRobotConfig) (*WechatRobotEventConsumer, error) {
	groupID := "notification-wechat"
	consumer, err := q.Consumer(event.OrderEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &WechatRobotEventConsumer{
		consumer: consumer,
		config:   config,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("notification.wechat.consumer")),
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *WechatRobotEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单播报事件失败", elog.FieldErr(err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *WechatRobotEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt event.OrderEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	// 只播报新订单，状态流转不进群刷屏
	if evt.Type != event.OrderEventTypeCreated {
		return nil
	}
	webhookURL, ok := c.config.ChatRobots["orders"]
	if !ok {
		c.logger.Error("未配置订单播报机器人", elog.Any("event", evt))
		return errors.New("未配置订单播报机器人")
	}
	content := truncate(c.render(evt), maxContentBytes)
	data, err := json.Marshal(&WechatRobotMessage{MsgType: "text", Text: Text{Content: content}})
	if err != nil {
		return fmt.Errorf("序列化微信Robot消息失败: %w", err)
	}
	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("向微信发送请求失败: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("微信处理请求失败: %s", http.StatusText(resp.StatusCode))
	}
	return nil
}

func (c *WechatRobotEventConsumer) render(evt event.OrderEvent) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "新订单 #%d，实付 ¥%.2f\n", evt.OrderID, float64(evt.Total)/100)
	for _, item := range evt.Items {
		fmt.Fprintf(&buf, "- %s x%d\n", item.ProductName, item.Quantity)
	}
	return buf.String()
}
