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

package realtime

import (
	"github.com/nayalc/beautyshop/internal/realtime/internal/hub"
	"github.com/nayalc/beautyshop/internal/realtime/internal/web"
)

// Broadcaster 暴露出去给会话模块做消息推送
type Broadcaster = hub.Broadcaster
type Hub = hub.Hub
type Handler = web.Handler

type Module struct {
	Hub *Hub
	Hdl *Handler
}
