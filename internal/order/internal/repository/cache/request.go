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

package cache

import (
	"context"
	"time"

	"github.com/ecodeclub/ecache"
)

// RequestCache 挡重复提交的下单请求
type RequestCache interface {
	// SetNXRequestKey 首次见到该requestID返回true
	SetNXRequestKey(ctx context.Context, requestID string) (bool, error)
}

type requestECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewRequestECache(ec ecache.Cache) RequestCache {
	return &requestECache{
		ec: &ecache.NamespaceCache{
			Namespace: "order:request:",
			C:         ec,
		},
		expiration: 24 * time.Hour,
	}
}

func (q *requestECache) SetNXRequestKey(ctx context.Context, requestID string) (bool, error) {
	return q.ec.SetNX(ctx, requestID, 1, q.expiration)
}
