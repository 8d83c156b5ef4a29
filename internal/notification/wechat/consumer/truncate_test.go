package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		content  string
		limit    int
		expected string
	}{
		{
			name:     "纯ASCII按字节截断",
			content:  "Hello, World!",
			limit:    5,
			expected: "Hello",
		},
		{
			name:     "截断点落在中文字符中间要回退",
			content:  "新订单 #42", // "新订单"占9字节，空格1字节
			limit:    8,         // 落在"单"的第3个字节之前
			expected: "新订",
		},
		{
			name:     "截断点刚好在完整中文字符后",
			content:  "玫瑰精华液",
			limit:    9,
			expected: "玫瑰精",
		},
		{
			name:     "截断点落在Emoji中间要回退",
			content:  "发货啦🎉", // "🎉"占4字节
			limit:    11,      // 落在"🎉"的中间
			expected: "发货啦",
		},
		{
			name:     "长度小于限制原样返回",
			content:  "short",
			limit:    20,
			expected: "short",
		},
		{
			name:     "长度等于限制原样返回",
			content:  "exact length",
			limit:    12,
			expected: "exact length",
		},
		{
			name:     "限制为0返回空串",
			content:  "any string",
			limit:    0,
			expected: "",
		},
		{
			name:     "空字符串",
			content:  "",
			limit:    10,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncate(tc.content, tc.limit))
		})
	}
}

func TestTruncate_NegativeLimit(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		_ = truncate("boom", -1)
	})
}
