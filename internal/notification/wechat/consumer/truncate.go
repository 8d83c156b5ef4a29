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

import "unicode/utf8"

// truncate 按字节数截断，截在多字节字符中间时回退到完整字符边界。
// limit 为负数直接panic，调用方传错就该尽早炸出来
func truncate(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	res := content[:limit]
	for len(res) > 0 && !utf8.ValidString(res) {
		res = res[:len(res)-1]
	}
	return res
}
