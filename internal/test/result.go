package test

// Result 和 ginx.Result 同构，带上类型参数方便断言 Data
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}
