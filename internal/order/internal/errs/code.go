package errs

var (
	SystemError         = ErrorCode{Code: 505001, Msg: "系统错误"}
	OrderNotFound       = ErrorCode{Code: 505002, Msg: "订单不存在"}
	ProductNotFound     = ErrorCode{Code: 505003, Msg: "商品不存在"}
	InsufficientStock   = ErrorCode{Code: 505004, Msg: "商品库存不足"}
	InvalidStatus       = ErrorCode{Code: 505005, Msg: "非法的订单状态"}
	MissingTrackingInfo = ErrorCode{Code: 505006, Msg: "缺少物流跟踪信息"}
	DuplicateRequest    = ErrorCode{Code: 505007, Msg: "请勿重复提交订单"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
