package errs

var (
	SystemError          = ErrorCode{Code: 507001, Msg: "系统错误"}
	CouponNotFound       = ErrorCode{Code: 507002, Msg: "优惠券不存在"}
	CouponUnusable       = ErrorCode{Code: 507003, Msg: "优惠券不可用"}
	CouponMinPurchase    = ErrorCode{Code: 507004, Msg: "未达到优惠券最低消费金额"}
	CouponLimitExhausted = ErrorCode{Code: 507005, Msg: "优惠券使用次数已达上限"}
	CouponCodeDuplicate  = ErrorCode{Code: 507006, Msg: "券码已存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
