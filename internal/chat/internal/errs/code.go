package errs

var (
	SystemError          = ErrorCode{Code: 506001, Msg: "系统错误"}
	ConversationNotFound = ErrorCode{Code: 506002, Msg: "会话不存在"}
	SenderMismatch       = ErrorCode{Code: 506003, Msg: "无权在该会话中发言"}
	InvalidStatus        = ErrorCode{Code: 506004, Msg: "非法的会话状态"}
	MissingUserID        = ErrorCode{Code: 506005, Msg: "缺少用户ID"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
