package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/nayalc/beautyshop/internal/chat/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	conversationNotFoundResult = ginx.Result{
		Code: errs.ConversationNotFound.Code,
		Msg:  errs.ConversationNotFound.Msg,
	}
	senderMismatchResult = ginx.Result{
		Code: errs.SenderMismatch.Code,
		Msg:  errs.SenderMismatch.Msg,
	}
	invalidStatusResult = ginx.Result{
		Code: errs.InvalidStatus.Code,
		Msg:  errs.InvalidStatus.Msg,
	}
	missingUserIDResult = ginx.Result{
		Code: errs.MissingUserID.Code,
		Msg:  errs.MissingUserID.Msg,
	}
)
