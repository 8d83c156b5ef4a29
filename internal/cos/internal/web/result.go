package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/nayalc/beautyshop/internal/cos/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)
