package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/nayalc/beautyshop/internal/coupon/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	couponNotFoundResult = ginx.Result{
		Code: errs.CouponNotFound.Code,
		Msg:  errs.CouponNotFound.Msg,
	}
	couponUnusableResult = ginx.Result{
		Code: errs.CouponUnusable.Code,
		Msg:  errs.CouponUnusable.Msg,
	}
	couponMinPurchaseResult = ginx.Result{
		Code: errs.CouponMinPurchase.Code,
		Msg:  errs.CouponMinPurchase.Msg,
	}
	couponLimitExhaustedResult = ginx.Result{
		Code: errs.CouponLimitExhausted.Code,
		Msg:  errs.CouponLimitExhausted.Msg,
	}
	couponCodeDuplicateResult = ginx.Result{
		Code: errs.CouponCodeDuplicate.Code,
		Msg:  errs.CouponCodeDuplicate.Msg,
	}
)
