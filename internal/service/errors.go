package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrContentNotFound    = errors.New("内容不存在")
	ErrInvalidTransition  = errors.New("非法的状态流转")
	ErrForbidden          = errors.New("权限不足")
	ErrMissingReason      = errors.New("驳回必须填写理由")
	ErrConflict           = errors.New("内容已被他人修改，请重试")
	ErrLedgerWrite        = errors.New("审核台账写入失败")
	ErrStore              = errors.New("存储服务异常")
	ErrCategoryRequired   = errors.New("商品内容必须携带分类")
	ErrCategoryInvalid    = errors.New("非法的商品分类")
	ErrCategoryNotAllowed = errors.New("非商品内容不能携带分类")
	ErrContentTypeInvalid = errors.New("非法的内容类型")
	ErrBatchCancelled     = errors.New("批量操作已取消")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrContentNotFound:    NotFound,
	ErrInvalidTransition:  BadRequest,
	ErrForbidden:          Forbidden,
	ErrMissingReason:      BadRequest,
	ErrConflict:           Conflict,
	ErrLedgerWrite:        InternalServerError,
	ErrStore:              InternalServerError,
	ErrCategoryRequired:   BadRequest,
	ErrCategoryInvalid:    BadRequest,
	ErrCategoryNotAllowed: BadRequest,
	ErrContentTypeInvalid: BadRequest,
	ErrBatchCancelled:     BadRequest,
	UnExpectedError:       InternalServerError,
}

// KindMap 错误对应的稳定 errorKind，前端按 kind 渲染 toast，禁止字符串匹配
var KindMap = map[error]string{
	ErrParamInvalid:       "InvalidArgument",
	ErrContentNotFound:    "NotFound",
	ErrInvalidTransition:  "InvalidTransition",
	ErrForbidden:          "Forbidden",
	ErrMissingReason:      "MissingReason",
	ErrConflict:           "ConflictError",
	ErrLedgerWrite:        "LedgerWriteError",
	ErrStore:              "StoreError",
	ErrCategoryRequired:   "InvalidArgument",
	ErrCategoryInvalid:    "InvalidArgument",
	ErrCategoryNotAllowed: "InvalidArgument",
	ErrContentTypeInvalid: "InvalidArgument",
	ErrBatchCancelled:     "Cancelled",
}

// KindOf 取错误对应的 errorKind，未登记的一律视为基础设施故障
func KindOf(err error) string {
	for e, kind := range KindMap {
		if errors.Is(err, e) {
			return kind
		}
	}
	return "StoreError"
}
