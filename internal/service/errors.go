package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrNewsNotFound     = errors.New("资讯不存在")
	ErrNewsKindMismatch = errors.New("资讯类型错误")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrAlreadyLiked     = errors.New("不能重复点赞")
	ErrCommentTooLong   = errors.New("评论内容超长")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrNewsNotFound:     NotFound,
	ErrNewsKindMismatch: BadRequest,
	ErrUserNotFound:     NotFound,
	ErrAlreadyLiked:     BadRequest,
	ErrCommentTooLong:   BadRequest,
	UnExpectedError:     InternalServerError,
}
