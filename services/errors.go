// file: services/errors.go
package services

import (
	"errors"
)

// 统一错误分类：控制器按这里的哨兵值映射响应码。
// 限流拒绝不是错误而是一种提交结果（带建议等待时间），见 SubmissionResult。
// ErrUnavailable 代表存储层瞬时故障，调用方可整体重试：提交流程幂等，
// 重试一次已记分的提交只会得到 already_solved，不会重复记分。
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrUnavailable       = errors.New("storage unavailable")
)
