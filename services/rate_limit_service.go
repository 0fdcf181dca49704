// file: services/rate_limit_service.go
package services

import (
	"time"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
)

// 限流策略：每个 (participant, challenge) 在窗口内最多 RateLimitMaxWrong 次错误提交。
// 导出为变量，部署和测试都可以调整。
var (
	RateLimitMaxWrong int64 = 10
	RateLimitWindow         = 60 * time.Second
)

// Admit 判定一次提交是否放行。计数完全来自提交流水表，不另设会漂移的计数器。
// 已解出的组合永久豁免：题都解完了，没有继续限流的理由。
func Admit(participantID, challengeID uint32) (retryAfter time.Duration, allowed bool, err error) {
	if participantID == 0 || challengeID == 0 {
		return 0, false, ErrInvalidArgument
	}

	var solved int64
	if err := database.DB.Model(&models.Solve{}).
		Where("participant_id = ? AND challenge_id = ?", participantID, challengeID).
		Count(&solved).Error; err != nil {
		return 0, false, ErrUnavailable
	}
	if solved > 0 {
		return 0, true, nil
	}

	count, err := CountRecentWrongAttempts(participantID, challengeID, RateLimitWindow)
	if err != nil {
		return 0, false, err
	}
	if count < RateLimitMaxWrong {
		return 0, true, nil
	}

	// 已满：等最早的一次错误提交滑出窗口
	oldest, err := OldestWrongAttemptInWindow(participantID, challengeID, RateLimitWindow)
	if err != nil {
		return 0, false, err
	}
	retryAfter = time.Until(oldest.Add(RateLimitWindow))
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return retryAfter, false, nil
}
