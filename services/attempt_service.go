// file: services/attempt_service.go
package services

import (
	"errors"
	"time"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"gorm.io/gorm"
)

// RecordAttempt 向提交流水追加一条记录。纯追加，除了非法 ID 之外不拒绝；
// 流水写入后不再修改或删除。
func RecordAttempt(participantID, challengeID uint32, outcome models.AttemptOutcome, ip string) (models.Attempt, error) {
	if participantID == 0 || challengeID == 0 {
		return models.Attempt{}, ErrInvalidArgument
	}

	attempt := models.Attempt{
		ParticipantID: participantID,
		ChallengeID:   challengeID,
		Outcome:       outcome,
		SubmittedAt:   time.Now(),
		IPAddress:     ip,
	}
	if err := database.DB.Create(&attempt).Error; err != nil {
		return models.Attempt{}, ErrUnavailable
	}
	return attempt, nil
}

// CountRecentWrongAttempts 统计滑动窗口内的错误提交数，供限流使用。
// 只数 wrong：被限流拒绝的记录不计入，否则窗口永远无法排空。
func CountRecentWrongAttempts(participantID, challengeID uint32, window time.Duration) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Attempt{}).
		Where("participant_id = ? AND challenge_id = ? AND outcome = ? AND submitted_at > ?",
			participantID, challengeID, models.AttemptWrong, time.Now().Add(-window)).
		Count(&count).Error
	if err != nil {
		return 0, ErrUnavailable
	}
	return count, nil
}

// OldestWrongAttemptInWindow 返回窗口内最早一次错误提交的时间，用于计算 retry_after
func OldestWrongAttemptInWindow(participantID, challengeID uint32, window time.Duration) (time.Time, error) {
	var attempt models.Attempt
	err := database.DB.
		Where("participant_id = ? AND challenge_id = ? AND outcome = ? AND submitted_at > ?",
			participantID, challengeID, models.AttemptWrong, time.Now().Add(-window)).
		Order("submitted_at asc").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, ErrUnavailable
	}
	return attempt.SubmittedAt, nil
}

// ChallengeStats 汇总某题的提交数与解出数（均从流水和解题表实时推导，不落冗余计数）
func ChallengeStats(challengeID uint32) (attemptCount, solveCount int64, err error) {
	var challenge models.Challenge
	if err = database.DB.Select("id").First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrChallengeNotFound
		}
		return 0, 0, ErrUnavailable
	}

	if err = database.DB.Model(&models.Attempt{}).
		Where("challenge_id = ?", challengeID).
		Count(&attemptCount).Error; err != nil {
		return 0, 0, ErrUnavailable
	}
	if err = database.DB.Model(&models.Solve{}).
		Where("challenge_id = ?", challengeID).
		Count(&solveCount).Error; err != nil {
		return 0, 0, ErrUnavailable
	}
	return attemptCount, solveCount, nil
}
