// file: services/submission_service.go
package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionStatus string

const (
	StatusSolved        SubmissionStatus = "solved"
	StatusIncorrect     SubmissionStatus = "incorrect"
	StatusAlreadySolved SubmissionStatus = "already_solved"
	StatusRateLimited   SubmissionStatus = "rate_limited"
)

type SubmissionResult struct {
	Status     SubmissionStatus
	Points     uint
	RetryAfter time.Duration
}

// 每个 (participant, challenge) 一把锁，不同组合互不阻塞。
// 锁表只增不减，上限是参与者数×题目数，量级可控。
var pairLocks = struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}{locks: make(map[uint64]*sync.Mutex)}

func lockForPair(participantID, challengeID uint32) *sync.Mutex {
	key := uint64(participantID)<<32 | uint64(challengeID)
	pairLocks.mu.Lock()
	defer pairLocks.mu.Unlock()
	l, ok := pairLocks.locks[key]
	if !ok {
		l = &sync.Mutex{}
		pairLocks.locks[key] = l
	}
	return l
}

// Submit 处理一次 Flag 提交：限流 → 已解出判重 → 校验 → 记流水 → 记分。
// 记分是唯一需要跨请求互斥的点：同一组合并发提交 N 次正确答案，
// 唯一索引上的条件插入保证只有一个调用者拿到 solved，其余都是 already_solved。
func Submit(participantID, challengeID uint32, flag, ip string) (SubmissionResult, error) {
	if participantID == 0 || challengeID == 0 || strings.TrimSpace(flag) == "" {
		return SubmissionResult{}, ErrInvalidArgument
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmissionResult{}, ErrChallengeNotFound
		}
		return SubmissionResult{}, ErrUnavailable
	}
	if challenge.State != models.ChallengeStateVisible {
		return SubmissionResult{}, ErrChallengeNotFound
	}

	mu := lockForPair(participantID, challengeID)
	mu.Lock()
	defer mu.Unlock()

	// 1. 限流判定；被拒绝的提交不进入校验，但照样落流水
	retryAfter, allowed, err := Admit(participantID, challengeID)
	if err != nil {
		return SubmissionResult{}, err
	}
	if !allowed {
		if _, err := RecordAttempt(participantID, challengeID, models.AttemptRateLimited, ip); err != nil {
			return SubmissionResult{}, err
		}
		return SubmissionResult{Status: StatusRateLimited, RetryAfter: retryAfter}, nil
	}

	// 2. 已解出则幂等返回，不再碰校验路径；流水仍然要记一笔 duplicate，
	//    保证"每次提交恰好一行流水"对审计成立
	var solved int64
	if err := database.DB.Model(&models.Solve{}).
		Where("participant_id = ? AND challenge_id = ?", participantID, challengeID).
		Count(&solved).Error; err != nil {
		return SubmissionResult{}, ErrUnavailable
	}
	if solved > 0 {
		if _, err := RecordAttempt(participantID, challengeID, models.AttemptDuplicate, ip); err != nil {
			return SubmissionResult{}, err
		}
		return SubmissionResult{Status: StatusAlreadySolved}, nil
	}

	// 3. 校验 Flag，无论对错都追加流水
	correct := VerifyFlag(challengeID, flag)
	outcome := models.AttemptWrong
	if correct {
		outcome = models.AttemptCorrect
	}
	if _, err := RecordAttempt(participantID, challengeID, outcome, ip); err != nil {
		return SubmissionResult{}, err
	}
	if !correct {
		return SubmissionResult{Status: StatusIncorrect}, nil
	}

	// 4. 条件插入记分：唯一索引冲突时 DoNothing，RowsAffected 判定谁是唯一赢家。
	//    分值取记分瞬间的题目分值，之后改题不回溯。
	solve := models.Solve{
		ParticipantID: participantID,
		ChallengeID:   challengeID,
		Points:        challenge.Points,
		CreditedAt:    time.Now(),
	}
	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}, {Name: "challenge_id"}},
		DoNothing: true,
	}).Create(&solve)
	if res.Error != nil {
		return SubmissionResult{}, ErrUnavailable
	}
	if res.RowsAffected == 0 {
		return SubmissionResult{Status: StatusAlreadySolved}, nil
	}

	InvalidateScoreboardCache()
	return SubmissionResult{Status: StatusSolved, Points: challenge.Points}, nil
}
