// file: models/attempt.go
package models

import (
	"time"
)

type AttemptOutcome string

const (
	AttemptCorrect     AttemptOutcome = "correct"
	AttemptWrong       AttemptOutcome = "wrong"
	AttemptDuplicate   AttemptOutcome = "duplicate"
	AttemptRateLimited AttemptOutcome = "rate_limited"
)

// Attempt 对应 forge_attempt 表，只增不改：每次提交（包括被限流拒绝的）都落一行，
// 限流窗口和审计都以这张表为准。提交的明文 Flag 不入库。
type Attempt struct {
	ID            uint64         `gorm:"primarykey"`
	ParticipantID uint32         `gorm:"not null;index:idx_forge_attempt_pair,priority:1"`
	ChallengeID   uint32         `gorm:"not null;index:idx_forge_attempt_pair,priority:2"`
	Outcome       AttemptOutcome `gorm:"size:15;not null"`
	SubmittedAt   time.Time      `gorm:"not null;index:idx_forge_attempt_pair,priority:3"`
	IPAddress     string         `gorm:"size:45"`
}

func (Attempt) TableName() string {
	return "forge_attempt"
}
