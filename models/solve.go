// file: models/solve.go
package models

import (
	"time"
)

// Solve 对应 forge_solve 表：每个 (participant, challenge) 至多一行，
// 由唯一索引保证。自增主键同时充当单调的记分先后序号，
// 排行榜同分时按它判定先达成者，不依赖墙钟的亚秒精度。
type Solve struct {
	ID            uint64 `gorm:"primarykey"`
	ParticipantID uint32 `gorm:"not null;uniqueIndex:uniq_forge_solve_pair,priority:1"`
	ChallengeID   uint32 `gorm:"not null;uniqueIndex:uniq_forge_solve_pair,priority:2"`
	Points        uint   `gorm:"not null"`
	CreditedAt    time.Time
}

func (Solve) TableName() string {
	return "forge_solve"
}
