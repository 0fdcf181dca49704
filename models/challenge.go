// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string
type ChallengeLevel string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"
	ChallengeStateRetired ChallengeState = "retired"

	ChallengeLevelEasy   ChallengeLevel = "easy"
	ChallengeLevelMedium ChallengeLevel = "medium"
	ChallengeLevelHard   ChallengeLevel = "hard"
)

type Challenge struct {
	ID          uint32         `gorm:"primarykey"`
	Title       string         `gorm:"size:100;unique;not null"`
	Category    string         `gorm:"size:50;not null"`
	Author      string         `gorm:"size:50"`
	Description string         `gorm:"type:text;not null"`
	Level       ChallengeLevel `gorm:"size:10;default:'medium'"`
	State       ChallengeState `gorm:"size:10;default:'hidden'"`
	Points      uint           `gorm:"not null"`
	// Flag 只保存加盐摘要，明文在入库前即被丢弃，任何读接口都不返回这两列
	FlagDigest string `gorm:"size:64;not null"`
	FlagSalt   string `gorm:"size:32;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Challenge) TableName() string {
	return "forge_challenge"
}
