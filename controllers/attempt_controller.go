// file: controllers/attempt_controller.go
package controllers

import (
	"time"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/utils"
	"github.com/gin-gonic/gin"
)

// GetAttemptLogs 管理员查询提交流水（审计用）。流水只记结果不记明文，
// 这里也就无泄漏 Flag 的可能
func GetAttemptLogs(c *gin.Context) {
	type LogDetail struct {
		ID            uint64    `json:"id"`
		ChallengeID   uint32    `json:"challenge_id"`
		Title         string    `json:"title"`
		ParticipantID uint32    `json:"participant_id"`
		Username      string    `json:"username"`
		Outcome       string    `json:"outcome"`
		SubmittedAt   time.Time `json:"submitted_at"`
		IPAddress     string    `json:"ip_address"`
	}

	db := database.DB.Table("forge_attempt a").
		Select("a.id, a.challenge_id, c.title, a.participant_id, p.username, a.outcome, a.submitted_at, a.ip_address").
		Joins("LEFT JOIN forge_challenge c ON a.challenge_id = c.id").
		Joins("LEFT JOIN forge_participant p ON a.participant_id = p.id")

	if participantID := c.Query("participant_id"); participantID != "" {
		db = db.Where("a.participant_id = ?", participantID)
	}
	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("a.challenge_id = ?", challengeID)
	}
	if outcome := c.Query("outcome"); outcome != "" {
		db = db.Where("a.outcome = ?", outcome)
	}

	var results []LogDetail
	db.Order("a.submitted_at desc").Find(&results)

	utils.Success(c, "success", results)
}
