// file: controllers/participant_controller.go
package controllers

import (
	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/Mmo23/fifty-flag-forge/utils"
	"github.com/gin-gonic/gin"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var existing models.Participant
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		utils.Error(c, 2001, "用户名或邮箱已被注册")
		return
	}

	participant := models.Participant{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "Participant registered successfully", gin.H{
		"id":       participant.ID,
		"username": participant.Username,
		"role":     participant.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var participant models.Participant
	if err := database.DB.Where("email = ?", req.Email).First(&participant).Error; err != nil {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}
	if !participant.CheckPassword(req.Password) {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}
	if participant.Status == models.StatusBanned {
		utils.Error(c, 2005, "用户已被封禁")
		return
	}

	token, err := utils.GenerateToken(participant)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"participant": gin.H{
			"id":       participant.ID,
			"username": participant.Username,
			"role":     participant.Role,
		},
	})
}

// GetMySolves 查询当前用户的解题记录（个人主页用）
func GetMySolves(c *gin.Context) {
	participantIDAny, exists := c.Get("participant_id")
	if !exists {
		utils.Error(c, 4001, "未登录")
		return
	}
	participantID := participantIDAny.(uint32)

	var solves []models.Solve
	database.DB.Where("participant_id = ?", participantID).Order("id asc").Find(&solves)

	type SolveInfo struct {
		ChallengeID uint32 `json:"challenge_id"`
		Title       string `json:"title"`
		Points      uint   `json:"points"`
		CreditedAt  string `json:"credited_at"`
	}
	result := make([]SolveInfo, 0, len(solves))
	for _, solve := range solves {
		var chal models.Challenge
		database.DB.Select("title").First(&chal, solve.ChallengeID)
		result = append(result, SolveInfo{
			ChallengeID: solve.ChallengeID,
			Title:       chal.Title,
			Points:      solve.Points,
			CreditedAt:  solve.CreditedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}
