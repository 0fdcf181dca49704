// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/dto"
	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/Mmo23/fifty-flag-forge/services"
	"github.com/Mmo23/fifty-flag-forge/utils"
	"github.com/gin-gonic/gin"
)

// CreateChallenge —— 管理员创建题目，Flag 在响应返回前即被哈希入库，明文不落库
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.Category == "" || req.Description == "" || req.Points == 0 {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	if req.Level != "easy" && req.Level != "medium" && req.Level != "hard" {
		utils.Error(c, 1001, "level 取值无效（easy/medium/hard）")
		return
	}

	// 未提供 Flag 时由服务端生成，明文仅在本次响应中回显一次
	flag := strings.TrimSpace(req.Flag)
	generated := false
	if flag == "" {
		flag = utils.GenerateFlag()
		generated = true
	}

	chal := models.Challenge{
		Title:       req.Title,
		Category:    req.Category,
		Author:      req.Author,
		Description: req.Description,
		Level:       models.ChallengeLevel(req.Level),
		Points:      req.Points,
		FlagDigest:  "pending",
		FlagSalt:    "pending",
	}
	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Error(c, 5000, "创建题目失败: "+err.Error())
		return
	}
	if err := services.SetChallengeFlag(chal.ID, flag); err != nil {
		// 摘要写入失败的半成品不可保留，回收后报错
		database.DB.Delete(&models.Challenge{}, chal.ID)
		utils.Error(c, 5000, "Flag 写入失败")
		return
	}

	data := gin.H{"id": chal.ID}
	if generated {
		data["flag"] = flag
	}
	utils.Success(c, "Challenge created successfully", data)
}

// ListChallenges —— 用户可见的题目列表，支持分类/难度/关键字筛选
func ListChallenges(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	level := strings.TrimSpace(c.Query("level"))
	kw := strings.TrimSpace(c.Query("keyword"))

	db := database.DB.Model(&models.Challenge{}).
		Where("state = ?", models.ChallengeStateVisible)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if level != "" {
		db = db.Where("level = ?", models.ChallengeLevel(level))
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var challenges []models.Challenge
	if err := db.Order("created_at desc").Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	attemptCounts, solveCounts := challengeCounters()

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, dto.ChallengeItemResp{
			ID:           ch.ID,
			Title:        ch.Title,
			Category:     ch.Category,
			Level:        string(ch.Level),
			Points:       ch.Points,
			AttemptCount: attemptCounts[ch.ID],
			SolveCount:   solveCounts[ch.ID],
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// challengeCounters 一次聚合出各题的提交数与解出数，避免逐题查询
func challengeCounters() (attempts, solves map[uint32]int64) {
	type counter struct {
		ChallengeID uint32
		Cnt         int64
	}
	attempts = make(map[uint32]int64)
	solves = make(map[uint32]int64)

	var rows []counter
	database.DB.Model(&models.Attempt{}).
		Select("challenge_id, COUNT(*) as cnt").
		Group("challenge_id").Scan(&rows)
	for _, r := range rows {
		attempts[r.ChallengeID] = r.Cnt
	}

	rows = nil
	database.DB.Model(&models.Solve{}).
		Select("challenge_id, COUNT(*) as cnt").
		Group("challenge_id").Scan(&rows)
	for _, r := range rows {
		solves[r.ChallengeID] = r.Cnt
	}
	return attempts, solves
}

// GetChallengeDetail —— 用户可见的题目详情，摘要与盐不出现在任何响应里
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	if challenge.State != models.ChallengeStateVisible {
		utils.Error(c, 4003, "题目不可见")
		return
	}

	attemptCount, solveCount, err := services.ChallengeStats(challenge.ID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	resp := dto.ChallengeDetailResp{
		ID:           challenge.ID,
		Title:        challenge.Title,
		Category:     challenge.Category,
		Author:       challenge.Author,
		Description:  challenge.Description,
		Level:        string(challenge.Level),
		Points:       challenge.Points,
		AttemptCount: attemptCount,
		SolveCount:   solveCount,
		CreatedAt:    challenge.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	utils.Success(c, "success", resp)
}

// UpdateChallengeState —— 管理员上架/下架/退役题目
func UpdateChallengeState(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateChallengeStateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	state := models.ChallengeState(strings.ToLower(strings.TrimSpace(req.State)))
	if state != models.ChallengeStateVisible && state != models.ChallengeStateHidden && state != models.ChallengeStateRetired {
		utils.Error(c, 1001, "state 取值无效（visible/hidden/retired）")
		return
	}

	result := database.DB.Model(&models.Challenge{}).Where("id = ?", id).Update("state", state)
	if result.Error != nil {
		utils.Error(c, 5000, "更新失败")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	utils.Success(c, "Challenge state updated", gin.H{"id": id, "state": state})
}

// RotateChallengeFlag —— 管理员换 Flag（重新加盐哈希）
func RotateChallengeFlag(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.RotateFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	err := services.SetChallengeFlag(uint32(id), req.Flag)
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		utils.Error(c, 1001, "Flag 不能为空")
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(c, 4004, "题目不存在")
	case err != nil:
		utils.Error(c, 5000, "Flag 写入失败")
	default:
		utils.Success(c, "Flag rotated", gin.H{"id": id})
	}
}

// GetChallengeStats —— 某题的提交/解出统计
func GetChallengeStats(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	attemptCount, solveCount, err := services.ChallengeStats(uint32(id))
	if errors.Is(err, services.ErrChallengeNotFound) {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	if err != nil {
		utils.Error(c, 5030, "查询失败，请稍后重试")
		return
	}

	utils.Success(c, "success", dto.ChallengeStatsResp{
		AttemptCount: attemptCount,
		SolveCount:   solveCount,
	})
}
