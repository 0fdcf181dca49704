// file: controllers/scoreboard_controller.go
package controllers

import (
	"strconv"
	"strings"

	"github.com/Mmo23/fifty-flag-forge/services"
	"github.com/Mmo23/fifty-flag-forge/utils"
	"github.com/gin-gonic/gin"
)

// GetScoreboard 查询排行榜。limit=0 返回全部；search 按用户名模糊过滤，
// 过滤不改变名次（名次总是相对全量排行计算）
func GetScoreboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		utils.Error(c, 1001, "limit 参数无效")
		return
	}
	search := strings.TrimSpace(c.Query("search"))

	entries, err := services.Leaderboard(limit, search)
	if err != nil {
		utils.Error(c, 5030, "查询失败，请稍后重试")
		return
	}

	utils.Success(c, "success", gin.H{
		"total":   len(entries),
		"entries": entries,
	})
}
