// file: controllers/submission_controller.go
package controllers

import (
	"errors"
	"math"
	"strconv"

	"github.com/Mmo23/fifty-flag-forge/dto"
	"github.com/Mmo23/fifty-flag-forge/services"
	"github.com/Mmo23/fifty-flag-forge/utils"
	"github.com/gin-gonic/gin"
)

// SubmitFlag —— 提交 Flag。四种业务结果（solved/incorrect/already_solved/rate_limited）
// 都走成功信封，只有参数错误、题目不存在、存储故障才走错误码
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	participantIDAny, exists := c.Get("participant_id")
	if !exists {
		utils.Error(c, 4001, "未登录")
		return
	}
	participantID := participantIDAny.(uint32)

	result, err := services.Submit(participantID, uint32(challengeID), req.Flag, c.ClientIP())
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		utils.Error(c, 1001, "参数无效")
		return
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(c, 4004, "题目不存在")
		return
	case errors.Is(err, services.ErrUnavailable):
		utils.Error(c, 5030, "服务暂不可用，请稍后重试")
		return
	case err != nil:
		utils.Error(c, 5000, "提交失败")
		return
	}

	resp := dto.SubmitFlagResp{Status: string(result.Status)}
	msg := "success"
	switch result.Status {
	case services.StatusSolved:
		resp.PointsAwarded = result.Points
		msg = "Flag 正确！"
	case services.StatusIncorrect:
		msg = "Flag 错误"
	case services.StatusAlreadySolved:
		msg = "该题已解出"
	case services.StatusRateLimited:
		resp.RetryAfterSeconds = int64(math.Ceil(result.RetryAfter.Seconds()))
		msg = "提交过于频繁，请稍后再试"
	}
	utils.Success(c, msg, resp)
}
