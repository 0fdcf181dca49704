// file: routes/router.go
package routes

import (
	"github.com/Mmo23/fifty-flag-forge/controllers"
	"github.com/Mmo23/fifty-flag-forge/middlewares"
	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 参与者（身份系统边界）---
		participantsPublic := apiV1.Group("/participants")
		{
			participantsPublic.POST("/register", controllers.Register)
			participantsPublic.POST("/login", controllers.Login)
		}
		participantsAuth := apiV1.Group("/participants")
		participantsAuth.Use(middlewares.JWTAuthMiddleware())
		{
			participantsAuth.GET("/me/solves", controllers.GetMySolves)
		}

		// --- 排行榜（公开）---
		apiV1.GET("/scoreboard", controllers.GetScoreboard)

		// --- 题目模块 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			// 用户接口
			challengeRoutes.GET("", middlewares.JWTAuthMiddleware(), controllers.ListChallenges)
			challengeRoutes.GET("/:id", middlewares.JWTAuthMiddleware(), controllers.GetChallengeDetail)
			challengeRoutes.GET("/:id/stats", middlewares.JWTAuthMiddleware(), controllers.GetChallengeStats)
			challengeRoutes.POST("/:id/submit", middlewares.JWTAuthMiddleware(), controllers.SubmitFlag)

			// 管理员接口
			challengeRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateChallenge)
			challengeRoutes.PUT("/:id/state", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpdateChallengeState)
			challengeRoutes.PUT("/:id/flag", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.RotateChallengeFlag)
		}

		// --- 提交流水审计 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/attempts", controllers.GetAttemptLogs)
		}
	}

	return r
}
