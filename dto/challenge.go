// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Level       string `json:"level"` // easy / medium / hard
	Points      uint   `json:"points"`
	Flag        string `json:"flag"` // 留空则服务端生成

	// 旧客户端兼容别名（camelCase），与上面 tag 不重复
	TitleCamel string `json:"challengeName"`
	FlagCamel  string `json:"staticFlag"`
}

// Normalize: 将别名归一化，并做轻量清洗与默认值处理
func (r *CreateChallengeReq) Normalize() {
	if r.Title == "" && r.TitleCamel != "" {
		r.Title = r.TitleCamel
	}
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}

	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))

	if r.Level == "" {
		r.Level = "medium"
	}
}

type UpdateChallengeStateReq struct {
	State string `json:"state"` // visible / hidden / retired
}

type RotateFlagReq struct {
	Flag string `json:"flag"`
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID           uint32 `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	Points       uint   `json:"points"`
	AttemptCount int64  `json:"attempt_count"`
	SolveCount   int64  `json:"solve_count"`
}

type ChallengeDetailResp struct {
	ID           uint32 `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	Level        string `json:"level"`
	Points       uint   `json:"points"`
	AttemptCount int64  `json:"attempt_count"`
	SolveCount   int64  `json:"solve_count"`
	CreatedAt    string `json:"created_at"`
}

type ChallengeStatsResp struct {
	AttemptCount int64 `json:"attempt_count"`
	SolveCount   int64 `json:"solve_count"`
}
