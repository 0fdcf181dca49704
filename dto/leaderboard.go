// file: dto/leaderboard.go
package dto

// LeaderboardEntry 排行榜条目，完全由解题表推导，不落独立存储
type LeaderboardEntry struct {
	Rank          uint   `json:"rank"`
	ParticipantID uint32 `json:"participant_id"`
	Username      string `json:"username"`
	TotalPoints   uint   `json:"total_points"`
	SolveCount    uint   `json:"solve_count"`
}
