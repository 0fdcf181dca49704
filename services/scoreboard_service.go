// file: services/scoreboard_service.go
package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/dto"
)

const scoreboardCacheKey = "scoreboard:entries"

// 排行榜的聚合中间行
type leaderRow struct {
	ParticipantID uint32
	Username      string
	TotalPoints   uint
	SolveCount    uint
	LastSolveSeq  uint64
}

// Leaderboard 从解题表重算排行榜。排序规则：
// 总分降序；同分按"最后一次把总分推到当前值的解题"的先后（即最大记分序号）升序，
// 先达成者在前；再同则按参与者 ID 升序，保证全序、可重复。
// 名次在全量排序后分配，search 过滤与 limit 截断都不改变相对名次。
// limit = 0 表示返回全部。
func Leaderboard(limit int, search string) ([]dto.LeaderboardEntry, error) {
	if limit < 0 {
		return nil, ErrInvalidArgument
	}

	entries, err := rankedEntries()
	if err != nil {
		return nil, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]dto.LeaderboardEntry, 0, len(entries))
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Username), needle) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// rankedEntries 返回带名次的全量排行，优先走 Redis 缓存（15 秒 TTL）
func rankedEntries() ([]dto.LeaderboardEntry, error) {
	if val, err := database.RDB.Get(database.Ctx, scoreboardCacheKey).Result(); err == nil {
		var cached []dto.LeaderboardEntry
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached, nil
		}
	}

	var rows []leaderRow
	err := database.DB.Table("forge_solve s").
		Select("s.participant_id, p.username, SUM(s.points) as total_points, COUNT(s.id) as solve_count, MAX(s.id) as last_solve_seq").
		Joins("JOIN forge_participant p ON s.participant_id = p.id").
		Group("s.participant_id, p.username").
		Order("total_points desc, last_solve_seq asc, s.participant_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, ErrUnavailable
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:          uint(i + 1),
			ParticipantID: r.ParticipantID,
			Username:      r.Username,
			TotalPoints:   r.TotalPoints,
			SolveCount:    r.SolveCount,
		})
	}

	// 缓存有效期设置为较短的15秒，保证排行榜的准实时性
	if jsonData, err := json.Marshal(entries); err == nil {
		database.RDB.Set(database.Ctx, scoreboardCacheKey, jsonData, 15*time.Second)
	}
	return entries, nil
}

// InvalidateScoreboardCache 新增解题记录后清掉排行榜缓存，下次查询取最新数据
func InvalidateScoreboardCache() {
	keys, err := database.RDB.Keys(database.Ctx, "scoreboard:*").Result()
	if err == nil && len(keys) > 0 {
		database.RDB.Del(database.Ctx, keys...)
		log.Printf("Cleared %d scoreboard cache keys from Redis.", len(keys))
	}
}
