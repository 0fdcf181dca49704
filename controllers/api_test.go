// file: controllers/api_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/Mmo23/fifty-flag-forge/routes"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.Participant{},
		&models.Challenge{},
		&models.Attempt{},
		&models.Solve{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		marshalled, _ := json.Marshal(body)
		reader = bytes.NewReader(marshalled)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad envelope: %v (body %s)", method, path, err, w.Body.String())
	}
	return env
}

// registerAndLogin 注册并登录，返回 token；asAdmin 时直接改库提升角色后再登录
func registerAndLogin(t *testing.T, r *gin.Engine, username string, asAdmin bool) string {
	t.Helper()
	env := doJSON(t, r, "POST", "/api/v1/participants/register", "", gin.H{
		"username": username,
		"password": "test-password-123",
		"email":    username + "@example.com",
	})
	if env.Code != 0 {
		t.Fatalf("register %s: %+v", username, env)
	}
	if asAdmin {
		database.DB.Model(&models.Participant{}).
			Where("username = ?", username).
			Update("role", models.RoleAdmin)
	}

	env = doJSON(t, r, "POST", "/api/v1/participants/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "test-password-123",
	})
	if env.Code != 0 {
		t.Fatalf("login %s: %+v", username, env)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login %s: no token in %s", username, env.Data)
	}
	return data.Token
}

func createChallengeAPI(t *testing.T, r *gin.Engine, adminToken, title, flag string, points uint) uint32 {
	t.Helper()
	env := doJSON(t, r, "POST", "/api/v1/challenges", adminToken, gin.H{
		"title":       title,
		"category":    "Cryptography",
		"description": "test challenge",
		"level":       "easy",
		"points":      points,
		"flag":        flag,
	})
	if env.Code != 0 {
		t.Fatalf("create challenge: %+v", env)
	}
	var data struct {
		ID uint32 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("create challenge: bad data %s", env.Data)
	}

	env = doJSON(t, r, "PUT", fmt.Sprintf("/api/v1/challenges/%d/state", data.ID), adminToken, gin.H{"state": "visible"})
	if env.Code != 0 {
		t.Fatalf("publish challenge: %+v", env)
	}
	return data.ID
}

func TestSubmissionFlowOverHTTP(t *testing.T) {
	r := setupAPI(t)
	admin := registerAndLogin(t, r, "admin", true)
	player := registerAndLogin(t, r, "player", false)
	chID := createChallengeAPI(t, r, admin, "C1", "CTF{abc}", 100)

	submit := func(flag string) (string, uint, int64) {
		env := doJSON(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", chID), player, gin.H{"flag": flag})
		if env.Code != 0 {
			t.Fatalf("submit: %+v", env)
		}
		var data struct {
			Status            string `json:"status"`
			PointsAwarded     uint   `json:"points_awarded"`
			RetryAfterSeconds int64  `json:"retry_after_seconds"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("submit: bad data %s", env.Data)
		}
		return data.Status, data.PointsAwarded, data.RetryAfterSeconds
	}

	if status, _, _ := submit("CTF{wrong}"); status != "incorrect" {
		t.Errorf("wrong flag: got %s", status)
	}
	if status, points, _ := submit("CTF{abc}"); status != "solved" || points != 100 {
		t.Errorf("correct flag: got %s/%d", status, points)
	}
	if status, _, _ := submit("CTF{abc}"); status != "already_solved" {
		t.Errorf("resubmit: got %s", status)
	}

	// 排行榜公开可读，player 以 100 分居首
	env := doJSON(t, r, "GET", "/api/v1/scoreboard", "", nil)
	if env.Code != 0 {
		t.Fatalf("scoreboard: %+v", env)
	}
	var board struct {
		Total   int `json:"total"`
		Entries []struct {
			Rank        uint   `json:"rank"`
			Username    string `json:"username"`
			TotalPoints uint   `json:"total_points"`
			SolveCount  uint   `json:"solve_count"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatalf("scoreboard: bad data %s", env.Data)
	}
	if board.Total != 1 || board.Entries[0].Username != "player" ||
		board.Entries[0].TotalPoints != 100 || board.Entries[0].Rank != 1 {
		t.Errorf("scoreboard = %+v", board)
	}

	// 统计接口：3 次提交，1 次解出
	env = doJSON(t, r, "GET", fmt.Sprintf("/api/v1/challenges/%d/stats", chID), player, nil)
	if env.Code != 0 {
		t.Fatalf("stats: %+v", env)
	}
	var stats struct {
		AttemptCount int64 `json:"attempt_count"`
		SolveCount   int64 `json:"solve_count"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("stats: bad data %s", env.Data)
	}
	if stats.AttemptCount != 3 || stats.SolveCount != 1 {
		t.Errorf("stats = %+v, want 3 attempts / 1 solve", stats)
	}
}

func TestSubmitRequiresAuth(t *testing.T) {
	r := setupAPI(t)
	env := doJSON(t, r, "POST", "/api/v1/challenges/1/submit", "", gin.H{"flag": "x"})
	if env.Code != 4001 {
		t.Errorf("unauthenticated submit: code %d, want 4001", env.Code)
	}
}

func TestChallengeAdminEndpointsRequireRole(t *testing.T) {
	r := setupAPI(t)
	player := registerAndLogin(t, r, "player", false)

	marshalled, _ := json.Marshal(gin.H{
		"title": "X", "category": "Web", "description": "d", "points": 10,
	})
	req, _ := http.NewRequest("POST", "/api/v1/challenges", bytes.NewReader(marshalled))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+player)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin create: HTTP %d, want 403", w.Code)
	}
}

func TestChallengeResponsesNeverExposeDigest(t *testing.T) {
	r := setupAPI(t)
	admin := registerAndLogin(t, r, "admin", true)
	player := registerAndLogin(t, r, "player", false)
	chID := createChallengeAPI(t, r, admin, "C1", "CTF{abc}", 100)

	for _, path := range []string{
		"/api/v1/challenges",
		fmt.Sprintf("/api/v1/challenges/%d", chID),
	} {
		env := doJSON(t, r, "GET", path, player, nil)
		if env.Code != 0 {
			t.Fatalf("GET %s: %+v", path, env)
		}
		if bytes.Contains(env.Data, []byte("digest")) || bytes.Contains(env.Data, []byte("salt")) ||
			bytes.Contains(env.Data, []byte("CTF{abc}")) {
			t.Errorf("GET %s leaks flag material: %s", path, env.Data)
		}
	}
}

func TestAttemptAuditLog(t *testing.T) {
	r := setupAPI(t)
	admin := registerAndLogin(t, r, "admin", true)
	player := registerAndLogin(t, r, "player", false)
	chID := createChallengeAPI(t, r, admin, "C1", "CTF{abc}", 100)

	doJSON(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", chID), player, gin.H{"flag": "bad"})
	doJSON(t, r, "POST", fmt.Sprintf("/api/v1/challenges/%d/submit", chID), player, gin.H{"flag": "CTF{abc}"})

	env := doJSON(t, r, "GET", "/api/v1/admin/attempts?outcome=wrong", admin, nil)
	if env.Code != 0 {
		t.Fatalf("audit: %+v", env)
	}
	var logs []struct {
		Username string `json:"username"`
		Outcome  string `json:"outcome"`
	}
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		t.Fatalf("audit: bad data %s", env.Data)
	}
	if len(logs) != 1 || logs[0].Outcome != "wrong" || logs[0].Username != "player" {
		t.Errorf("audit logs = %+v", logs)
	}
	// 流水不含提交的明文
	if bytes.Contains(env.Data, []byte("CTF{abc}")) || bytes.Contains(env.Data, []byte(`"bad"`)) {
		t.Errorf("audit log leaks submitted plaintext: %s", env.Data)
	}
}
