// file: services/testutil_test.go
package services

import (
	"testing"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用内存 sqlite 顶替 MySQL，miniredis 顶替 Redis。
// 单连接池让并发用例在同一个内存库上串行化，不会触发 sqlite 的并发写冲突。
func setupTestDB(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
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

	return mr
}

func createParticipant(t *testing.T, username string) models.Participant {
	t.Helper()
	p := models.Participant{
		Username: username,
		Password: "test-password-123",
		Email:    username + "@example.com",
	}
	if err := database.DB.Create(&p).Error; err != nil {
		t.Fatalf("create participant %s: %v", username, err)
	}
	return p
}

func createChallenge(t *testing.T, title, flag string, points uint) models.Challenge {
	t.Helper()
	ch := models.Challenge{
		Title:       title,
		Category:    "Cryptography",
		Description: "test challenge",
		Level:       models.ChallengeLevelEasy,
		State:       models.ChallengeStateVisible,
		Points:      points,
		FlagDigest:  "pending",
		FlagSalt:    "pending",
	}
	if err := database.DB.Create(&ch).Error; err != nil {
		t.Fatalf("create challenge %s: %v", title, err)
	}
	if err := SetChallengeFlag(ch.ID, flag); err != nil {
		t.Fatalf("set flag for %s: %v", title, err)
	}
	return ch
}
