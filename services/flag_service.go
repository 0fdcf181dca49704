// file: services/flag_service.go
package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/Mmo23/fifty-flag-forge/database"
	"github.com/Mmo23/fifty-flag-forge/models"
	"gorm.io/gorm"
)

const flagSaltBytes = 16

// 未知题目走的诱饵摘要：保证"题目不存在"与"Flag 错误"做同样多的哈希与比较工作，
// 避免通过提交时延探测题目是否存在
const (
	decoySalt   = "3a91c4f07d2e6b58a0c1f39e74d5280b"
	decoyDigest = "9f2d7c01b6a8e4553e0d1c9a7f48b2d6c3a05e891b74f6203d8ce5a41709bf62"
)

func hashFlag(salt []byte, flag string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(flag))
	return h.Sum(nil)
}

// SetChallengeFlag 为题目写入 Flag：随机盐 + SHA-256(盐‖明文)，明文随即丢弃。
// 创建题目与后续换 Flag 都走这里。
func SetChallengeFlag(challengeID uint32, plaintext string) error {
	if strings.TrimSpace(plaintext) == "" {
		return ErrInvalidArgument
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return ErrUnavailable
	}

	salt := make([]byte, flagSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	digest := hashFlag(salt, plaintext)

	err := database.DB.Model(&challenge).Updates(map[string]interface{}{
		"flag_digest": hex.EncodeToString(digest),
		"flag_salt":   hex.EncodeToString(salt),
	}).Error
	if err != nil {
		return ErrUnavailable
	}
	return nil
}

// VerifyFlag 重算摘要并做常数时间比较，比较耗时与首个差异字节的位置无关。
// 题目不存在时返回 false 而不报错，且走与普通错误答案相同的计算路径。
func VerifyFlag(challengeID uint32, submitted string) bool {
	var challenge models.Challenge
	err := database.DB.Select("flag_digest", "flag_salt").
		First(&challenge, challengeID).Error

	digestHex, saltHex := challenge.FlagDigest, challenge.FlagSalt
	if err != nil || digestHex == "" {
		digestHex, saltHex = decoyDigest, decoySalt
	}

	salt, _ := hex.DecodeString(saltHex)
	stored, _ := hex.DecodeString(digestHex)
	sum := hashFlag(salt, submitted)

	match := subtle.ConstantTimeCompare(sum, stored) == 1
	return match && err == nil && challenge.FlagDigest != ""
}
