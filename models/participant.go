// file: models/participant.go
package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"time"
)

// 自定义类型 ParticipantRole, ParticipantStatus
type ParticipantRole string
type ParticipantStatus string

const (
	RoleUser      ParticipantRole   = "user"
	RoleAdmin     ParticipantRole   = "admin"
	RoleRootAdmin ParticipantRole   = "root_admin"
	StatusActive  ParticipantStatus = "active"
	StatusBanned  ParticipantStatus = "banned"
)

type Participant struct {
	ID        uint32            `gorm:"primarykey" json:"id"`
	Username  string            `gorm:"size:50;unique;not null" json:"username"`
	Password  string            `gorm:"size:255;not null" json:"-"`
	Email     string            `gorm:"size:100;unique;not null" json:"email"`
	Role      ParticipantRole   `gorm:"size:20;not null;default:'user'" json:"role"`
	Status    ParticipantStatus `gorm:"size:10;not null;default:'active'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Participant) TableName() string {
	return "forge_participant"
}

// BeforeSave GORM Hook，在保存前自动哈希密码
func (p *Participant) BeforeSave(tx *gorm.DB) (err error) {
	// 在新用户创建时 (ID=0) 或在老用户更新密码时，都执行哈希
	if p.ID == 0 || tx.Statement.Changed("Password") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.Password = string(hashedPassword)
	}
	return
}

// CheckPassword 校验密码是否正确
func (p *Participant) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}
