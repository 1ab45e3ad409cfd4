package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
	RoleUser    UserRole = "user"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember, RoleUser:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:user"`

	Name     string `gorm:"size:80"`
	Gender   string `gorm:"size:10"`
	Birthday *time.Time

	AccountStatus AccountStatus `gorm:"type:varchar(20);not null;default:active"`

	// аудит входов
	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:45"`
}

func (u *User) ToDict() map[string]any {
	var birthday any
	if u.Birthday != nil {
		birthday = u.Birthday.Format("2006-01-02")
	}
	var lastLoginAt any
	if u.LastLoginAt != nil {
		lastLoginAt = u.LastLoginAt.Format("2006-01-02 15:04:05")
	}

	return map[string]any{
		"id":             u.ID,
		"username":       u.Username,
		"role":           string(u.Role),
		"name":           u.Name,
		"gender":         u.Gender,
		"birthday":       birthday,
		"account_status": u.AccountStatus == AccountActive,
		"created_at":     u.CreatedAt.Format("2006-01-02 15:04:05"),
		"last_login_at":  lastLoginAt,
		"last_login_ip":  u.LastLoginIP,
	}
}
