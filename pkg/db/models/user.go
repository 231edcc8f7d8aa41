package models

import "time"

// User represents the canonical identity entity.
type User struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username      string     `gorm:"column:username;not null;uniqueIndex:usuarios_username_key"`
	Email         string     `gorm:"column:email;not null;uniqueIndex:usuarios_email_key"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	IsStaff       bool       `gorm:"column:is_staff;not null;default:false"`
	IsSuperuser   bool       `gorm:"column:is_superuser;not null;default:false"`
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "usuarios" }
