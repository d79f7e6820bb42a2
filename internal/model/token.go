package model

import (
	"time"

	"github.com/google/uuid"
)

// ワンタイムトークン2種。どちらもランダムな文字列そのものを主キーとし、
// 使用時（または期限切れ検出時）に物理削除される。

// UserVerificationToken はアカウント有効化メールに埋め込むトークン
type UserVerificationToken struct {
	Token     string    `gorm:"primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (UserVerificationToken) TableName() string { return "user_verification_tokens" }

// IsExpired は有効期限切れかどうかを返します
func (t *UserVerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// PasswordResetToken はパスワード再設定メールに埋め込むトークン
type PasswordResetToken struct {
	Token     string    `gorm:"primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

// IsExpired は有効期限切れかどうかを返します
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
