package models

import (
	"time"
)

// Token types stored in user_tokens.token_type.
const (
	TokenTypeRefresh       = "refresh"
	TokenTypePasswordReset = "password_reset"
)

// UserToken holds both refresh tokens (the signed token string itself) and
// password-reset tokens (a bcrypt hash of the raw secret). A revoked token
// is never accepted again.
type UserToken struct {
	TokenID   int       `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int       `gorm:"column:user_id;index" json:"user_id"`
	TokenType string    `gorm:"column:token_type" json:"token_type"`
	Token     string    `gorm:"column:token;size:512" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	Revoked   bool      `gorm:"column:revoked;default:false" json:"revoked"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName override
func (UserToken) TableName() string {
	return "user_tokens"
}
