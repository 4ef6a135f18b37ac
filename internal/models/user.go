package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role はユーザーの権限です。
type Role string

const (
	RoleGuest Role = "Guest"
	RoleOwner Role = "Owner"
)

// ParseRole はロール名を解釈します。大文字小文字は区別しません。
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(s, string(RoleGuest)):
		return RoleGuest, true
	case strings.EqualFold(s, string(RoleOwner)):
		return RoleOwner, true
	}
	return "", false
}

// User はユーザーのデータベース構造体を表します。
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // JSONに出さない
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRole はユーザーが指定ロールを持つかを返します。
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole は登録時に付与されたロールを返します。
func (u *User) PrimaryRole() Role {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

type UserRegisterRequest struct {
	Username string `json:"username" binding:"required,max=256"`
	Email    string `json:"email" binding:"required,email,max=256"`
	Password string `json:"password" binding:"required,min=8,max=72"` // 生パスワード
	Role     string `json:"role" binding:"required"`
}

// UserLoginRequest の Username にはメールアドレスも指定できます。
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse は管理者向けのユーザー表示です。パスワードハッシュは含みません。
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []Role{}
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}
