package response

import (
	"time"

	"market-auth/internal/data/entity"
)

// RegisterResponse returns the pending user and the verification-session token
// the client presents at the verify step.
type RegisterResponse struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	VerifyToken string    `json:"verify_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthResponse struct {
	UserID     string          `json:"user_id"`
	Token      string          `json:"token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Username   string          `json:"username"`
	Phone      string          `json:"phone"`
	Email      *string         `json:"email,omitempty"`
	Role       entity.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
}

type UserResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Phone      string          `json:"phone"`
	Email      *string         `json:"email,omitempty"`
	Role       entity.UserRole `json:"role"`
	Wallet     int64           `json:"wallet"`
	IsActive   bool            `json:"is_active"`
	IsVerified bool            `json:"is_verified"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		Phone:      user.Phone,
		Email:      user.Email,
		Role:       user.Role,
		Wallet:     user.Wallet,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:     user.ID.String(),
		Username:   user.Username,
		Phone:      user.Phone,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
