package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStage string

const (
	// SessionStagePending is minted at registration and only authorizes the
	// verify operation.
	SessionStagePending SessionStage = "pending"
	// SessionStageActive is minted at login.
	SessionStageActive SessionStage = "active"
)

type Session struct {
	BaseSimple
	UserID    uuid.UUID    `db:"user_id"`
	Token     uuid.UUID    `db:"token"`
	Stage     SessionStage `db:"stage"`
	UserAgent *string      `db:"user_agent"`
	IPAddress *string      `db:"ip_address"`
	ExpiresAt time.Time    `db:"expires_at"`
	RevokedAt *time.Time   `db:"revoked_at"`
}
