package repository

import (
	"errors"

	"market-auth/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicateKey is returned when an insert loses against a unique constraint.
// The uniqueness read in the registration flow is advisory; this is the authority.
var ErrDuplicateKey = errors.New("duplicate key")

type Repository struct {
	User    UserRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}
