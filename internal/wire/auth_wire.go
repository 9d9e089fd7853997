package wire

import (
	"market-auth/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	// Verify authenticates with the pending session token itself, so it
	// stays outside the auth middleware (which only admits active sessions).
	r.Post("/api/verify", authHandler.Verify)
	r.Post("/api/login", authHandler.Login)
	// Logout tears down whatever token the caller presents, including ones
	// already revoked or expired, so it cannot sit behind the session gate.
	r.Get("/api/logout", authHandler.Logout)
}
