package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-auth/internal/data/entity"
	"market-auth/internal/data/repository"
	"market-auth/internal/dto/request"
	"market-auth/internal/dto/response"
	"market-auth/pkg/mailer"
	"market-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Verify(ctx context.Context, token string, req *request.VerifyRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	mailer mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mailer: mail,
		config: config,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Both password fields must agree
	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	// 3. Check phone uniqueness. A still-pending record on the same phone is
	// refreshed instead of rejected, so an abandoned registration never
	// blocks the number permanently.
	existing, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		s.log.Error("Failed to check phone", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to check phone")
	}
	if existing != nil {
		if !existing.Pending() {
			return nil, ErrAccountExists
		}
		return s.refreshPending(ctx, existing, req)
	}

	// 4. Check email uniqueness when an email was supplied
	if req.Email != nil {
		byEmail, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", *req.Email))
			return nil, fmt.Errorf("failed to check email")
		}
		if byEmail != nil {
			return nil, ErrAccountExists
		}
	}

	// 5. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 6. Create the pending user with a fresh code
	code := utils.GenerateVerificationCode()
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:         deriveUsername(req.Email, req.Phone),
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hashedPassword,
		Role:             entity.RoleCustomer,
		Wallet:           0,
		IsActive:         false,
		IsVerified:       false,
		VerificationCode: code,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// The advisory reads above can lose a race; the unique constraints
		// on phone and email are the authority.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to create account")
	}

	// 7. Deliver the code by email when one was given. Delivery failure is
	// degraded, not fatal: the caller still moves on to verification.
	s.deliverCode(user, code)

	// 8. Pending session replaces the framework session key: it carries the
	// pending user's identifier to the verify step.
	session, err := s.createSession(ctx, user.ID, entity.SessionStagePending)
	if err != nil {
		s.log.Error("Failed to create pending session",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to start verification")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return &response.RegisterResponse{
		UserID:      user.ID.String(),
		Username:    user.Username,
		VerifyToken: session.Token.String(),
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// refreshPending re-registers a never-verified account in place: new code, new
// password, updated email. Old pending sessions are revoked.
func (s *authService) refreshPending(ctx context.Context, user *entity.User, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	code := utils.GenerateVerificationCode()
	user.PasswordHash = hashedPassword
	user.Email = req.Email
	user.Username = deriveUsername(req.Email, req.Phone)
	user.VerificationCode = code
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		s.log.Error("Failed to refresh pending user",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create account")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke stale pending sessions",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.deliverCode(user, code)

	session, err := s.createSession(ctx, user.ID, entity.SessionStagePending)
	if err != nil {
		s.log.Error("Failed to create pending session",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to start verification")
	}

	s.log.Info("Pending registration refreshed",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return &response.RegisterResponse{
		UserID:      user.ID.String(),
		Username:    user.Username,
		VerifyToken: session.Token.String(),
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

func (s *authService) Verify(ctx context.Context, token string, req *request.VerifyRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if _, err := utils.ParseUUID(token); err != nil {
		return ErrInvalidToken
	}

	// 2. Resolve the pending user through the session
	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		s.log.Error("Failed to find session", zap.Error(err))
		return fmt.Errorf("failed to verify")
	}
	if session == nil {
		return ErrSessionExpired
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		s.log.Error("Failed to find user for verification",
			zap.Error(err), zap.String("user_id", session.UserID.String()))
		return fmt.Errorf("failed to verify")
	}
	// A session referencing a missing user is an expired registration, not a fault
	if user == nil {
		return ErrSessionExpired
	}

	// 3. Already confirmed: nothing left to do
	if user.IsVerified {
		return nil
	}

	// 4. Exact string comparison; mismatch leaves the record untouched and
	// the caller may retry indefinitely
	if user.VerificationCode != req.Code {
		s.log.Warn("Incorrect verification code", zap.String("user_id", user.ID.String()))
		return ErrIncorrectCode
	}

	// 5. Activate, mark verified, clear the single-use code
	user.IsActive = true
	user.IsVerified = true
	user.VerificationCode = ""
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to activate user",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to verify")
	}

	// 6. The pending session is spent; the user logs in next
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Warn("Failed to revoke pending session", zap.Error(err))
	}

	s.log.Info("User verified",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. All-digits login means phone number, anything else means email
	var user *entity.User
	var err error
	if isDigits(req.Login) {
		user, err = s.repo.User.FindByPhone(ctx, req.Login)
	} else {
		user, err = s.repo.User.FindByEmail(ctx, req.Login)
	}
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("login", req.Login))
		return nil, fmt.Errorf("failed to find user")
	}

	// No hint about which field was wrong
	if user == nil {
		s.log.Warn("User not found for login", zap.String("login", req.Login))
		return nil, ErrUserNotFound
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Incorrect password", zap.String("user_id", user.ID.String()))
		return nil, ErrIncorrectPassword
	}

	// 4. Authenticated but unverified accounts are refused a session
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrNotActivated
	}

	// 5. Establish the session
	session, err := s.createSession(ctx, user.ID, entity.SessionStageActive)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := utils.ParseUUID(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.String("token", token), zap.Error(err))
		return ErrInvalidToken
	}

	// 2. Revoke session; revoking an already-dead session still succeeds
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("token", token))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out", zap.String("token", token))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, stage entity.SessionStage) (*entity.Session, error) {
	ttl := time.Duration(s.config.Session.ExpiryHours) * time.Hour
	if stage == entity.SessionStagePending {
		ttl = time.Duration(s.config.Session.VerifyExpiryMinutes) * time.Minute
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		Stage:     stage,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) deliverCode(user *entity.User, code string) {
	if user.Email == nil {
		return
	}

	body := fmt.Sprintf("Your verification code: %s", code)
	if err := s.mailer.Send("Verification code", body, *user.Email); err != nil {
		s.log.Warn("Failed to send verification code",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("email", *user.Email))
	}
}

// deriveUsername: email when present, phone number otherwise
func deriveUsername(email *string, phone string) string {
	if email != nil && *email != "" {
		return *email
	}
	return phone
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
