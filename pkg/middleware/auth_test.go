package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"market-auth/internal/data/entity"
	"market-auth/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func sessionWithStage(stage entity.SessionStage) *entity.Session {
	return &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		Token:      uuid.New(),
		Stage:      stage,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestAuthSessionAcceptsActiveSession(t *testing.T) {
	repo := new(mockSessionRepo)
	session := sessionWithStage(entity.SessionStageActive)
	repo.On("FindValidSession", mock.Anything, session.Token.String()).Return(session, nil)

	var called bool
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotToken, _ = utils.GetTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token.String())
	rec := httptest.NewRecorder()
	AuthSession(repo, zap.NewNop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, session.Token.String(), gotToken)
}

func TestAuthSessionRejectsPendingSession(t *testing.T) {
	repo := new(mockSessionRepo)
	session := sessionWithStage(entity.SessionStagePending)
	repo.On("FindValidSession", mock.Anything, session.Token.String()).Return(session, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token.String())
	rec := httptest.NewRecorder()
	AuthSession(repo, zap.NewNop())(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthSessionRejectsUnknownToken(t *testing.T) {
	repo := new(mockSessionRepo)
	token := uuid.New().String()
	repo.On("FindValidSession", mock.Anything, token).Return(nil, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthSession(repo, zap.NewNop())(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthSessionRejectsMalformedHeader(t *testing.T) {
	repo := new(mockSessionRepo)

	for _, header := range []string{"", "Bearer", "Token abc", "abc"} {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		AuthSession(repo, zap.NewNop())(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	}
	repo.AssertNotCalled(t, "FindValidSession", mock.Anything, mock.Anything)
}

func TestAdminRejectsNonAdmin(t *testing.T) {
	userRepo := new(mockUserRepo)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleCustomer}
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), user.ID))
	rec := httptest.NewRecorder()
	Admin(userRepo, zap.NewNop())(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAdminAllowsAdmin(t *testing.T) {
	userRepo := new(mockUserRepo)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin}
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), user.ID))
	rec := httptest.NewRecorder()
	Admin(userRepo, zap.NewNop())(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
