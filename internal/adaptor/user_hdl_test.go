package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"market-auth/internal/dto/request"
	"market-auth/internal/dto/response"
	"market-auth/internal/usecase"
	"market-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserService is a mock implementation of usecase.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *MockUserService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.UserResponse]), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func deleteUserRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetProfileHandlerSuccess(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zap.NewNop())

	userID := uuid.New()
	svc.On("GetProfile", mock.Anything, userID.String()).
		Return(&response.UserResponse{ID: userID.String(), Username: "a@b.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.GetProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProfileHandlerUnauthenticated(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	rec := httptest.NewRecorder()
	h.GetProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestDeleteUserHandlerInvalidID(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zap.NewNop())

	svc.On("DeleteUser", mock.Anything, "not-a-uuid").Return(usecase.ErrInvalidID)

	rec := httptest.NewRecorder()
	h.DeleteUser(rec, deleteUserRequest("not-a-uuid"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "invalid user ID", resp.Message)
}

func TestDeleteUserHandlerNotFound(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zap.NewNop())

	id := uuid.New().String()
	svc.On("DeleteUser", mock.Anything, id).Return(usecase.ErrUserNotFound)

	rec := httptest.NewRecorder()
	h.DeleteUser(rec, deleteUserRequest(id))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
