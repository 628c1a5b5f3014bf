package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SendConfirmationCode(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendCode_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("SendConfirmationCode", mock.Anything, "a.b@test.com").Return("a.b@test.com", nil)

	w := postJSON(router, "/auth/email", dto.SendCodeRequest{Email: "a.b@test.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SendCodeResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a.b@test.com", resp.Email)
	mockAuthService.AssertExpectations(t)
}

func TestSendCode_InvalidEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	w := postJSON(router, "/auth/email", gin.H{"email": "not-an-address"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "SendConfirmationCode", mock.Anything, mock.Anything)
}

func TestSendCode_EmailAlreadyRegistered(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("SendConfirmationCode", mock.Anything, "taken@test.com").Return("", service.ErrEmailRegistered)

	w := postJSON(router, "/auth/email", dto.SendCodeRequest{Email: "taken@test.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendCode_MailDeliveryFailure(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("SendConfirmationCode", mock.Anything, "a.b@test.com").Return("", service.ErrMailDelivery)

	w := postJSON(router, "/auth/email", dto.SendCodeRequest{Email: "a.b@test.com"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestIssueToken_HandlerSuccess(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("IssueToken", mock.Anything, "a.b@test.com", "the-code").Return("signed.jwt.token", nil)

	w := postJSON(router, "/auth/token", dto.TokenRequest{Email: "a.b@test.com", ConfirmationCode: "the-code"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.TokenResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
	mockAuthService.AssertExpectations(t)
}

func TestIssueToken_WrongCodeUnauthorized(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("IssueToken", mock.Anything, "a.b@test.com", "wrong").Return("", service.ErrInvalidCode)

	w := postJSON(router, "/auth/token", dto.TokenRequest{Email: "a.b@test.com", ConfirmationCode: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueToken_UnknownEmailNotFound(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("IssueToken", mock.Anything, "ghost@test.com", "code").Return("", service.ErrUserNotFound)

	w := postJSON(router, "/auth/token", dto.TokenRequest{Email: "ghost@test.com", ConfirmationCode: "code"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueToken_OpaqueInternalError(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	h.RegisterRoutes(router.Group("/auth"))

	mockAuthService.On("IssueToken", mock.Anything, "a.b@test.com", "code").Return("", assert.AnError)

	w := postJSON(router, "/auth/token", dto.TokenRequest{Email: "a.b@test.com", ConfirmationCode: "code"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), "internal server error")
}
