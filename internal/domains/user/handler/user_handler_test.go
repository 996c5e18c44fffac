package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/user"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/pkg/jwt"
)

type fakeService struct {
	registerFn func(ctx context.Context, req *user.RegisterRequest) (*user.User, error)
	loginFn    func(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error)
	getFn      func(ctx context.Context, id uuid.UUID) (*user.User, error)
	updateFn   func(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
	deactivate func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeService) Login(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeService) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return f.deactivate(ctx, id)
}

func newRouter(svc Service, tokens *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(svc)

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	protected := auth.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.GET("/me", h.Me)
	protected.DELETE("/me", h.DeleteMe)
	return r
}

func testTokens() *jwt.Manager {
	return jwt.NewManager("test-secret", 30*time.Minute)
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_LowercasesIdentity(t *testing.T) {
	var got *user.RegisterRequest
	svc := &fakeService{
		registerFn: func(_ context.Context, req *user.RegisterRequest) (*user.User, error) {
			got = req
			return &user.User{ID: uuid.New(), Username: req.Username, Email: req.Email, IsActive: true}, nil
		},
	}
	r := newRouter(svc, testTokens())

	w := postJSON(r, "/auth/register", `{"username": "Reader", "email": "Reader@Example.com", "password": "Sup3rSecret"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "reader", got.Username)
	assert.Equal(t, "reader@example.com", got.Email)
	assert.NotContains(t, w.Body.String(), "hashed_password")
}

func TestRegister_Duplicate(t *testing.T) {
	svc := &fakeService{
		registerFn: func(context.Context, *user.RegisterRequest) (*user.User, error) {
			return nil, user.ErrDuplicateUsername
		},
	}
	r := newRouter(svc, testTokens())

	w := postJSON(r, "/auth/register", `{"username": "reader", "email": "reader@example.com", "password": "Sup3rSecret"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_WeakPassword(t *testing.T) {
	r := newRouter(&fakeService{}, testTokens())

	w := postJSON(r, "/auth/register", `{"username": "reader", "email": "reader@example.com", "password": "weak"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &fakeService{
		loginFn: func(context.Context, *user.LoginRequest) (*user.TokenResponse, error) {
			return &user.TokenResponse{AccessToken: "token", TokenType: "bearer", ExpiresIn: 1800}, nil
		},
	}
	r := newRouter(svc, testTokens())

	w := postJSON(r, "/auth/login", `{"username": "reader", "password": "Sup3rSecret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token_type":"bearer"`)
	assert.Contains(t, w.Body.String(), `"expires_in":1800`)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &fakeService{
		loginFn: func(context.Context, *user.LoginRequest) (*user.TokenResponse, error) {
			return nil, user.ErrInvalidCredentials
		},
	}
	r := newRouter(svc, testTokens())

	w := postJSON(r, "/auth/login", `{"username": "reader", "password": "WrongPass1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	r := newRouter(&fakeService{}, testTokens())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	tokens := testTokens()
	id := uuid.New()
	svc := &fakeService{
		getFn: func(_ context.Context, gotID uuid.UUID) (*user.User, error) {
			assert.Equal(t, id, gotID)
			return &user.User{ID: gotID, Username: "reader", IsActive: true}, nil
		},
	}
	r := newRouter(svc, tokens)

	token, err := tokens.Generate(id, "reader")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"reader"`)
}

func TestDeleteMe_Deactivates(t *testing.T) {
	tokens := testTokens()
	id := uuid.New()
	var deactivated uuid.UUID
	svc := &fakeService{
		deactivate: func(_ context.Context, gotID uuid.UUID) error {
			deactivated = gotID
			return nil
		},
	}
	r := newRouter(svc, tokens)

	token, err := tokens.Generate(id, "reader")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, deactivated)
}
