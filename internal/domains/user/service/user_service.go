package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookshelf-backend/internal/domains/user"
	"bookshelf-backend/pkg/jwt"
	"bookshelf-backend/pkg/logger"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo   Repository
	tokens *jwt.Manager
}

func NewUserService(repo Repository, tokens *jwt.Manager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &user.User{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: string(hash),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{"username": created.Username})
	return created, nil
}

// Login verifies the credentials and issues an access token. Unknown
// usernames and wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	token, err := s.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	return &user.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.Expiry().Seconds()),
	}, nil
}

// GetByID rejects deactivated accounts so tokens issued before a
// deactivation stop working here.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Deactivate soft-deletes the account; the row stays for audit.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
