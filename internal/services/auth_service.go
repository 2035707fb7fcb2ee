package services

import (
	"context"

	"github.com/ibizabroker/520-project/internal/auth"
	"github.com/ibizabroker/520-project/internal/config"
	"github.com/ibizabroker/520-project/internal/models"
	"github.com/ibizabroker/520-project/internal/repo"
	"github.com/ibizabroker/520-project/internal/utils"
)

// AuthService owns credential verification, token issuance and
// per-request identity resolution. Bad email, bad password and every
// token defect collapse to the same 401 so callers cannot probe which
// check failed.
type AuthService struct {
	users  *repo.UserRepo
	tokens *auth.TokenIssuer
	cfg    *config.Config
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        bool   `json:"role"`
}

func NewAuthService(users *repo.UserRepo, tokens *auth.TokenIssuer, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

// Signup registers a new standard-tier user and issues their first
// token. A registered email is a conflict, surfaced as 400 with the
// message the frontend matches on.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*TokenResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("could not check existing users")
	}
	if exists {
		return nil, utils.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, utils.Internal("could not secure password")
	}

	user, err := s.users.Create(ctx, email, name, true, hash)
	if err != nil {
		return nil, utils.Internal("could not create user")
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Unauthorized("Incorrect email or password")
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, utils.Unauthorized("Incorrect email or password")
	}

	return s.issue(user)
}

// Resolve is the identity resolver invoked once per protected
// request: verify the token, then one store lookup, no caching.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		return nil, utils.Unauthorized("Could not validate credentials")
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		return nil, utils.Unauthorized("Could not validate credentials")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID, s.cfg.TokenTTL)
	if err != nil {
		return nil, utils.Internal("could not generate token")
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
	}, nil
}
