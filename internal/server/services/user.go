package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/auth"
	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
	"golang.org/x/crypto/bcrypt"
)

// UserService registers accounts and issues access tokens.
type UserService struct {
	repomanager   repositories.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(m repositories.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates the account and returns a token for it. A taken
// username or email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.TrimSpace(creds.Email)

	var missing []string
	if creds.Username == "" {
		missing = append(missing, "username")
	}
	if creds.Email == "" {
		missing = append(missing, "email")
	}
	if creds.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Fields: missing}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	u := &sm.User{Username: creds.Username, Email: creds.Email, PasswordHash: string(hash)}
	if err := s.repomanager.Users().Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.respond(u)
}

// Login verifies the password. An unknown user and a wrong password both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, &models.ValidationError{Fields: []string{"username", "password"}}
	}

	u, err := s.repomanager.Users().GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.respond(u)
}

func (s *UserService) respond(u *sm.User) (*models.AuthResponse, error) {
	token, err := auth.GenerateToken(u.ID, u.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}
	return &models.AuthResponse{
		Token:    token,
		ID:       models.ID(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
