package services

import (
	"context"
	"errors"

	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/internal/utils"
)

// AuthService issues bearer identities with a role claim. The review
// core never sees credentials; it only trusts the decoded Identity.
type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	User      models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, NewValidationError("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, NewValidationError("password must be at least 8 characters")
	}
	name := utils.SanitizeString(req.Name)
	if name == "" {
		return nil, NewValidationError("name must not be empty")
	}

	email := utils.SanitizeString(req.Email)
	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, NewValidationError("user already exists")
	}

	// Registration always yields a regular user; the admin account is
	// seeded from configuration, never self-assigned.
	user := models.User{
		Name:     name,
		Email:    email,
		Password: req.Password, // hashed on create
		Role:     models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return s.respond(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindUserByEmail(ctx, utils.SanitizeString(req.Email))
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrUnauthenticated
	}
	return s.respond(*user)
}

// Profile returns the account behind an identity.
func (s *AuthService) Profile(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}
	return s.users.FindUserByID(ctx, identity.UserID)
}

func (s *AuthService) respond(user models.User) (*AuthResponse, error) {
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Name, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt.Unix(), User: user}, nil
}
