package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// AuthService handles registration, login and profile access
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterRequest contains the registration params
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Designation string `json:"designation"`
}

// AuthResponse is returned by both Register and Login
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account. The very first account in an empty store
// becomes the admin; everyone after that registers as an employee and is
// promoted through the admin API.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, domain.Validationf("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, domain.Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleEmployee
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		role = domain.RoleAdmin
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		Designation:  req.Designation,
		Active:       true,
		JoinedAt:     &now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// Login verifies the credentials and issues a fresh token carrying the
// account's current role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	token, err := s.tokens.Issue(user, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// Profile returns the live account state, not the stale token claims.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile lets a user change their own display fields only. Role,
// email and active status are admin-managed.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, designation, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if designation != "" {
		user.Designation = designation
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
