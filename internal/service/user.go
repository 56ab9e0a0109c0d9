package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/auth"
	"github.com/shopeasy/shopeasy/internal/domain"
)

type userService struct {
	users  domain.UserStore
	signer *auth.TokenSigner
}

// NewUserService creates a new UserService instance
func NewUserService(users domain.UserStore, signer *auth.TokenSigner) domain.UserService {
	return &userService{users: users, signer: signer}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, "", domain.NewValidationError("user.register", "password", "Password must be at least 8 characters")
		}
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.CreateUserParams{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password so callers cannot probe which accounts exist.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, params domain.UpdateProfileParams) (*domain.User, error) {
	update := domain.UpdateUserParams{
		Name:         params.Name,
		Phone:        params.Phone,
		AddressLine1: params.AddressLine1,
		City:         params.City,
		State:        params.State,
		PostalCode:   params.PostalCode,
		Country:      params.Country,
	}

	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if !looksLikeEmail(email) {
			return nil, domain.NewValidationError("user.update", "email", "A valid email is required")
		}
		update.Email = &email
	}

	if params.Password != nil && *params.Password != "" {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooShort) {
				return nil, domain.NewValidationError("user.update", "password", "Password must be at least 8 characters")
			}
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	return s.users.Update(ctx, userID, update)
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	parsed, err := domain.ParseUserRole(string(role))
	if err != nil {
		return nil, err
	}
	return s.users.Update(ctx, userID, domain.UpdateUserParams{Role: &parsed})
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}

func validateRegistration(name, email, password string) error {
	var err error
	if len(strings.TrimSpace(name)) < 2 {
		err = domain.AddFieldError(err, "name", "Name must be at least 2 characters")
	}
	if !looksLikeEmail(normalizeEmail(email)) {
		err = domain.AddFieldError(err, "email", "A valid email is required")
	}
	if len(password) < auth.MinPasswordLength {
		err = domain.AddFieldError(err, "password", "Password must be at least 8 characters")
	}
	if err != nil {
		if ve, ok := err.(*domain.ValidationError); ok {
			ve.Op = "user.register"
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	rest := email[at+1:]
	return strings.Contains(rest, ".") && !strings.ContainsAny(email, " \t")
}
