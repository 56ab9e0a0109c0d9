package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// USER DOMAIN TYPES
// =============================================================================

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "An account with this email already exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
)

// UserRole controls access to admin operations.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParseUserRole validates a raw role value.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleUser, RoleAdmin:
		return UserRole(s), nil
	}
	return "", &Error{Code: EINVALID, Message: fmt.Sprintf("Invalid role %q", s)}
}

// User is an account holder. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Phone        string
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may perform admin operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserParams holds the fields required to register a user.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
}

// UpdateUserParams holds optional profile updates. Nil pointers leave the
// stored value unchanged.
type UpdateUserParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *UserRole
	Phone        *string
	AddressLine1 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// UserStore provides persistence for user accounts.
type UserStore interface {
	// Create inserts a new user. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, params CreateUserParams) (*User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update applies a partial profile update.
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error)

	// Delete removes a user account.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users, oldest first.
	List(ctx context.Context) ([]User, error)
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// UserService provides business logic for accounts and authentication.
type UserService interface {
	// Register creates an account with a hashed password and returns it
	// with a signed session token.
	Register(ctx context.Context, name, email, password string) (*User, string, error)

	// Login verifies credentials and returns the user with a signed token.
	Login(ctx context.Context, email, password string) (*User, string, error)

	// GetProfile retrieves a user's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)

	// UpdateProfile applies a partial update to the caller's profile.
	// A non-empty password is re-hashed before storage.
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*User, error)

	// ListUsers returns all accounts for admin review.
	ListUsers(ctx context.Context) ([]User, error)

	// GetUser retrieves any account by ID for admin review.
	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)

	// UpdateRole changes an account's role.
	UpdateRole(ctx context.Context, userID uuid.UUID, role UserRole) (*User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UpdateProfileParams is the caller-facing shape of a profile update.
// Password is plaintext here and hashed by the service.
type UpdateProfileParams struct {
	Name         *string
	Email        *string
	Password     *string
	Phone        *string
	AddressLine1 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
}
