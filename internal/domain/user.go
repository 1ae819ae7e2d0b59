package domain

import (
	"context"
	"time"
)

// Application roles carried in the identity token.
const (
	RoleAdmin     = "admin"
	RoleClubAdmin = "club_admin"
	RoleStudent   = "student"
)

// User represents a registered student or staff member.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	OrganizationID string    `json:"organization_id"`
	PasswordHash   string    `json:"-"`
	PasswordSalt   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, role, organizationID string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:          email,
		Name:           name,
		Role:           role,
		OrganizationID: organizationID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// Identity is the verified caller extracted from an authentication token:
// who is calling, with which role, on behalf of which organization.
type Identity struct {
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

// IsAdmin reports whether the identity carries the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated identity.
type TokenIssuer interface {
	Issue(identity *Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// AuthService defines signup and login against the local identity provider.
type AuthService interface {
	SignUp(ctx context.Context, email, name, password, organizationID string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
