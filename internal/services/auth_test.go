package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubevents/internal/domain"
)

type fakeHasher struct {
	saltErr error
	hashErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct {
	err    error
	issued *domain.Identity
}

func (f *fakeTokenIssuer) Issue(identity *domain.Identity, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = identity
	return "token-for-" + identity.UserID, nil
}

func newAuthFixture() (*mockUserRepository, *fakeTokenIssuer, domain.AuthService) {
	userRepo := &mockUserRepository{
		users:        map[string]*domain.User{},
		usersByEmail: map[string]*domain.User{},
	}
	orgRepo := &mockOrganizationRepository{orgs: map[string]*domain.Organization{
		"org-1": {ID: "org-1", Name: "State University"},
	}}
	issuer := &fakeTokenIssuer{}
	svc := NewAuthService(userRepo, orgRepo, &fakeHasher{}, issuer, time.Hour)
	return userRepo, issuer, svc
}

func TestSignUp(t *testing.T) {
	t.Run("creates a student account", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		user, err := svc.SignUp(context.Background(), "Ana@Example.EDU", "Ana", "password123", "org-1")
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		if user.Email != "ana@example.edu" {
			t.Errorf("Email = %q, want normalized lowercase", user.Email)
		}
		if user.Role != domain.RoleStudent {
			t.Errorf("Role = %q, want %q", user.Role, domain.RoleStudent)
		}
		if user.PasswordHash == "" || user.PasswordSalt == "" {
			t.Error("password hash and salt must be set")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		if _, err := svc.SignUp(context.Background(), "ana@example.edu", "Ana", "password123", "org-1"); err != nil {
			t.Fatalf("first SignUp() error = %v", err)
		}
		_, err := svc.SignUp(context.Background(), "ana@example.edu", "Ana Again", "password456", "org-1")
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("second SignUp() error = %v, want ErrDuplicateEmail", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		cases := []struct {
			name                        string
			email, uname, password, org string
		}{
			{"bad email", "not-an-email", "Ana", "password123", "org-1"},
			{"short password", "ana@example.edu", "Ana", "short", "org-1"},
			{"blank name", "ana@example.edu", "   ", "password123", "org-1"},
			{"unknown organization", "ana@example.edu", "Ana", "password123", "org-9"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.SignUp(context.Background(), tc.email, tc.uname, tc.password, tc.org)
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("SignUp() error = %v, want ErrInvalidInput", err)
				}
			})
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials issue a token with the user's identity", func(t *testing.T) {
		_, issuer, svc := newAuthFixture()
		created, err := svc.SignUp(context.Background(), "ana@example.edu", "Ana", "password123", "org-1")
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		token, user, err := svc.Login(context.Background(), "ana@example.edu", "password123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Error("token not returned")
		}
		if user.ID != created.ID {
			t.Errorf("user ID = %q, want %q", user.ID, created.ID)
		}
		if issuer.issued == nil || issuer.issued.OrganizationID != "org-1" {
			t.Errorf("issued identity = %+v, want organization org-1", issuer.issued)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		if _, err := svc.SignUp(context.Background(), "ana@example.edu", "Ana", "password123", "org-1"); err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		_, _, err := svc.Login(context.Background(), "ana@example.edu", "wrong-password")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("Login() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, _, err := svc.Login(context.Background(), "nobody@example.edu", "password123")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("Login() error = %v, want ErrForbidden", err)
		}
	})
}
