package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrgID = "44444444-4444-4444-4444-444444444444"

type stubAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthService) SignUp(ctx context.Context, email, name, password, organizationID string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func TestAuthController_SignUp(t *testing.T) {
	validBody := `{
		"email": "ana@example.edu",
		"name": "Ana",
		"password": "password123",
		"organization_id": "` + testOrgID + `"
	}`

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"success", validBody, nil, http.StatusCreated, ""},
		{"duplicate email", validBody, domain.ErrDuplicateEmail, http.StatusConflict, helpers.ErrCodeDuplicate},
		{"weak password", validBody, domain.ErrInvalidInput, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"missing email", `{"name": "Ana", "password": "password123", "organization_id": "` + testOrgID + `"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"bad organization id", `{"email": "a@b.co", "name": "Ana", "password": "password123", "organization_id": "nope"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				user: &domain.User{ID: testUserID, Email: "ana@example.edu", Name: "Ana", Role: domain.RoleStudent},
				err:  tt.serviceErr,
			}
			ctrl := NewAuthController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				envelope := decodeEnvelope(t, rr)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success returns token and user", func(t *testing.T) {
		svc := &stubAuthService{
			token: "token-abc",
			user:  &domain.User{ID: testUserID, Email: "ana@example.edu"},
		}
		ctrl := NewAuthController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email": "ana@example.edu", "password": "password123"}`))
		rr := httptest.NewRecorder()

		ctrl.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "token-abc", data["token"])
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &stubAuthService{err: domain.ErrForbidden})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email": "ana@example.edu", "password": "wrong"}`))
		rr := httptest.NewRecorder()

		ctrl.Login(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &stubAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email": "ana@example.edu"}`))
		rr := httptest.NewRecorder()

		ctrl.Login(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
