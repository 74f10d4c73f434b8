package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(ctx context.Context, user *entity.User) error { return nil }
func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}
func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) Update(ctx context.Context, user *entity.User) error { return nil }

func testTokens() *utils.TokenManager {
	return utils.NewTokenManager(utils.JWTConfig{Secret: "test", AccessTTL: time.Hour, RefreshTTL: time.Hour})
}

func bearer(t *testing.T, tokens *utils.TokenManager, id uuid.UUID, role string) string {
	t.Helper()
	issued, err := tokens.Issue(id, role, utils.AccessToken)
	assert.NoError(t, err)
	return "Bearer " + issued.Token
}

func TestAuthenticate(t *testing.T) {
	tokens := testTokens()
	var seen uuid.UUID
	handler := Authenticate(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetUserIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id := uuid.New()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, tokens, id, "customer"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, seen)
}

func TestOptionalAuth(t *testing.T) {
	tokens := testTokens()
	var staff bool
	handler := OptionalAuth(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staff = utils.IsStaffContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, staff)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, tokens, uuid.New(), "staff"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.True(t, staff)
}

func TestStaff(t *testing.T) {
	tokens := testTokens()
	staffID, customerID, inactiveID := uuid.New(), uuid.New(), uuid.New()
	users := &stubUsers{users: map[uuid.UUID]*entity.User{
		staffID:    {Base: entity.Base{ID: staffID}, Role: entity.RoleStaff, IsActive: true},
		customerID: {Base: entity.Base{ID: customerID}, Role: entity.RoleCustomer, IsActive: true},
		inactiveID: {Base: entity.Base{ID: inactiveID}, Role: entity.RoleStaff, IsActive: false},
	}}

	handler := Authenticate(tokens, zap.NewNop())(Staff(users, zap.NewNop())(okHandler()))

	cases := []struct {
		id   uuid.UUID
		role string
		want int
	}{
		{staffID, "staff", http.StatusCreated},
		{customerID, "customer", http.StatusForbidden},
		{customerID, "staff", http.StatusForbidden},
		{inactiveID, "staff", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", bearer(t, tokens, tc.id, tc.role))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code)
	}
}
