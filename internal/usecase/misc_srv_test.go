package usecase

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/notification"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewSettingsService(f.repo, fixedClock(time.Date(2025, 5, 30, 10, 0, 0, 0, nairobi)), f.log)

	public, err := svc.GetSettings(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "09:00", public.OpeningTime.String())
	assert.Nil(t, public.AdminNotificationEnabled)

	staff, err := svc.GetSettings(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, staff.AdminNotificationEnabled)
	assert.True(t, *staff.AdminNotificationEnabled)

	_, err = svc.UpdateSettings(ctx, &request.UpdateSettingsRequest{ClosingTime: strPtr("08:00")})
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "closing_time")
	assert.Equal(t, entity.DefaultClosingTime, f.settings.row.ClosingTime)

	off := false
	updated, err := svc.UpdateSettings(ctx, &request.UpdateSettingsRequest{
		SalonName:                strPtr("Glow"),
		OpeningTime:              strPtr("08:30"),
		AdminNotificationEnabled: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "Glow", updated.SalonName)
	assert.Equal(t, entity.TimeOfDay{Hour: 8, Minute: 30}, f.settings.row.OpeningTime)
	assert.False(t, f.settings.row.AdminNotificationEnabled)
}

func TestContactService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewContactService(f.repo, f.notifier, "owner@salon.test", fixedClock(time.Date(2025, 5, 30, 10, 0, 0, 0, nairobi)), f.log)

	msg, err := svc.CreateMessage(ctx, &request.CreateContactRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Opening hours",
		Message: "Are you open on Sunday?",
	})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, notification.KindAdminContact, f.notifier.messages[0].Kind)
	assert.Equal(t, "owner@salon.test", f.notifier.messages[0].To)

	read, err := svc.MarkRead(ctx, &request.IDsRequest{IDs: []string{msg.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), read.Updated)

	replied := true
	got, err := svc.UpdateMessage(ctx, msg.ID, &request.UpdateContactRequest{Replied: &replied})
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	assert.True(t, got.Replied)

	_, err = svc.CreateMessage(ctx, &request.CreateContactRequest{Name: "Jane"})
	assert.Equal(t, KindValidation, KindOf(err))

	require.NoError(t, svc.DeleteMessage(ctx, msg.ID))
	_, err = svc.GetMessage(ctx, msg.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	svc := NewAuthService(f.repo, tokens, fixedClock(time.Now()), f.log)
	client := ClientInfo{UserAgent: "go-test", IPAddress: "127.0.0.1"}

	signup, err := svc.Signup(ctx, &request.SignupRequest{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}, client)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, signup.User.Role)
	assert.NotEmpty(t, signup.Tokens.Access)
	assert.Len(t, f.sessions.rows, 1)

	_, err = svc.Signup(ctx, &request.SignupRequest{
		Username:        "jane",
		Email:           "other@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}, client)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Signup(ctx, &request.SignupRequest{
		Username:        "joe",
		Email:           "joe@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret2",
	}, client)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "jane", Password: "wrong"}, client)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	login, err := svc.Login(ctx, &request.LoginRequest{Username: "jane@example.com", Password: "secret1"}, client)
	require.NoError(t, err)

	claims, err := tokens.Parse(login.Tokens.Access, utils.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, claims.UserID)

	rotated, err := svc.Refresh(ctx, &request.RefreshRequest{Refresh: login.Tokens.Refresh}, client)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.Refresh, rotated.Refresh)

	_, err = svc.Refresh(ctx, &request.RefreshRequest{Refresh: login.Tokens.Refresh}, client)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	require.NoError(t, svc.Logout(ctx, &request.LogoutRequest{Refresh: rotated.Refresh}))
	assert.Equal(t, KindUnauthorized, KindOf(svc.Logout(ctx, &request.LogoutRequest{Refresh: rotated.Refresh})))
	assert.Equal(t, KindUnauthorized, KindOf(svc.Logout(ctx, &request.LogoutRequest{Refresh: login.Tokens.Access})))

	phone, err := svc.Login(ctx, &request.LoginRequest{Username: "jane", Password: "secret1"}, client)
	require.NoError(t, err)
	laptop, err := svc.Login(ctx, &request.LoginRequest{Username: "jane", Password: "secret1"}, client)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, &request.LogoutRequest{Refresh: phone.Tokens.Refresh, All: true}))
	_, err = svc.Refresh(ctx, &request.RefreshRequest{Refresh: laptop.Tokens.Refresh}, client)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	first := "Jane"
	profile, err := svc.UpdateProfile(ctx, uuid.MustParse(login.User.ID), &request.UpdateProfileRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.FirstName)
}

// staleSessions serves lookups from a snapshot taken before a concurrent
// refresh, so only the rotation itself sees the token was already used.
type staleSessions struct {
	*fakeSessions
	snapshot map[uuid.UUID]entity.Session
}

func (s staleSessions) FindActive(ctx context.Context, jti uuid.UUID) (*entity.Session, error) {
	session, ok := s.snapshot[jti]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func TestAuthService_RefreshRaceRotatesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	svc := NewAuthService(f.repo, tokens, fixedClock(time.Now()), f.log)
	client := ClientInfo{UserAgent: "go-test"}

	signup, err := svc.Signup(ctx, &request.SignupRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}, client)
	require.NoError(t, err)

	snapshot := make(map[uuid.UUID]entity.Session, len(f.sessions.rows))
	for jti, s := range f.sessions.rows {
		snapshot[jti] = s
	}
	f.repo.Session = staleSessions{fakeSessions: f.sessions, snapshot: snapshot}

	_, err = svc.Refresh(ctx, &request.RefreshRequest{Refresh: signup.Tokens.Refresh}, client)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, &request.RefreshRequest{Refresh: signup.Tokens.Refresh}, client)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Len(t, f.sessions.rows, 2)
}
