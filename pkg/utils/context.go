package utils

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// identity is what the auth middleware learns from a verified access token.
type identity struct {
	userID uuid.UUID
	role   string
}

// SetUserContext attaches the caller's id and role to ctx.
func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{userID: userID, role: role})
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	if !ok || id.userID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.userID, true
}

// IsStaffContext reports whether the token presented carried the staff role.
// Routes that mutate state still re-check the account via middleware.Staff.
func IsStaffContext(ctx context.Context) bool {
	id, ok := ctx.Value(identityKey{}).(identity)
	return ok && id.role == "staff"
}
