package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.False(t, IsStaffContext(context.Background()))

	id := uuid.New()
	ctx := SetUserContext(context.Background(), id, "customer")
	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.False(t, IsStaffContext(ctx))

	assert.True(t, IsStaffContext(SetUserContext(ctx, id, "staff")))
}
