package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivora/trivora/internal/models"
	"github.com/trivora/trivora/internal/service"
)

func TestCredentialService_RegisterThenAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewCredentialService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ann", "ann@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "ann@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestCredentialService_RegisterConflict(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewCredentialService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann", "ann@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other ann", "ann@example.com", "different")
	assert.ErrorIs(t, err, service.ErrConflict)

	// The rejected registration must not create a record.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCredentialService_RegisterRejectsEmptyFields(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewCredentialService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "ann@example.com", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Register(ctx, "ann", "  ", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Register(ctx, "ann", "ann@example.com", "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCredentialService_AuthenticateFailures(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewCredentialService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann", "ann@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ann@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
