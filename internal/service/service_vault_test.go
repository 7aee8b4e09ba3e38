package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

func TestVaultService_CreateVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().FindOrCreateVault(ctx, "user-1", "Notes").Return(models.Vault{ID: "v1", Name: "Notes", OwnerID: "user-1"}, nil)

	v, err := svc.CreateVault(ctx, "user-1", "  Notes ")
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID)

	_, err = svc.CreateVault(ctx, "user-1", "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateVault(ctx, "", "Notes")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestVaultService_GetVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().GetVault(ctx, "v1").Return(models.Vault{ID: "v1", OwnerID: "user-1"}, nil).Times(2)
	repo.EXPECT().GetVault(ctx, "nope").Return(models.Vault{}, store.ErrVaultNotFound)

	v, err := svc.GetVault(ctx, "user-1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID)

	_, err = svc.GetVault(ctx, "user-2", "v1")
	assert.ErrorIs(t, err, ErrVaultAccessDenied)

	_, err = svc.GetVault(ctx, "user-1", "nope")
	assert.ErrorIs(t, err, store.ErrVaultNotFound)
}

func TestAuthService_RoundTrip(t *testing.T) {
	svc := NewAuthService(config.App{
		TokenSignKey:  "secret",
		TokenIssuer:   "go-vault-sync",
		TokenDuration: time.Hour,
	}, logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = svc.CreateToken(ctx, "")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
