package tests

import (
	"context"
	"testing"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/config"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestAuthLoginAndRefresh(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "meera",
		Name:     "Meera Nair",
		Password: "correct-horse",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", created.Role)
	assert.True(t, created.Active)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "meera", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "meera", resp.User.Username)

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "meera", refreshed.User.Username)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "meera",
		Name:     "Meera Nair",
		Password: "correct-horse",
		Role:     "staff",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "meera", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestAuthLogin_DeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "meera",
		Name:     "Meera Nair",
		Password: "correct-horse",
		Role:     "admin",
	})
	require.NoError(t, err)

	for id := range repo.users {
		require.NoError(t, svc.DeactivateUser(ctx, id))
	}
	_ = created

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "meera", Password: "correct-horse"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestAuthRefresh_GarbageToken(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestAuthUpdateUser(t *testing.T) {
	svc, repo := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "meera",
		Name:     "Meera Nair",
		Password: "correct-horse",
		Role:     "staff",
	})
	require.NoError(t, err)

	for uid := range repo.users {
		resp, err := svc.UpdateUser(ctx, uid, dto.UpdateUserRequest{Role: "admin", Password: "new-password-1"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	}

	// Old password no longer works, the new one does.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "meera", Password: "correct-horse"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "meera", Password: "new-password-1"})
	assert.NoError(t, err)
}
