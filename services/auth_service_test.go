package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/repositories/memstore"
	"github.com/fitdiary/backend/utils"
)

func TestAuthServiceLogin(t *testing.T) {
	codec := utils.NewTokenCodec([]byte("test-secret"), time.Hour)
	svc := NewAuthService(codec)

	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		user, err := svc.Register(ctx, r.Users, RegisterInput{Email: "Jane@Example.com", Name: "Jane", Password: "hunter22"})
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", user.Password)

		token, claims, err := svc.Login(ctx, r.Users, LoginInput{Email: "jane@example.com", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)

		verified, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, utils.PublicUser{ID: user.ID, Email: "jane@example.com", Name: "Jane"}, verified.User())
	})
}

func TestAuthServiceLoginFailures(t *testing.T) {
	svc := NewAuthService(utils.NewTokenCodec([]byte("test-secret"), time.Hour))

	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		_, err := svc.Register(ctx, r.Users, RegisterInput{Email: "jane@example.com", Name: "Jane", Password: "hunter22"})
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, r.Users, LoginInput{Email: "jane@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, r.Users, LoginInput{Email: "nobody@example.com", Password: "hunter22"})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

		_, err = svc.Register(ctx, r.Users, RegisterInput{Email: "JANE@example.com", Name: "Other", Password: "hunter22"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})
}
