package auth_test

import (
	"context"
	"testing"
	"time"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services/auth"
	getuserbysessiontoken "yeonghwa/internal/core/services/get_user_by_session_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var NOW time.Time = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*user.FakeUserRepository, *user.FakeSessionTokenIssuer, user.User) {
	t.Helper()
	repo := user.NewFakeUserRepository(func() time.Time { return NOW })
	issuer := user.NewFakeSessionTokenIssuer()
	u, err := repo.Create(context.Background(), user.CreateUserInput{
		Username:     "ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
	})
	require.Nil(t, err)
	return repo, issuer, u
}

func TestWithAuthenticationSuccess(t *testing.T) {
	// Setup ---
	repo, issuer, u := setup(t)
	token, err := issuer.IssueToken(u.ID)
	require.Nil(t, err)
	service := auth.WithAuthentication(logging.NewFakeLogger(), issuer, repo, getuserbysessiontoken.New())
	ctx := auth.WithAuthToken(context.Background(), token)

	// Exercise ---
	result, err := service.Run(ctx, getuserbysessiontoken.Input{})

	// Verify ---
	require.Nil(t, err)
	assert.Equal(t, u, result.User)
}

func TestWithAuthenticationRejects(t *testing.T) {
	cases := []struct {
		id    string
		token func(u user.User) (user.SessionToken, bool)
	}{
		{
			id:    "no-token",
			token: func(u user.User) (user.SessionToken, bool) { return "", false },
		},
		{
			id:    "malformed-token",
			token: func(u user.User) (user.SessionToken, bool) { return "garbage", true },
		},
		{
			id:    "unknown-user",
			token: func(u user.User) (user.SessionToken, bool) { return "session-404", true },
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			repo, issuer, u := setup(t)
			log := logging.NewFakeLogger()
			service := auth.WithAuthentication(log, issuer, repo, getuserbysessiontoken.New())
			ctx := context.Background()
			if token, ok := testcase.token(u); ok {
				ctx = auth.WithAuthToken(ctx, token)
			}

			// Exercise ---
			_, err := service.Run(ctx, getuserbysessiontoken.Input{})

			// Verify ---
			assert.ErrorIs(t, err, user.ErrInvalidSessionToken)
		})
	}
}

func TestWithAuthenticationRepositoryError(t *testing.T) {
	repo, issuer, u := setup(t)
	token, err := issuer.IssueToken(u.ID)
	require.Nil(t, err)
	repo.ReturnError = true
	service := auth.WithAuthentication(logging.NewFakeLogger(), issuer, repo, getuserbysessiontoken.New())

	_, err = service.Run(auth.WithAuthToken(context.Background(), token), getuserbysessiontoken.Input{})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrInvalidSessionToken)
}

func TestWithAuthenticationPanicsOnNilArguments(t *testing.T) {
	repo, issuer, _ := setup(t)
	assert.Panics(t, func() {
		auth.WithAuthentication[getuserbysessiontoken.Input, getuserbysessiontoken.Result](
			nil, issuer, repo, getuserbysessiontoken.New(),
		)
	})
}
