package passwordhasher

import (
	"fmt"
	"strings"
	"testing"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, cost: 5, password: "test"},
		{ix: 2, cost: 4, password: " "},
		{ix: 3, cost: 7, password: "password password"},
		{ix: 4, cost: 10, password: "   test   "},
		{ix: 5, cost: 4, password: "비밀번호"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost, logging.NewFakeLogger())
			hash, err := h.HashPassword(user.RawPassword(c.password))
			require.Nil(t, err)
			require.NotEmpty(t, hash)
			assert.NotEqual(t, user.PasswordHash(c.password), hash)
			assert.True(t, h.ValidatePassword(user.RawPassword(c.password), hash))
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{ix: 1, cost: 5, passwordToHash: "test", passwordToCheck: "test "},
		{ix: 2, cost: 5, passwordToHash: "test", passwordToCheck: "Test"},
		{ix: 3, cost: 5, passwordToHash: " ", passwordToCheck: ""},
		{ix: 4, cost: 8, passwordToHash: "password password", passwordToCheck: " password password"},
		{ix: 5, cost: 4, passwordToHash: "   test   ", passwordToCheck: "   tost   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost, logging.NewFakeLogger())
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			require.Nil(t, err)
			require.NotEmpty(t, hash)
			assert.False(t, h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcrypt(4, logging.NewFakeLogger())

	first, err := h.HashPassword("secret123")
	require.Nil(t, err)
	second, err := h.HashPassword("secret123")
	require.Nil(t, err)

	assert.NotEqual(t, first, second)
}

func TestEmptyPassword(t *testing.T) {
	h := NewBcrypt(4, logging.NewFakeLogger())

	_, err := h.HashPassword("")

	assert.ErrorIs(t, err, user.ErrEmptyPassword)
}

func TestPasswordTooLong(t *testing.T) {
	h := NewBcrypt(4, logging.NewFakeLogger())

	_, err := h.HashPassword(user.RawPassword(strings.Repeat("가", 25)))

	assert.ErrorIs(t, err, user.ErrPasswordTooLong)
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}

func TestExistingBcryptjsHash(t *testing.T) {
	// $2a$ prefix as written by bcryptjs, cost 10.
	const hash = user.PasswordHash("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	log := logging.NewFakeLogger()
	h := NewBcrypt(DefaultCost, log)

	assert.False(t, h.ValidatePassword("wrong", hash))
	assert.Equal(t, 0, log.CountByLevel(logging.WARNING))
}

func TestMalformedHash(t *testing.T) {
	log := logging.NewFakeLogger()
	h := NewBcrypt(4, log)

	assert.False(t, h.ValidatePassword("secret123", "not-a-bcrypt-hash"))
	assert.Equal(t, 1, log.CountByLevel(logging.WARNING))
}

func TestInvalidCostFallsBackToDefault(t *testing.T) {
	h := NewBcrypt(0, logging.NewFakeLogger())

	assert.Equal(t, DefaultCost, h.cost)
}
