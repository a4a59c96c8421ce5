package passwordhasher

import (
	"context"
	"errors"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

type Bcrypt struct {
	cost int
	log  logging.Logger
}

func NewBcrypt(cost int, log logging.Logger) *Bcrypt {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost, log: log}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	if password == "" {
		return hash, user.ErrEmptyPassword
	}
	if len(password) > user.MaxPasswordBytes {
		return hash, user.ErrPasswordTooLong
	}
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

// ValidatePassword reports whether password matches hash. A hash that is not
// a valid bcrypt hash never matches.
func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.log.Warning(
			context.Background(),
			"Stored password hash is malformed.",
			logging.Entry("err", err),
		)
	}
	return false
}
