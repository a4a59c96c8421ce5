package user

import (
	"fmt"
	"time"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
)

type ID string

type Username string

type Avatar string

type MovieID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

type User struct {
	ID            ID
	Username      Username
	Email         c.Email
	PasswordHash  PasswordHash
	Avatar        Avatar
	Wishlist      []MovieID
	PasswordReset c.Optional[PasswordReset]
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) Validate() error {
	if u.ID == "" {
		return e.NewInvalidStateError("user id is not set")
	}
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %s", u.ID))
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %s", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	return nil
}

func (u *User) HasInWishlist(movieID MovieID) bool {
	for _, id := range u.Wishlist {
		if id == movieID {
			return true
		}
	}
	return false
}
