package user

import (
	"context"
	"time"
	c "yeonghwa/internal/core/domain/common"
)

type CreateUserInput struct {
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	Avatar       Avatar
}

type UpdateUserInput struct {
	ID ID

	DoUsernameUpdate bool
	Username         Username

	DoAvatarUpdate bool
	Avatar         Avatar

	DoPasswordHashUpdate bool
	PasswordHash         PasswordHash

	// An absent PasswordReset clears both reset fields.
	DoPasswordResetUpdate bool
	PasswordReset         c.Optional[PasswordReset]
}

type ConsumePasswordResetTokenInput struct {
	Token        PasswordResetToken
	ValidAt      time.Time
	PasswordHash PasswordHash
}

// UserRepository stores users. Implementations maintain CreatedAt and UpdatedAt
// and map unique violations on username/email to ErrUsernameAlreadyExists and
// ErrEmailAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken) (User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	AddToWishlist(ctx context.Context, id ID, movieID MovieID) (User, error)
	RemoveFromWishlist(ctx context.Context, id ID, movieID MovieID) (User, error)

	// ConsumePasswordResetToken sets a new password hash and clears the reset
	// fields in one atomic step, only if the token matches and has not expired
	// at input.ValidAt. Otherwise it returns ErrInvalidPasswordResetToken.
	ConsumePasswordResetToken(ctx context.Context, input ConsumePasswordResetTokenInput) (User, error)
}
