package user

import (
	"context"
	"net/url"
	"time"
	c "yeonghwa/internal/core/domain/common"
)

// PasswordResetTokenTTL is how long an issued reset token stays usable.
const PasswordResetTokenTTL = time.Hour

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

func NewPasswordReset(token PasswordResetToken, issuedAt time.Time) PasswordReset {
	return PasswordReset{Token: token, ExpiresAt: issuedAt.Add(PasswordResetTokenTTL)}
}

// IsExpiredAt reports whether the token can no longer be used at the moment t.
func (r PasswordReset) IsExpiredAt(t time.Time) bool {
	return !t.Before(r.ExpiresAt)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

type PasswordResetSender interface {
	SendPasswordResetURL(ctx context.Context, to c.Email, resetURL url.URL) error
}
