package user

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrEmailAlreadyExists    = fmt.Errorf("email already exists: %w", ErrUserAlreadyExists)
	ErrUsernameAlreadyExists = fmt.Errorf("username already exists: %w", ErrUserAlreadyExists)

	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrInvalidSessionToken       = errors.New("invalid session token")
	ErrPasswordResetNotSent      = errors.New("password reset email could not be sent")

	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = fmt.Errorf("password must not be empty: %w", ErrInvalidPassword)
	ErrPasswordTooLong = fmt.Errorf("password must not be longer than %d bytes: %w", MaxPasswordBytes, ErrInvalidPassword)
)
