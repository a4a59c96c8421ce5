package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct {
	Token     user.PasswordResetToken
	ExpiresAt time.Time
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	sender         user.PasswordResetSender
	resetBaseURL   url.URL
	now            func() time.Time
}

// New builds the service. Reset links are resetBaseURL with the raw token
// appended as the last path segment.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	sender user.PasswordResetSender,
	resetBaseURL url.URL,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		sender:         sender,
		resetBaseURL:   resetBaseURL,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}

	// A new token replaces any previously issued one.
	reset := user.NewPasswordReset(token, s.now())
	_, err = s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:                    u.ID,
		DoPasswordResetUpdate: true,
		PasswordReset:         c.Some(reset),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The stored token is kept when sending fails; the next request overwrites it.
	resetURL := s.resetBaseURL.JoinPath(string(token))
	err = s.sender.SendPasswordResetURL(ctx, u.Email, *resetURL)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %w", user.ErrPasswordResetNotSent, err)
	}

	s.log.Info(
		ctx,
		"Password reset email has been sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", reset.ExpiresAt),
	)
	return Result{Token: token, ExpiresAt: reset.ExpiresAt}, nil
}
