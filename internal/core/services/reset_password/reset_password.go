package resetpassword

import (
	"context"
	"errors"
	"time"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, user.ErrInvalidPasswordResetToken
	}
	u, err := s.userRepository.GetByPasswordResetToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset token does not match any user.")
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by password reset token.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	if u.PasswordReset.Value.IsExpiredAt(now) {
		s.clearExpiredToken(ctx, u)
		return result, user.ErrInvalidPasswordResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if errors.Is(err, user.ErrInvalidPassword) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("userID", u.ID), logging.Entry("err", err))
		return result, err
	}

	updatedUser, err := s.userRepository.ConsumePasswordResetToken(ctx, user.ConsumePasswordResetTokenInput{
		Token:        input.Token,
		ValidAt:      now,
		PasswordHash: newPasswordHash,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token was consumed concurrently.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return Result{User: updatedUser}, nil
}

func (s *service) clearExpiredToken(ctx context.Context, u user.User) {
	_, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:                    u.ID,
		DoPasswordResetUpdate: true,
		PasswordReset:         c.None[user.PasswordReset](),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error(
			ctx,
			"Could not clear expired password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return
	}
	s.log.Info(
		ctx,
		"Expired password reset token has been cleared.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiredAt", u.PasswordReset.Value.ExpiresAt),
	)
}
