package signupwithemail

import (
	"context"
	"errors"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

type Input struct {
	Username user.Username
	Email    c.Email
	Password user.RawPassword
	Avatar   user.Avatar
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
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
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	_, err = s.userRepository.GetByEmail(ctx, input.Email)
	if err == nil {
		s.log.Info(ctx, "User with the email already exists.", logging.Entry("email", input.Email))
		return result, user.ErrEmailAlreadyExists
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if !errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Error(
			ctx,
			"Could not check whether email is already registered.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if errors.Is(err, user.ErrInvalidPassword) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdUser, err := s.userRepository.Create(ctx, user.CreateUserInput{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Avatar:       input.Avatar,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the username or email already exists.",
			logging.Entry("username", input.Username),
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("username", input.Username),
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
