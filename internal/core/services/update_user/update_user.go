package updateuser

import (
	"context"
	"errors"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

// Input follows the falsy-skip convention: an empty Username or Avatar means
// the field was not supplied and is left untouched, so neither can be cleared.
type Input struct {
	UserID   user.ID
	Username user.Username
	Avatar   user.Avatar
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updateInput := user.UpdateUserInput{
		ID:               input.UserID,
		DoUsernameUpdate: input.Username != "",
		Username:         input.Username,
		DoAvatarUpdate:   input.Avatar != "",
		Avatar:           input.Avatar,
	}

	var updatedUser user.User
	if updateInput.DoUsernameUpdate || updateInput.DoAvatarUpdate {
		updatedUser, err = s.userRepository.Update(ctx, updateInput)
	} else {
		updatedUser, err = s.userRepository.GetByID(ctx, input.UserID)
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrUserAlreadyExists) {
		s.log.Info(
			ctx,
			"User has not been updated.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("userID", updatedUser.ID),
		logging.Entry("usernameUpdated", updateInput.DoUsernameUpdate),
		logging.Entry("avatarUpdated", updateInput.DoAvatarUpdate),
	)
	result.User = updatedUser
	return result, nil
}
