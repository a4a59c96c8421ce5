package togglewishlist

import (
	"context"
	"errors"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

type Action string

const (
	Added   Action = "added"
	Removed Action = "removed"
)

type Input struct {
	UserID  user.ID
	MovieID user.MovieID
}

type Result struct {
	Action Action
	User   user.User
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

// Run removes the movie from the wishlist if it is already there and adds it
// otherwise. The read and the write are separate storage calls, so concurrent
// toggles of the same user may lose an update.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Wishlist owner does not exist.", logging.Entry("userID", input.UserID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for wishlist update.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if u.HasInWishlist(input.MovieID) {
		result.Action = Removed
		result.User, err = s.userRepository.RemoveFromWishlist(ctx, u.ID, input.MovieID)
	} else {
		result.Action = Added
		result.User, err = s.userRepository.AddToWishlist(ctx, u.ID, input.MovieID)
	}
	if errors.Is(err, context.Canceled) {
		return Result{}, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update wishlist.",
			logging.Entry("userID", u.ID),
			logging.Entry("movieID", input.MovieID),
			logging.Entry("action", result.Action),
			logging.Entry("err", err),
		)
		return Result{}, err
	}

	s.log.Info(
		ctx,
		"Wishlist updated.",
		logging.Entry("userID", u.ID),
		logging.Entry("movieID", input.MovieID),
		logging.Entry("action", result.Action),
	)
	return result, nil
}
