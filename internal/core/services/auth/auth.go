package auth

import (
	"context"
	"errors"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	log            logging.Logger
	tokenVerifier  user.SessionTokenVerifier
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

// WithAuthentication resolves the bearer session token stored in the context
// into a user and passes it to the inner service. Session tokens are stateless,
// so only their signature is checked before the user is loaded.
func WithAuthentication[T Input, S any](
	log logging.Logger,
	tokenVerifier user.SessionTokenVerifier,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenVerifier == nil {
		panic(e.NewNilArgumentError("tokenVerifier"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		log:            log,
		tokenVerifier:  tokenVerifier,
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrInvalidSessionToken
	}
	userID, err := s.tokenVerifier.VerifyToken(authToken)
	if err != nil {
		s.log.Info(ctx, "Session token rejected.", logging.Entry("err", err))
		return result, user.ErrInvalidSessionToken
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Session token refers to unknown user.", logging.Entry("userID", userID))
		return result, user.ErrInvalidSessionToken
	}
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

// WithAuthToken returns a copy of ctx carrying the bearer session token.
func WithAuthToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}
