package services

import "context"

// Service is a single use case of the account backend.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
