package services

import (
	"context"

	"github.com/dmitrijs2005/docwatch/internal/client/eventloop"
)

// onLoop runs fn on the loop and returns its result.
func onLoop[T any](ctx context.Context, loop *eventloop.Loop, fn func() (T, error)) (T, error) {
	var (
		res T
		err error
	)
	if derr := loop.Do(ctx, func() { res, err = fn() }); derr != nil {
		var zero T
		return zero, derr
	}
	return res, err
}
