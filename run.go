// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"

	"code.hybscloud.com/kont"
)

// Run interprets a closed effect to completion on the calling
// goroutine. Every step receives the ambient context; steps built by
// this package ([Lift], [Repeat], [Queue.Source]) observe cancellation
// at their boundary, so a cancelled pipeline surfaces ctx.Err() rather
// than hanging. A failed step returns its error with the remainder of
// the tree abandoned; cleanup registered through [Bracket] has already
// run by the time the error reaches Run.
//
// A closed tree cannot suspend on a port: both port pairs are [None],
// so the Request/Respond arms eliminate through absurd.
func Run[R any](ctx context.Context, e Effect[R]) (R, error) {
	for {
		switch e.tag {
		case tagPure:
			return e.result, nil
		case tagEffect:
			next, err := e.step(ctx)
			if err != nil {
				var zero R
				return zero, err
			}
			e = next
		case tagRequest:
			return absurd[R](e.request), nil
		case tagRespond:
			return absurd[R](e.respond), nil
		default:
			panic("pipes: corrupt proxy tag")
		}
	}
}

// RunEither interprets a closed effect, folding the outcome into
// kont.Either — Right on success, Left on failure or cancellation.
func RunEither[R any](ctx context.Context, e Effect[R]) kont.Either[error, R] {
	r, err := Run(ctx, e)
	if err != nil {
		return kont.Left[error, R](err)
	}
	return kont.Right[error](r)
}

// Collect drains a producer to completion, returning the emitted values
// in order along with the producer's result. On failure or cancellation
// the values emitted before the error remain in the returned slice.
func Collect[B, R any](ctx context.Context, p Producer[B, R]) ([]B, R, error) {
	var out []B
	eff := For(p, func(b B) Effect[struct{}] {
		return Lift[None, None, None, None](func(context.Context) (struct{}, error) {
			out = append(out, b)
			return struct{}{}, nil
		})
	})
	r, err := Run(ctx, eff)
	return out, r, err
}

// Drain runs a producer to completion, discarding emitted values and
// returning only its result.
func Drain[B, R any](ctx context.Context, p Producer[B, R]) (R, error) {
	eff := For(p, func(B) Effect[struct{}] {
		return pureWith[None, None, None, None](struct{}{})
	})
	return Run(ctx, eff)
}
