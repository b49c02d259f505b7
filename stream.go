// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"

	"code.hybscloud.com/kont"
)

// Polarity restrictions of [Proxy]. Each alias fixes the unused ports
// at construction: a Producer cannot be built around a Request because
// no [None] value exists to request with, and likewise for the rest.

// Producer emits values of type B downstream and never requests.
type Producer[B, R any] = Proxy[None, None, struct{}, B, R]

// Consumer receives values of type A from upstream and never responds.
type Consumer[A, R any] = Proxy[struct{}, A, None, None, R]

// Pipe receives A from upstream and emits B downstream.
type Pipe[A, B, R any] = Proxy[struct{}, A, struct{}, B, R]

// Effect is a closed computation with no open ports.
type Effect[R any] = Proxy[None, None, None, None, R]

// Await receives the next value from upstream: a unit Request that
// suspends until upstream answers. The downstream ports stay free so
// Await composes inside any pipe body.
func Await[A, DQ, DR any]() Proxy[struct{}, A, DQ, DR, A] {
	return Request[struct{}, A, DQ, DR](struct{}{})
}

// Yield emits v downstream and suspends until downstream is ready to
// receive again. The upstream ports stay free so Yield composes inside
// any pipe body.
func Yield[B, UQ, UR any](v B) Proxy[UQ, UR, struct{}, B, struct{}] {
	return Respond[UQ, UR, struct{}, B](v)
}

// Each produces the given values in order, then completes.
func Each[B any](values ...B) Producer[B, struct{}] {
	if len(values) == 0 {
		return pureWith[None, None, struct{}, B](struct{}{})
	}
	rest := values[1:]
	return respondWith[None, None, struct{}, B, struct{}](values[0], func(struct{}) Producer[B, struct{}] {
		return Each(rest...)
	})
}

// Loop runs a recursive proxy computation.
// step returns Left(nextState) to continue or Right(result) to finish.
// State is threaded through the recursion, never captured in a cell, so
// concurrent instances started from the same arguments are independent.
func Loop[S, A, UQ, UR, DQ, DR any](
	initial S,
	step func(S) Proxy[UQ, UR, DQ, DR, kont.Either[S, A]],
) Proxy[UQ, UR, DQ, DR, A] {
	return Bind(step(initial), func(e kont.Either[S, A]) Proxy[UQ, UR, DQ, DR, A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return pureWith[UQ, UR, DQ, DR](right)
	})
}

// Repeat re-runs p unboundedly, discarding its results.
// The iteration boundary is an effect step that observes the ambient
// context, so a repeated pipeline terminates only through cancellation
// or a failure raised inside p.
func Repeat[UQ, UR, DQ, DR, A, R any](p Proxy[UQ, UR, DQ, DR, A]) Proxy[UQ, UR, DQ, DR, R] {
	return Bind(p, func(_ A) Proxy[UQ, UR, DQ, DR, R] {
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
			if err := ctx.Err(); err != nil {
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			return Repeat[UQ, UR, DQ, DR, A, R](p), nil
		})
	})
}
