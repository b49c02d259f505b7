// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"
)

// Scoped resource acquisition for effectful pipelines.
//
// Release hooks ride the tree itself: every effect step inside the
// guarded subtree is wrapped so that cleanup fires on the subtree's
// terminal node, on a failed step, and on cancellation observed at a
// step boundary. A driver that stops pulling a suspended subtree is
// outside any hook's reach; that exit path belongs to the driver.

// Bracket acquires a resource, builds the guarded subtree with use, and
// guarantees release on completion, failure, or observed cancellation.
// Acquisition itself observes cancellation: a cancelled context fails
// the acquire step without acquiring.
func Bracket[UQ, UR, DQ, DR, S, R any](
	acquire func(ctx context.Context) (S, error),
	release func(S),
	use func(S) Proxy[UQ, UR, DQ, DR, R],
) Proxy[UQ, UR, DQ, DR, R] {
	return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
		if err := ctx.Err(); err != nil {
			var zero Proxy[UQ, UR, DQ, DR, R]
			return zero, err
		}
		s, err := acquire(ctx)
		if err != nil {
			var zero Proxy[UQ, UR, DQ, DR, R]
			return zero, err
		}
		return finalize(use(s), func() { release(s) }), nil
	})
}

// OnFailure runs cleanup only when the subtree fails or observes
// cancellation; a normal completion skips it.
func OnFailure[UQ, UR, DQ, DR, R any](
	p Proxy[UQ, UR, DQ, DR, R],
	cleanup func(),
) Proxy[UQ, UR, DQ, DR, R] {
	return guard(p, cleanup, false)
}

// finalize arranges fin to run exactly once when the subtree reaches
// its terminal node or a step fails.
func finalize[UQ, UR, DQ, DR, R any](p Proxy[UQ, UR, DQ, DR, R], fin func()) Proxy[UQ, UR, DQ, DR, R] {
	return guard(p, fin, true)
}

// guard walks the subtree wrapping continuations and steps.
// onSuccess selects bracket semantics (fin on every terminal path) over
// failure-only semantics.
func guard[UQ, UR, DQ, DR, R any](p Proxy[UQ, UR, DQ, DR, R], fin func(), onSuccess bool) Proxy[UQ, UR, DQ, DR, R] {
	switch p.tag {
	case tagRequest:
		k := p.onUp
		return requestWith(p.request, func(v UR) Proxy[UQ, UR, DQ, DR, R] {
			return guard(k(v), fin, onSuccess)
		})
	case tagRespond:
		k := p.onDown
		return respondWith(p.respond, func(v DQ) Proxy[UQ, UR, DQ, DR, R] {
			return guard(k(v), fin, onSuccess)
		})
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
			if err := ctx.Err(); err != nil {
				fin()
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			next, err := step(ctx)
			if err != nil {
				fin()
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			return guard(next, fin, onSuccess), nil
		})
	case tagPure:
		if onSuccess {
			fin()
		}
		return p
	}
	panic("pipes: corrupt proxy tag")
}
