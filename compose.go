// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"
)

// Category composition operators.
//
// Four categories share the Proxy representation, each with its own
// composition and identity:
//
//   - respond category: composition [For], identity [Respond]
//   - request category: composition [Feed], identity [Request]
//   - pull category: composition [ComposePull], identity [Pull]
//   - push category: composition [ComposePush], identity [Push]
//
// Composition is associative within each category, the identities are
// two-sided, and [Reflect] maps each category onto its dual. The laws
// are pinned by the property tests in compose_test.go.

// For replaces each Respond in p with the proxy returned by f,
// feeding f's terminal result back into the respond continuation.
// This is the respond-category composition and the substitution form of
// an imperative loop over a stream's elements: emission order and the
// final result of p are preserved.
func For[UQ, UR, DQ, DR, NQ, NR, R any](
	p Proxy[UQ, UR, DQ, DR, R],
	f func(DR) Proxy[UQ, UR, NQ, NR, DQ],
) Proxy[UQ, UR, NQ, NR, R] {
	switch p.tag {
	case tagRequest:
		k := p.onUp
		return requestWith(p.request, func(v UR) Proxy[UQ, UR, NQ, NR, R] {
			return For(k(v), f)
		})
	case tagRespond:
		k := p.onDown
		return Bind(f(p.respond), func(reply DQ) Proxy[UQ, UR, NQ, NR, R] {
			return For(k(reply), f)
		})
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, NQ, NR, R], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, NQ, NR, R]
				return zero, err
			}
			return For(next, f), nil
		})
	case tagPure:
		return pureWith[UQ, UR, NQ, NR](p.result)
	}
	panic("pipes: corrupt proxy tag")
}

// Feed replaces each Request in p with the proxy returned by f,
// feeding f's terminal result back into the request continuation.
// This is the request-category composition, dual of [For].
func Feed[UQ, UR, MQ, MR, DQ, DR, R any](
	f func(MQ) Proxy[UQ, UR, DQ, DR, MR],
	p Proxy[MQ, MR, DQ, DR, R],
) Proxy[UQ, UR, DQ, DR, R] {
	switch p.tag {
	case tagRequest:
		k := p.onUp
		return Bind(f(p.request), func(reply MR) Proxy[UQ, UR, DQ, DR, R] {
			return Feed(f, k(reply))
		})
	case tagRespond:
		k := p.onDown
		return respondWith(p.respond, func(v DQ) Proxy[UQ, UR, DQ, DR, R] {
			return Feed(f, k(v))
		})
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			return Feed(f, next), nil
		})
	case tagPure:
		return pureWith[UQ, UR, DQ, DR](p.result)
	}
	panic("pipes: corrupt proxy tag")
}

// ComposePull glues f upstream of p in the pull category: p runs until
// it requests, the request seeds f, and f's responds answer p.
// Mutually recursive with [ComposePush]; [Pull] is the identity.
func ComposePull[UQ, UR, MQ, MR, DQ, DR, R any](
	f func(MQ) Proxy[UQ, UR, MQ, MR, R],
	p Proxy[MQ, MR, DQ, DR, R],
) Proxy[UQ, UR, DQ, DR, R] {
	switch p.tag {
	case tagRequest:
		return ComposePush(f(p.request), p.onUp)
	case tagRespond:
		k := p.onDown
		return respondWith(p.respond, func(v DQ) Proxy[UQ, UR, DQ, DR, R] {
			return ComposePull(f, k(v))
		})
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			return ComposePull(f, next), nil
		})
	case tagPure:
		return pureWith[UQ, UR, DQ, DR](p.result)
	}
	panic("pipes: corrupt proxy tag")
}

// ComposePush glues f downstream of p in the push category: p runs
// until it responds, the respond seeds f, and f's requests answer p.
// Mutually recursive with [ComposePull]; [Push] is the identity.
func ComposePush[UQ, UR, MQ, MR, DQ, DR, R any](
	p Proxy[UQ, UR, MQ, MR, R],
	f func(MR) Proxy[MQ, MR, DQ, DR, R],
) Proxy[UQ, UR, DQ, DR, R] {
	switch p.tag {
	case tagRequest:
		k := p.onUp
		return requestWith(p.request, func(v UR) Proxy[UQ, UR, DQ, DR, R] {
			return ComposePush(k(v), f)
		})
	case tagRespond:
		return ComposePull(p.onDown, f(p.respond))
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, DQ, DR, R]
				return zero, err
			}
			return ComposePush(next, f), nil
		})
	case tagPure:
		return pureWith[UQ, UR, DQ, DR](p.result)
	}
	panic("pipes: corrupt proxy tag")
}

// Pull is the identity of the pull category: request the seed upstream,
// respond the reply downstream, recurse on the next seed. It is the
// transparent transformation, echoing every received value unchanged.
func Pull[Q, A, R any](seed Q) Proxy[Q, A, Q, A, R] {
	return requestWith(seed, func(a A) Proxy[Q, A, Q, A, R] {
		return respondWith(a, func(q Q) Proxy[Q, A, Q, A, R] {
			return Pull[Q, A, R](q)
		})
	})
}

// Push is the identity of the push category, dual of [Pull]: respond
// the seed downstream, request the reply upstream, recurse.
func Push[Q, A, R any](seed A) Proxy[Q, A, Q, A, R] {
	return respondWith(seed, func(q Q) Proxy[Q, A, Q, A, R] {
		return requestWith(q, func(a A) Proxy[Q, A, Q, A, R] {
			return Push[Q, A, R](a)
		})
	})
}

// Connect glues two unidirectional stages along their shared port in
// the pull category. The aliases fix the shared inner ports to
// struct{}, so the one function covers every polarity pairing:
// Producer∘Pipe is a Producer, Pipe∘Pipe a Pipe, Pipe∘Consumer a
// Consumer, and Producer∘Consumer a closed Effect.
func Connect[UQ, UR, M, DQ, DR, R any](
	p Proxy[UQ, UR, struct{}, M, R],
	q Proxy[struct{}, M, DQ, DR, R],
) Proxy[UQ, UR, DQ, DR, R] {
	return ComposePull(func(struct{}) Proxy[UQ, UR, struct{}, M, R] {
		return p
	}, q)
}
