// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"
)

// Monad operations for proxies.
//
// Minimal definition: Pure (unit) and Bind are necessary and sufficient.
// Map and Then are derived operations; Map is kept as a direct recursion
// to avoid intermediate Pure nodes.

// Bind sequences two proxies (monadic bind).
// It recurses through Request/Respond continuations and effect steps of
// m, then continues with f applied to m's terminal result. A failed
// effect step propagates before f is ever consulted.
func Bind[UQ, UR, DQ, DR, A, B any](
	m Proxy[UQ, UR, DQ, DR, A],
	f func(A) Proxy[UQ, UR, DQ, DR, B],
) Proxy[UQ, UR, DQ, DR, B] {
	switch m.tag {
	case tagRequest:
		k := m.onUp
		return requestWith(m.request, func(v UR) Proxy[UQ, UR, DQ, DR, B] {
			return Bind(k(v), f)
		})
	case tagRespond:
		k := m.onDown
		return respondWith(m.respond, func(v DQ) Proxy[UQ, UR, DQ, DR, B] {
			return Bind(k(v), f)
		})
	case tagEffect:
		step := m.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, B], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, DQ, DR, B]
				return zero, err
			}
			return Bind(next, f), nil
		})
	case tagPure:
		return f(m.result)
	}
	panic("pipes: corrupt proxy tag")
}

// Map applies a pure function to the terminal result of a proxy.
//
// Allocation note: Map is equivalent to Bind(m, compose(Pure, f)) but
// avoids the intermediate Pure node, making it the preferred choice
// when the transformation is pure (does not produce effects or ports).
func Map[UQ, UR, DQ, DR, A, B any](
	m Proxy[UQ, UR, DQ, DR, A],
	f func(A) B,
) Proxy[UQ, UR, DQ, DR, B] {
	switch m.tag {
	case tagRequest:
		k := m.onUp
		return requestWith(m.request, func(v UR) Proxy[UQ, UR, DQ, DR, B] {
			return Map(k(v), f)
		})
	case tagRespond:
		k := m.onDown
		return respondWith(m.respond, func(v DQ) Proxy[UQ, UR, DQ, DR, B] {
			return Map(k(v), f)
		})
	case tagEffect:
		step := m.step
		return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, B], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[UQ, UR, DQ, DR, B]
				return zero, err
			}
			return Map(next, f), nil
		})
	case tagPure:
		return pureWith[UQ, UR, DQ, DR](f(m.result))
	}
	panic("pipes: corrupt proxy tag")
}

// Then sequences two proxies, discarding the first result.
// The second argument is evaluated strictly; use Bind with a closure
// when the continuation must be built lazily (see [Repeat]).
func Then[UQ, UR, DQ, DR, A, B any](
	m Proxy[UQ, UR, DQ, DR, A],
	n Proxy[UQ, UR, DQ, DR, B],
) Proxy[UQ, UR, DQ, DR, B] {
	return Bind(m, func(_ A) Proxy[UQ, UR, DQ, DR, B] {
		return n
	})
}
