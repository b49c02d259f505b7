// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"
)

// Reflect swaps the upstream and downstream roles throughout a proxy:
// every Request becomes a Respond carrying the same value, every
// Respond becomes a Request, and effect steps and Pure are untouched.
//
// Reflect is an involution (Reflect(Reflect(p)) behaves as p) and a
// duality functor: it sends [Request] to [Respond], [Pull] to [Push],
// and turns request-category composition into respond-category
// composition and vice versa.
func Reflect[UQ, UR, DQ, DR, R any](p Proxy[UQ, UR, DQ, DR, R]) Proxy[DR, DQ, UR, UQ, R] {
	switch p.tag {
	case tagRequest:
		k := p.onUp
		return respondWith(p.request, func(v UR) Proxy[DR, DQ, UR, UQ, R] {
			return Reflect(k(v))
		})
	case tagRespond:
		k := p.onDown
		return requestWith(p.respond, func(v DQ) Proxy[DR, DQ, UR, UQ, R] {
			return Reflect(k(v))
		})
	case tagEffect:
		step := p.step
		return effectWith(func(ctx context.Context) (Proxy[DR, DQ, UR, UQ, R], error) {
			next, err := step(ctx)
			if err != nil {
				var zero Proxy[DR, DQ, UR, UQ, R]
				return zero, err
			}
			return Reflect(next), nil
		})
	case tagPure:
		return pureWith[DR, DQ, UR, UQ](p.result)
	}
	panic("pipes: corrupt proxy tag")
}
