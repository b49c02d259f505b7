// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"
)

// tag discriminates the four Proxy variants.
// tagPure is zero so the zero Proxy is Pure of the zero result.
type tag uint8

const (
	tagPure tag = iota
	tagRequest
	tagRespond
	tagEffect
)

// Step is an opaque effectful computation producing the next tree node.
// A non-nil error short-circuits the remaining tree; the step must
// observe ctx and return its error when cancelled.
type Step[UQ, UR, DQ, DR, R any] func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error)

// Proxy is a bidirectional effectful stream transformer.
//
// Exactly one variant is active per node:
//
//   - Request: sends a UQ upstream, resumes with the UR reply
//   - Respond: sends a DR downstream, resumes with the DQ reply
//   - effect: runs a [Step] to obtain the next node
//   - Pure: terminal result of type R
//
// Continuations are referentially transparent functions of the received
// value; operators build new nodes and never mutate existing ones, so a
// Proxy may be inspected or replayed without synchronization.
type Proxy[UQ, UR, DQ, DR, R any] struct {
	tag     tag
	request UQ
	onUp    func(UR) Proxy[UQ, UR, DQ, DR, R]
	respond DR
	onDown  func(DQ) Proxy[UQ, UR, DQ, DR, R]
	step    Step[UQ, UR, DQ, DR, R]
	result  R
}

// None marks a port that is never exercised. No operator ever produces a
// None value; [absurd] is the eliminator for the ports it closes.
type None struct{}

// absurd converts an uninhabited port value into any type.
// By construction it is never reached; reaching it means a Proxy was
// built through a port its type promised closed.
func absurd[A any](None) A {
	panic("pipes: absurd: uninhabited port exercised")
}

// pureWith is the raw Pure constructor with all ports explicit.
// Named function usable as a continuation value, kont convention.
func pureWith[UQ, UR, DQ, DR, R any](r R) Proxy[UQ, UR, DQ, DR, R] {
	return Proxy[UQ, UR, DQ, DR, R]{tag: tagPure, result: r}
}

// requestWith is the raw Request constructor.
func requestWith[UQ, UR, DQ, DR, R any](v UQ, k func(UR) Proxy[UQ, UR, DQ, DR, R]) Proxy[UQ, UR, DQ, DR, R] {
	return Proxy[UQ, UR, DQ, DR, R]{tag: tagRequest, request: v, onUp: k}
}

// respondWith is the raw Respond constructor.
func respondWith[UQ, UR, DQ, DR, R any](v DR, k func(DQ) Proxy[UQ, UR, DQ, DR, R]) Proxy[UQ, UR, DQ, DR, R] {
	return Proxy[UQ, UR, DQ, DR, R]{tag: tagRespond, respond: v, onDown: k}
}

// effectWith is the raw effect constructor.
func effectWith[UQ, UR, DQ, DR, R any](step Step[UQ, UR, DQ, DR, R]) Proxy[UQ, UR, DQ, DR, R] {
	return Proxy[UQ, UR, DQ, DR, R]{tag: tagEffect, step: step}
}

// Pure lifts a value into a terminal Proxy with no effects and no ports.
func Pure[UQ, UR, DQ, DR, R any](r R) Proxy[UQ, UR, DQ, DR, R] {
	return pureWith[UQ, UR, DQ, DR](r)
}

// Request sends v upstream and terminates with the reply.
// It is the identity of the request category: Feed(f, Request(v)) runs
// f(v) alone.
func Request[UQ, UR, DQ, DR any](v UQ) Proxy[UQ, UR, DQ, DR, UR] {
	return requestWith(v, pureWith[UQ, UR, DQ, DR, UR])
}

// Respond sends v downstream and terminates with the reply.
// It is the identity of the respond category: For(Respond(v), f) runs
// f(v) alone.
func Respond[UQ, UR, DQ, DR any](v DR) Proxy[UQ, UR, DQ, DR, DQ] {
	return respondWith(v, pureWith[UQ, UR, DQ, DR, DQ])
}

// Lift wraps an effectful computation as a single-step Proxy.
// Cancellation is observed between steps: if the ambient context is
// already cancelled the step fails with ctx.Err() without invoking f.
// The computation receives the context for its own blocking work; any
// error it returns short-circuits the surrounding tree.
func Lift[UQ, UR, DQ, DR, R any](f func(ctx context.Context) (R, error)) Proxy[UQ, UR, DQ, DR, R] {
	return effectWith(func(ctx context.Context) (Proxy[UQ, UR, DQ, DR, R], error) {
		if err := ctx.Err(); err != nil {
			var zero Proxy[UQ, UR, DQ, DR, R]
			return zero, err
		}
		r, err := f(ctx)
		if err != nil {
			var zero Proxy[UQ, UR, DQ, DR, R]
			return zero, err
		}
		return pureWith[UQ, UR, DQ, DR](r), nil
	})
}

// Match exhaustively eliminates a Proxy node into T.
// External drivers and tests use Match to walk trees one node at a time
// without access to the variant representation.
func Match[UQ, UR, DQ, DR, R, T any](
	p Proxy[UQ, UR, DQ, DR, R],
	onRequest func(v UQ, k func(UR) Proxy[UQ, UR, DQ, DR, R]) T,
	onRespond func(v DR, k func(DQ) Proxy[UQ, UR, DQ, DR, R]) T,
	onEffect func(step Step[UQ, UR, DQ, DR, R]) T,
	onPure func(r R) T,
) T {
	switch p.tag {
	case tagRequest:
		return onRequest(p.request, p.onUp)
	case tagRespond:
		return onRespond(p.respond, p.onDown)
	case tagEffect:
		return onEffect(p.step)
	case tagPure:
		return onPure(p.result)
	}
	panic("pipes: corrupt proxy tag")
}
