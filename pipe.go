// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

// Derived pipe combinators, built purely from the algebra: each one is
// Await/Yield recursion with any state threaded explicitly through the
// loop arguments.

// MapValues transforms every value flowing through the pipe with f.
func MapValues[A, B, R any](f func(A) B) Pipe[A, B, R] {
	return Bind(Await[A, struct{}, B](), func(a A) Pipe[A, B, R] {
		return Then(Yield[B, struct{}, A](f(a)), MapValues[A, B, R](f))
	})
}

// Filter re-emits exactly the values satisfying pred, preserving order.
// A value failing pred is dropped and the pipe loops back to awaiting
// without emitting.
func Filter[A, R any](pred func(A) bool) Pipe[A, A, R] {
	return Bind(Await[A, struct{}, A](), func(a A) Pipe[A, A, R] {
		if !pred(a) {
			return Filter[A, R](pred)
		}
		return Then(Yield[A, struct{}, A](a), Filter[A, R](pred))
	})
}

// FoldUntil accumulates awaited values with fold and tests the updated
// accumulator: when done reports true, the accumulator is emitted and
// the state resets to initial.
//
// A trailing partial accumulator is never flushed: if the stream ends
// before done fires, the partial value is dropped, not emitted.
func FoldUntil[A, S, R any](initial S, fold func(S, A) S, done func(S) bool) Pipe[A, S, R] {
	return foldLoop[A, S, R](initial, initial, fold, func(acc S, _ A) bool {
		return done(acc)
	})
}

// FoldWhile accumulates awaited values with fold and tests the raw
// incoming value: when flush reports true, the accumulator (with the
// incoming value folded in) is emitted and the state resets to initial.
//
// Shares FoldUntil's no-flush behavior at stream end.
func FoldWhile[A, S, R any](initial S, fold func(S, A) S, flush func(A) bool) Pipe[A, S, R] {
	return foldLoop[A, S, R](initial, initial, fold, func(_ S, a A) bool {
		return flush(a)
	})
}

// foldLoop threads the accumulator as an explicit argument: a fresh
// pipe instance always starts from initial, and two instances never
// observe each other's state.
func foldLoop[A, S, R any](initial, acc S, fold func(S, A) S, fire func(S, A) bool) Pipe[A, S, R] {
	return Bind(Await[A, struct{}, S](), func(a A) Pipe[A, S, R] {
		next := fold(acc, a)
		if fire(next, a) {
			return Then(
				Yield[S, struct{}, A](next),
				foldLoop[A, S, R](initial, initial, fold, fire),
			)
		}
		return foldLoop[A, S, R](initial, next, fold, fire)
	})
}
