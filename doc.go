// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipes provides bidirectional effectful stream composition.
//
// The core type [Proxy] is a four-variant recursive tree: Request sends a
// value upstream and resumes with the reply, Respond sends a value
// downstream and resumes with the reply, an effect node wraps an opaque
// computation producing the next node, and Pure terminates with a result.
// The tree is inert and purely functional; nothing runs until a driver
// walks it.
//
// # Architecture
//
//   - Algebra: [Pure], [Request], [Respond], [Lift] construct nodes;
//     [Bind], [Map], [Then] sequence them; [Match] eliminates them.
//   - Composition: [For] and [Feed] are the respond/request category
//     compositions, [ComposePull] and [ComposePush] the pull/push pair
//     with identities [Pull] and [Push]. [Reflect] is the duality
//     involution. [Connect] glues unidirectional stages.
//   - Streams: [Producer], [Consumer], [Pipe], [Effect] are polarity
//     restrictions of Proxy fixing unused ports to [None].
//   - Combinators: [Await], [Yield], [Each], [MapValues], [Filter],
//     [FoldUntil], [FoldWhile], [Repeat], [Loop].
//   - Bridge: [Queue] feeds a running pipeline from concurrent external
//     producers over a bounded lock-free ring ([code.hybscloud.com/lfq]),
//     waiting with [code.hybscloud.com/iox.Backoff].
//   - Driver: [Run] interprets a closed [Effect] under a
//     [context.Context]; [RunEither] returns [code.hybscloud.com/kont.Either].
//
// # Failure and cancellation
//
// Failure is carried by effect steps, never by a variant: a step that
// returns an error short-circuits the remaining tree, and no further
// Request or Respond is produced. Cancellation is the ambient context;
// every effect step receives it and the steps built by this package
// observe it at their boundary, so a cancelled pipeline surfaces the
// context error rather than hanging.
// Values already emitted downstream before a failure remain delivered.
//
// # Example
//
//	doubled := pipes.Connect(
//		pipes.Each(1, 2, 3),
//		pipes.MapValues[int, int, struct{}](func(x int) int { return x * 2 }),
//	)
//	out, _, err := pipes.Collect(context.Background(), doubled)
//	// out == []int{2, 4, 6}
package pipes
