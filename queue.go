// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/spin"
)

// defaultQueueCapacity is the bounded capacity used when NewQueue is
// given a non-positive capacity. Larger than a session channel because
// bridge producers are bursty external callers, not lockstep peers.
const defaultQueueCapacity = 64

// Queue bridges external producers into a running pipeline.
//
// The buffer is a bounded lock-free SPSC ring from lfq; the producer
// side is serialized by a spin lock so any number of goroutines may
// call Enqueue concurrently, while the draining [Queue.Source] remains
// the single consumer. The queue is the only state in this package
// mutated by more than one logical actor.
//
// Lifecycle: create, enqueue zero or more times, call Done exactly
// once, drain until empty. Every value enqueued strictly before Done is
// emitted exactly once, in enqueue order.
type Queue[A any] struct {
	mu     spin.Lock
	buf    lfq.SPSC[A]
	slot   A
	closed atomix.Uint32
	serial Serial
}

// NewQueue creates a bridge queue holding up to capacity buffered
// values. A non-positive capacity selects the default.
func NewQueue[A any](capacity int) *Queue[A] {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	q := &Queue[A]{serial: nextSerial()}
	q.buf.Init(capacity)
	return q
}

// Serial returns the serial number assigned to this queue.
func (q *Queue[A]) Serial() Serial {
	return q.serial
}

// Enqueue appends v to the buffer. Safe to call from any number of
// goroutines; concurrent producers are serialized by the spin lock.
// Blocks with adaptive backoff while the ring is full. Panics if the
// queue has been marked done: the lifecycle contract places every
// enqueue strictly before Done.
func (q *Queue[A]) Enqueue(v A) {
	if q.closed.Load() != 0 {
		panic("pipes: enqueue on closed queue")
	}
	q.mu.Lock()
	var bo iox.Backoff
	for {
		q.slot = v
		if err := q.buf.Enqueue(&q.slot); err == nil {
			q.mu.Unlock()
			return
		}
		bo.Wait()
	}
}

// Done marks the queue closed. Drains observe closure once the buffer
// empties. Idempotent; the counter tolerates a duplicate call.
func (q *Queue[A]) Done() {
	q.closed.Add(1)
}

// Source returns the draining producer view of the queue: each
// dequeued value is emitted downstream in FIFO order, and the producer
// completes once the queue is closed and empty.
//
// The wait loop observes the ambient context, so cancelling the driver
// while the queue is empty terminates the pipeline with ctx.Err()
// instead of spinning forever.
func (q *Queue[A]) Source() Producer[A, struct{}] {
	return effectWith(q.drainStep)
}

// drainStep dequeues the next value or completes the producer.
// Closure is checked before the dequeue attempt: if the queue was
// closed and the ring is still empty afterwards, every value enqueued
// before Done has already been observed.
func (q *Queue[A]) drainStep(ctx context.Context) (Producer[A, struct{}], error) {
	var bo iox.Backoff
	for {
		wasClosed := q.closed.Load() != 0
		v, err := q.buf.Dequeue()
		if err == nil {
			return respondWith[None, None, struct{}, A, struct{}](v, func(struct{}) Producer[A, struct{}] {
				return effectWith(q.drainStep)
			}), nil
		}
		if wasClosed {
			return pureWith[None, None, struct{}, A](struct{}{}), nil
		}
		if cerr := ctx.Err(); cerr != nil {
			var zero Producer[A, struct{}]
			return zero, cerr
		}
		bo.Wait()
	}
}
