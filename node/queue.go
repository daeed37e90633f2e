// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Notifier is signalled after a node lands on a Queue. A *Queue accepts
// any type satisfying this interface — this module's notify package, a
// channel wrapper, or a test double — so the queue core never
// imports a concrete notifier implementation.
type Notifier interface {
	Signal()
}

// Queue is a wait-free multi-producer / single-consumer FIFO of *Node.
// Exactly one goroutine may call DequeueStalling or DequeueNonStalling at
// a time; any number of goroutines may call Enqueue concurrently.
//
// A Queue always contains at least one node: the stub passed to NewQueue
// acts as a permanent sentinel so that a single atomic exchange suffices
// to publish a node.
type Queue struct {
	_        pad
	head     atomic.Pointer[Node] // producers exchange; consumer only reads to check emptiness
	_        pad
	tail     *Node // consumer-owned; never touched by producers
	_        pad
	count    atomix.Int64 // advisory running length, not relied on for correctness
	_        pad
	notifier Notifier

	processed uint64 // consumer-only, total nodes successfully dequeued
}

// QueueOption configures a Queue at construction.
type QueueOption func(*Queue)

// WithNotifier arranges for n.Signal() to be called after every
// successful Enqueue, implementing the "producer signals the consumer's
// notifier" half of the wakeup contract. The consumer side (Wait, then
// drain fully before waiting again) is the caller's responsibility.
func WithNotifier(n Notifier) QueueOption {
	return func(q *Queue) { q.notifier = n }
}

// NewQueue initializes a Queue using stub as its sentinel. stub must
// remain reachable and must not be enqueued elsewhere for the lifetime of
// the returned Queue.
func NewQueue(stub *Node, opts ...QueueOption) *Queue {
	stub.next.Store(nil)
	q := &Queue{tail: stub}
	q.head.Store(stub)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue adds n to the queue. Wait-free: it always succeeds and never
// blocks another producer. Safe to call from any number of goroutines
// concurrently.
func (q *Queue) Enqueue(n *Node) {
	n.next.Store(nil)
	// atomic.Pointer.Swap compiles to a single hardware exchange, giving
	// the head-publication step its wait-free guarantee; neither atomix
	// nor a CAS-retry loop is needed here (see DESIGN.md).
	prev := q.head.Swap(n)
	prev.next.Store(n)
	q.count.Add(1)
	if q.notifier != nil {
		q.notifier.Signal()
	}
}

// DequeueStalling removes and returns the next node, or nil if the queue
// is empty. Consumer-only. If a producer has exchanged the head but has
// not yet completed the matching next-store, DequeueStalling spins with a
// scheduler yield until that producer finishes rather than reporting the
// queue empty.
func (q *Queue) DequeueStalling() *Node {
	t := q.tail
	x := t.next.Load()
	if x != nil {
		return q.advance(t, x)
	}
	if t == q.head.Load() {
		return nil
	}

	sw := spin.Wait{}
	for {
		x = t.next.Load()
		if x != nil {
			break
		}
		sw.Once()
	}
	return q.advance(t, x)
}

// DequeueNonStalling removes and returns the next node if it can do so
// without waiting. It returns nil both when the queue is empty and when
// a producer is mid-enqueue (head moved, next-store not yet visible).
// Consumer-only.
func (q *Queue) DequeueNonStalling() *Node {
	t := q.tail
	x := t.next.Load()
	if x == nil {
		return nil
	}
	return q.advance(t, x)
}

// advance copies x's payload into the outgoing tail t, advances tail to
// x, and returns t. This is the payload-rotation the stub trick requires:
// the physically removed node is always the stale sentinel, not the node
// a producer most recently published.
func (q *Queue) advance(t, x *Node) *Node {
	t.ReplyTo = x.ReplyTo
	t.Arg1 = x.Arg1
	t.Arg2 = x.Arg2
	q.tail = x
	q.processed++
	q.count.Add(-1)
	return t
}

// Deinit tears down the queue, which must already be empty (only the
// stub remains). It returns the total number of nodes processed over the
// queue's lifetime and the residual stub.
//
// If the stub's Pool names a different queue, the stub is released there
// and Deinit returns a nil residual. If the stub's Pool is this queue
// itself, or nil (an externally owned stub), the stub cannot be re-homed
// and is returned to the caller to dispose of.
func (q *Queue) Deinit() (processed uint64, residualStub *Node) {
	stub := q.tail
	processed = q.processed
	q.tail = nil
	q.head.Store(nil)

	if stub.Pool != nil && stub.Pool != q {
		Release(stub)
		return processed, nil
	}
	return processed, stub
}
