// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

import "code.hybscloud.com/iox"

// Pool is a Queue pre-loaded with a fixed number of free nodes. Acquiring
// is a dequeue against the pool's queue; releasing is an enqueue — see
// Release, which routes through a node's Pool field rather than through
// the Pool type itself, so a node acquired on one goroutine may be
// released from any other.
//
// Pool owns its nodes' backing storage for its entire lifetime: nodes is
// a single contiguous slice allocated once at construction and never
// resized, so every node stays reachable through it regardless of which
// queue (this pool's, a worker's command queue, a reply queue) currently
// holds it via atomic pointer chains alone.
type Pool struct {
	queue    *Queue
	nodes    []Node
	capacity int
}

// NewPool allocates capacity+1 nodes — one stub plus capacity free nodes
// — and returns a Pool ready for Acquire/Release. Returns an error, with
// nothing partially initialized, if capacity is not positive.
func NewPool(capacity int) (*Pool, error) {
	if capacity <= 0 {
		return nil, newAllocError(capacity)
	}

	nodes := make([]Node, capacity+1)
	p := &Pool{nodes: nodes, capacity: capacity}

	nodes[0].Pool = nil // stub; assigned to the pool queue below
	p.queue = NewQueue(&nodes[0])
	nodes[0].Pool = p.queue

	for i := 1; i <= capacity; i++ {
		nodes[i].Pool = p.queue
		p.queue.Enqueue(&nodes[i])
	}

	return p, nil
}

// Acquire removes a free node from the pool, or returns nil if the pool
// is exhausted — the caller retries or yields. The returned node has
// ReplyTo, Arg1 and Arg2 cleared; Pool is left pointing at this pool.
//
// Acquire uses the non-stalling dequeue: a pool is drained by its single
// owning goroutine while many goroutines concurrently Release nodes back
// into it, and the caller is already expected to retry on nil, so there
// is no value in spinning for a producer that is merely mid-Release.
func (p *Pool) Acquire() *Node {
	n := p.queue.DequeueNonStalling()
	if n == nil {
		return nil
	}
	n.Reset()
	return n
}

// AcquireStalling is Acquire's stalling counterpart: it waits out a
// producer (Releaser) caught between its head-exchange and next-store
// instead of returning nil for that transient case. Provided for callers
// that exercise both dequeue flavors against the same pool, matching the
// original test driver's alternation between rmv and rmv_non_stalling.
func (p *Pool) AcquireStalling() *Node {
	n := p.queue.DequeueStalling()
	if n == nil {
		return nil
	}
	n.Reset()
	return n
}

// Deinit drains every node back into the pool — retrying with a backoff,
// since other goroutines may still be returning nodes concurrently — then
// tears down the underlying queue. After Deinit the pool must not be used.
func (p *Pool) Deinit() {
	backoff := iox.Backoff{}
	for i := 0; i < p.capacity; i++ {
		for p.queue.DequeueNonStalling() == nil {
			backoff.Wait()
		}
		backoff.Reset()
	}
	p.queue.Deinit()
}

// Queue exposes the pool's backing Queue for callers that need to pick a
// specific dequeue flavor directly. Nodes dequeued this way are not
// cleared the way Acquire and AcquireStalling clear them.
func (p *Pool) Queue() *Queue {
	return p.queue
}
