// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package node implements Dimitry Vyukov's non-intrusive MPSC node-based
// queue (http://www.1024cores.net/home/lock-free-algorithms/queues/non-intrusive-mpsc-node-based-queue),
// plus the message-pool and reply-routing discipline layered on top of it.
//
// # Queue
//
// A Queue is a wait-free multi-producer / single-consumer FIFO. Producers
// call Enqueue from any number of goroutines without blocking each other.
// Exactly one goroutine at a time may call DequeueStalling or
// DequeueNonStalling.
//
//	var stub node.Node
//	q := node.NewQueue(&stub)
//	q.Enqueue(&node.Node{Arg1: 7})
//	msg := q.DequeueStalling()
//
// The node returned from a dequeue is not the node most recently enqueued:
// the algorithm's stub trick means the consumer always physically removes
// the former tail, with the new node's payload copied into it. Treat the
// return value as a value-bearing handle, not as identity.
//
// # Pool
//
// A Pool is a Queue pre-loaded with a fixed number of free nodes. Acquire
// is a dequeue; Release enqueues the node back to whichever Queue its Pool
// field names, so a node may be acquired on one goroutine and released on
// another.
//
//	pool, err := node.NewPool(64)
//	msg := pool.Acquire()
//	node.Release(msg)
//
// # Reply routing
//
// ReplyOrRelease implements the request/response pattern: if a node
// carries a reply queue, the result is published there; otherwise the
// node goes back to its pool.
package node
