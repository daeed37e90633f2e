// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

import "sync/atomic"

// Node is the intrusive element carried through every Queue in this
// package. A Node is created externally — as a struct field, a local
// variable, or a slot in a Pool's backing array — and the caller is
// responsible for keeping it reachable for as long as it may be in
// flight; the package never allocates a Node on its own.
//
// A Node is never in more than one queue at a time: Enqueue contributes
// it, a dequeue removes it, and the consumer then re-enqueues it to a
// pool or reply queue.
type Node struct {
	// next is written once by the producer completing an enqueue and
	// read only by the queue's single consumer. atomic.Pointer is used
	// instead of code.hybscloud.com/atomix because atomix exposes no
	// generic atomic pointer type; see DESIGN.md.
	next atomic.Pointer[Node]

	// Pool is the queue that should receive this node on Release, or nil
	// if the node is externally owned (e.g. a stack-allocated stub).
	// Immutable after construction.
	Pool *Queue

	// ReplyTo is the queue that should receive this node as a reply, or
	// nil. Set by the sender before Enqueue; cleared by ReplyOrRelease
	// before the node is routed so a reply can never be mistaken for a
	// fresh request if it loops back.
	ReplyTo *Queue

	// Arg1 is the verb on a request and the result code on a reply.
	Arg1 uint64

	// Arg2 carries a user datum: an integer, or a pointer round-tripped
	// through uintptr (see worker.Connect).
	Arg2 uint64
}

// Reset clears the fields a Pool scrubs before handing a node back out,
// leaving Pool untouched.
func (n *Node) Reset() {
	n.ReplyTo = nil
	n.Arg1 = 0
	n.Arg2 = 0
}
