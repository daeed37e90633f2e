// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

import "github.com/winksaville/mpscfifo/node"

// send acquires a node from pool, lets fill stamp it, and enqueues it to
// target. Reports false if the pool was exhausted.
func send(pool *node.Pool, target *node.Queue, fill func(*node.Node)) bool {
	n := pool.Acquire()
	if n == nil {
		return false
	}
	fill(n)
	target.Enqueue(n)
	return true
}

// Connect asks target to add peer as a connected worker. Returns false if
// pool was exhausted.
func Connect(pool *node.Pool, target *node.Queue, peer *node.Queue) bool {
	return send(pool, target, func(n *node.Node) {
		n.Arg1 = uint64(VerbConnect)
		n.Arg2 = arg2FromPeer(peer)
	})
}

// DisconnectAll asks target to drop all connected peers.
func DisconnectAll(pool *node.Pool, target *node.Queue) bool {
	return send(pool, target, func(n *node.Node) {
		n.Arg1 = uint64(VerbDisconnectAll)
	})
}

// DoNothing asks target to process a no-op message.
func DoNothing(pool *node.Pool, target *node.Queue) bool {
	return send(pool, target, func(n *node.Node) {
		n.Arg1 = uint64(VerbDoNothing)
	})
}

// Stop asks target to finish processing and exit its run loop.
func Stop(pool *node.Pool, target *node.Queue) bool {
	return send(pool, target, func(n *node.Node) {
		n.Arg1 = uint64(VerbStop)
	})
}

// Request is DoNothing with a reply route: it asks target to process a
// no-op message and report the result on replyTo.
func Request(pool *node.Pool, target, replyTo *node.Queue) bool {
	return send(pool, target, func(n *node.Node) {
		n.Arg1 = uint64(VerbDoNothing)
		n.ReplyTo = replyTo
	})
}
