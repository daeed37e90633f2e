// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

// Release returns n to its pool. If n.Pool is nil the node is externally
// owned and is dropped silently.
func Release(n *Node) {
	if n.Pool == nil {
		return
	}
	n.Pool.Enqueue(n)
}

// ReplyOrRelease implements the request/response pattern: if n carries a
// reply queue, resultCode is stamped into Arg1 and n is routed there;
// otherwise n is released to its pool.
//
// ReplyTo is cleared before n is routed so that, were the reply to loop
// back around, it can never be mistaken for a fresh request.
func ReplyOrRelease(n *Node, resultCode uint64) {
	target := n.ReplyTo
	if target == nil {
		Release(n)
		return
	}
	n.ReplyTo = nil
	n.Arg1 = resultCode
	target.Enqueue(n)
}
