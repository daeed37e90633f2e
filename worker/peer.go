// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

import (
	"unsafe"

	"github.com/winksaville/mpscfifo/node"
)

// arg2FromPeer and peerFromArg2 round-trip a *node.Queue through a
// node's Arg2 datum slot as a uint64/uintptr handle. It is safe here
// because every peer queue this round-trips is a Worker's CmdQueue, kept
// reachable for the Worker's entire lifetime by the harness that owns it.
func arg2FromPeer(peer *node.Queue) uint64 {
	return uint64(uintptr(unsafe.Pointer(peer)))
}

func peerFromArg2(arg2 uint64) *node.Queue {
	if arg2 == 0 {
		return nil
	}
	return (*node.Queue)(unsafe.Pointer(uintptr(arg2)))
}
