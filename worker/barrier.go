// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

import "sync"

// ShutdownBarrier coordinates teardown across a ring of connected
// Workers. A Worker's fanOut can target any peer in the ring for as
// long as that peer is still processing its CmdQueue, so no Worker may
// tear its CmdQueue down (node.Queue.Deinit zeroes head, and a producer
// mid-Enqueue against a nil head panics) until every peer has also
// stopped sending to it. Every Worker sharing a barrier must arrive when
// it processes its own stop command and will never fan out again;
// arrive blocks until all of them have done so, which is the first
// instant it is safe for any of them to deinit.
type ShutdownBarrier struct {
	wg sync.WaitGroup
}

// NewShutdownBarrier returns a barrier for a ring of n Workers.
func NewShutdownBarrier(n int) *ShutdownBarrier {
	b := &ShutdownBarrier{}
	b.wg.Add(n)
	return b
}

// arrive marks this Worker as done fanning out and blocks until every
// other Worker sharing the barrier has also arrived.
func (b *ShutdownBarrier) arrive() {
	b.wg.Done()
	b.wg.Wait()
}
