// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package harness implements the reference test driver from spec §6/§8:
// it spins up clientCount workers wired into a ring, pumps loops*clientCount
// messages through them alternating the two dequeue flavors, and verifies
// the closure equation msgs_sent + no_msgs_count == loops*clientCount.
package harness

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/winksaville/mpscfifo/node"
	"github.com/winksaville/mpscfifo/worker"
)

// Result summarizes one run, mirroring the original C driver's final
// printf line.
type Result struct {
	ClientsCreated uint32
	MsgsSent       uint64
	NoMsgsCount    uint64
	MsgsProcessed  uint64
	ErrorsSeen     uint64
}

// Run executes the driver described in spec §6/§8. loops*clientCount must
// be representable; msgCount sizes the work pool the driver draws its
// do-nothing messages from.
func Run(clientCount uint32, loops uint64, msgCount uint32, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if clientCount == 0 {
		return Result{}, fmt.Errorf("harness: client_count must be > 0")
	}
	if msgCount == 0 {
		return Result{}, fmt.Errorf("harness: msg_count must be > 0")
	}

	workPool, err := node.NewPool(int(msgCount))
	if err != nil {
		return Result{}, fmt.Errorf("harness: work pool: %w", err)
	}

	// controlPool is deliberately separate from workPool: connect and
	// stop messages must never be starved by the do-nothing traffic the
	// main loop pumps through workPool, or a worker could wait forever
	// for a stop message that can't be allocated.
	controlPool, err := node.NewPool(2 * int(clientCount))
	if err != nil {
		return Result{}, fmt.Errorf("harness: control pool: %w", err)
	}

	// barrier ensures no worker deinits its CmdQueue while a ring peer
	// might still fan out to it: every worker arrives here only after it
	// has personally processed its own stop and will never fan out
	// again, and none proceeds past it until all of them have.
	barrier := worker.NewShutdownBarrier(int(clientCount))

	workers := make([]*worker.Worker, clientCount)
	var wg sync.WaitGroup
	for i := range workers {
		w, err := worker.New(int(clientCount)+1, int(clientCount), logger, worker.WithShutdownBarrier(barrier))
		if err != nil {
			return Result{}, fmt.Errorf("harness: worker %d: %w", i, err)
		}
		workers[i] = w
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			w.Run()
		}(w)
	}
	logger.Info("harness: created clients", "count", len(workers))

	// Wire workers into a ring: each fan-out has somewhere to go.
	for i, w := range workers {
		peer := workers[(i+1)%len(workers)]
		if !worker.Connect(controlPool, w.CmdQueue, peer.CmdQueue) {
			return Result{}, fmt.Errorf("harness: control pool exhausted while connecting worker %d", i)
		}
	}

	var msgsSent, noMsgsCount uint64
	for i := uint64(0); i < loops; i++ {
		for c := range workers {
			var msg *node.Node
			if i&1 == 0 {
				msg = workPool.AcquireStalling()
			} else {
				msg = workPool.Acquire()
			}

			if msg == nil {
				noMsgsCount++
				runtime.Gosched()
				continue
			}

			msg.Arg1 = uint64(worker.VerbDoNothing)
			msgsSent++
			workers[c].CmdQueue.Enqueue(msg)
		}
	}

	for i, w := range workers {
		if !worker.Stop(controlPool, w.CmdQueue) {
			return Result{}, fmt.Errorf("harness: control pool exhausted while stopping worker %d", i)
		}
	}
	wg.Wait()

	var msgsProcessed, errorsSeen uint64
	for _, w := range workers {
		msgsProcessed += uint64(w.ProcessedCount())
		errorsSeen += uint64(w.ErrorCount())
	}

	workPool.Deinit()
	controlPool.Deinit()

	res := Result{
		ClientsCreated: uint32(len(workers)),
		MsgsSent:       msgsSent,
		NoMsgsCount:    noMsgsCount,
		MsgsProcessed:  msgsProcessed,
		ErrorsSeen:     errorsSeen,
	}

	expected := loops * uint64(len(workers))
	if sum := msgsSent + noMsgsCount; sum != expected {
		return res, fmt.Errorf("harness: msgs_sent+no_msgs_count=%d != loops*client_count=%d", sum, expected)
	}
	if errorsSeen != 0 {
		return res, fmt.Errorf("harness: %d worker errors recorded", errorsSeen)
	}
	return res, nil
}
