// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package worker implements the reference consumer loop described by the
// Worker protocol: a command queue, a private pool, and a small verb set
// (do-nothing, connect, disconnect-all, stop) each of which terminates
// with node.ReplyOrRelease.
package worker

import (
	"log/slog"

	"code.hybscloud.com/atomix"
	"github.com/google/uuid"

	"github.com/winksaville/mpscfifo/node"
	"github.com/winksaville/mpscfifo/notify"
)

// Worker owns a command queue and a private pool, and drains the former
// by repeated DequeueStalling whenever its Notifier wakes it.
type Worker struct {
	ID       string
	CmdQueue *node.Queue
	Pool     *node.Pool
	Notifier *notify.Notifier

	// cmdStub backs CmdQueue's sentinel. Embedding it as a value field
	// keeps it reachable for exactly as long as the Worker itself is,
	// matching the "stub is a node the caller owns for the queue's
	// lifetime" contract in node.NewQueue.
	cmdStub node.Node

	log *slog.Logger

	peers    []*node.Queue
	peerIdx  int
	maxPeers int

	barrier *ShutdownBarrier

	processed  atomix.Int64
	errorCount atomix.Int64
}

// Option configures a Worker at construction.
type Option func(*Worker)

// WithShutdownBarrier shares a ShutdownBarrier across a ring of Workers
// so none of them deinits its CmdQueue until every ring peer has
// likewise stopped fanning out. A standalone Worker with no ring peers
// needs no barrier and tears down as soon as it processes its own stop.
func WithShutdownBarrier(b *ShutdownBarrier) Option {
	return func(w *Worker) { w.barrier = b }
}

// New creates a Worker with a freshly generated ID, a private pool of
// poolCapacity free nodes, and room for up to maxPeers connected peers.
func New(poolCapacity, maxPeers int, logger *slog.Logger, opts ...Option) (*Worker, error) {
	return NewWithID(uuid.NewString(), poolCapacity, maxPeers, logger, opts...)
}

// NewWithID is New with an explicit ID, for tests that want deterministic
// worker identities.
func NewWithID(id string, poolCapacity, maxPeers int, logger *slog.Logger, opts ...Option) (*Worker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := node.NewPool(poolCapacity)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		ID:       id,
		Pool:     pool,
		Notifier: notify.New(),
		log:      logger.With("worker", id),
		maxPeers: maxPeers,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.CmdQueue = node.NewQueue(&w.cmdStub, node.WithNotifier(w.Notifier))
	return w, nil
}

// Run drains CmdQueue whenever Notifier wakes it, dispatching each
// message by verb, until a stop message is processed. It returns after
// the worker has flushed and deinitialized CmdQueue and Pool.
func (w *Worker) Run() {
	for {
		w.Notifier.Wait()
		for {
			msg := w.CmdQueue.DequeueStalling()
			if msg == nil {
				break
			}
			stop := w.dispatch(msg)
			if stop {
				w.awaitPeersAndShutdown()
				return
			}
			w.fanOut()
		}
	}
}

// ProcessedCount returns the number of command messages dispatched.
func (w *Worker) ProcessedCount() int64 {
	return w.processed.Load()
}

// ErrorCount returns the number of unrecognized verbs seen.
func (w *Worker) ErrorCount() int64 {
	return w.errorCount.Load()
}

func (w *Worker) dispatch(msg *node.Node) (stop bool) {
	switch Verb(msg.Arg1) {
	case VerbDoNothing:
		node.ReplyOrRelease(msg, uint64(ResultDidNothing))
	case VerbConnect:
		w.connect(msg)
		node.ReplyOrRelease(msg, uint64(ResultConnected))
	case VerbDisconnectAll:
		w.peers = w.peers[:0]
		w.peerIdx = 0
		node.ReplyOrRelease(msg, uint64(ResultDisconnected))
	case VerbStop:
		node.ReplyOrRelease(msg, uint64(ResultStopped))
		stop = true
	default:
		w.errorCount.Add(1)
		original := msg.Arg1
		msg.Arg2 = original
		w.log.Warn("unknown verb", "verb", original)
		node.ReplyOrRelease(msg, uint64(ResultUnknown))
	}
	w.processed.Add(1)
	return stop
}

func (w *Worker) connect(msg *node.Node) {
	peer := peerFromArg2(msg.Arg2)
	if peer == nil || len(w.peers) >= w.maxPeers {
		return
	}
	w.peers = append(w.peers, peer)
}

// fanOut sends a do-nothing to the next peer round-robin, stressing the
// queue in both directions. Missing peers or an exhausted pool are
// tolerated: the fan-out is simply skipped.
func (w *Worker) fanOut() {
	if len(w.peers) == 0 {
		return
	}
	n := w.Pool.Acquire()
	if n == nil {
		return
	}
	n.Arg1 = uint64(VerbDoNothing)

	peer := w.peers[w.peerIdx]
	w.peerIdx = (w.peerIdx + 1) % len(w.peers)
	peer.Enqueue(n)
}

// awaitPeersAndShutdown blocks on the shared ShutdownBarrier, if any,
// until every ring peer has likewise stopped fanning out, then tears
// down CmdQueue and Pool. Run already stopped calling fanOut for this
// Worker before this is reached, so once the barrier releases no
// goroutine anywhere can still be mid-Enqueue against CmdQueue.
func (w *Worker) awaitPeersAndShutdown() {
	if w.barrier != nil {
		w.barrier.arrive()
	}
	w.shutdown()
}

// shutdown drains any stragglers — messages a peer enqueued before it
// too reached the barrier above — releases them, then tears down
// CmdQueue and Pool. Safe only once no further Enqueue can occur
// against CmdQueue; see awaitPeersAndShutdown.
func (w *Worker) shutdown() {
	for {
		msg := w.CmdQueue.DequeueNonStalling()
		if msg == nil {
			break
		}
		node.Release(msg)
	}
	w.CmdQueue.Deinit()
	w.Pool.Deinit()
	w.log.Debug("stopped", "processed", w.processed.Load(), "errors", w.errorCount.Load())
}
