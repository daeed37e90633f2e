package node_test

import (
	"sync"
	"testing"

	"github.com/winksaville/mpscfifo/node"
)

func TestNewPoolRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := node.NewPool(0); err == nil {
		t.Fatal("NewPool(0) succeeded, want error")
	}
	if _, err := node.NewPool(-1); err == nil {
		t.Fatal("NewPool(-1) succeeded, want error")
	}
}

func TestPoolAcquireExhaustionReturnsNil(t *testing.T) {
	p, err := node.NewPool(2)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	a := p.Acquire()
	b := p.Acquire()
	if a == nil || b == nil {
		t.Fatal("pool exhausted before capacity reached")
	}
	if got := p.Acquire(); got != nil {
		t.Fatalf("Acquire on exhausted pool = %v, want nil", got)
	}
}

func TestPoolAcquireClearsPayload(t *testing.T) {
	p, err := node.NewPool(1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	n := p.Acquire()
	n.Arg1, n.Arg2 = 99, 99
	replyQ := node.NewQueue(&node.Node{})
	n.ReplyTo = replyQ
	node.Release(n)

	n2 := p.Acquire()
	if n2.Arg1 != 0 || n2.Arg2 != 0 || n2.ReplyTo != nil {
		t.Fatalf("reacquired node not reset: %+v", n2)
	}
}

func TestPoolReleaseRoundTrip(t *testing.T) {
	p, err := node.NewPool(4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	acquired := make([]*node.Node, 0, 4)
	for {
		n := p.Acquire()
		if n == nil {
			break
		}
		acquired = append(acquired, n)
	}
	if len(acquired) != 4 {
		t.Fatalf("acquired %d nodes, want 4", len(acquired))
	}

	for _, n := range acquired {
		node.Release(n)
	}

	count := 0
	for {
		n := p.Acquire()
		if n == nil {
			break
		}
		count++
	}
	if count != 4 {
		t.Fatalf("reacquired %d nodes after release, want 4", count)
	}
}

func TestPoolConcurrentAcquireReleaseConservesCapacity(t *testing.T) {
	const capacity = 32
	const workers = 8
	const rounds = 200

	p, err := node.NewPool(capacity)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	// Acquire is single-consumer, so this goroutine acquires while the
	// worker goroutines release concurrently.
	ch := make(chan *node.Node)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for n := range ch {
				node.Release(n)
			}
		}()
	}
	for i := 0; i < workers*rounds; i++ {
		var n *node.Node
		for n == nil {
			n = p.Acquire()
		}
		ch <- n
	}
	close(ch)
	wg.Wait()

	count := 0
	for {
		n := p.Acquire()
		if n == nil {
			break
		}
		count++
	}
	if count != capacity {
		t.Fatalf("pool holds %d nodes after concurrent churn, want %d", count, capacity)
	}
}

func TestReplyOrReleaseRoutesToReplyQueue(t *testing.T) {
	p, err := node.NewPool(1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	var replyStub node.Node
	replyQ := node.NewQueue(&replyStub)

	n := p.Acquire()
	n.ReplyTo = replyQ
	node.ReplyOrRelease(n, 123)

	got := replyQ.DequeueStalling()
	if got == nil {
		t.Fatal("reply queue empty, want routed node")
	}
	if got.Arg1 != 123 {
		t.Fatalf("Arg1 = %d, want 123 (result code)", got.Arg1)
	}
	if got.ReplyTo != nil {
		t.Fatal("ReplyTo not cleared before routing")
	}
}

func TestReplyOrReleaseFallsBackToPool(t *testing.T) {
	p, err := node.NewPool(1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	n := p.Acquire()
	node.ReplyOrRelease(n, 1)

	if got := p.Acquire(); got == nil {
		t.Fatal("node not released back to pool when ReplyTo is nil")
	}
}

func TestReleaseOfExternallyOwnedNodeIsNoop(t *testing.T) {
	n := &node.Node{}
	node.Release(n) // must not panic
}
