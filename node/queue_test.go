package node_test

import (
	"sync"
	"testing"

	"github.com/winksaville/mpscfifo/node"
)

func TestQueueEmptyReturnsNil(t *testing.T) {
	var stub node.Node
	q := node.NewQueue(&stub)

	if got := q.DequeueNonStalling(); got != nil {
		t.Fatalf("DequeueNonStalling on empty queue = %v, want nil", got)
	}
	if got := q.DequeueStalling(); got != nil {
		t.Fatalf("DequeueStalling on empty queue = %v, want nil", got)
	}
}

func TestQueueSingleMessageRoundTrip(t *testing.T) {
	var stub node.Node
	q := node.NewQueue(&stub)

	n := &node.Node{Arg1: 42, Arg2: 7}
	q.Enqueue(n)

	got := q.DequeueStalling()
	if got == nil {
		t.Fatal("DequeueStalling returned nil after Enqueue")
	}
	if got.Arg1 != 42 || got.Arg2 != 7 {
		t.Fatalf("payload = {%d,%d}, want {42,7}", got.Arg1, got.Arg2)
	}

	if got := q.DequeueNonStalling(); got != nil {
		t.Fatalf("queue not empty after draining single message: %v", got)
	}
}

func TestQueueFIFOPerProducer(t *testing.T) {
	var stub node.Node
	q := node.NewQueue(&stub)

	nodes := make([]*node.Node, 8)
	for i := range nodes {
		nodes[i] = &node.Node{Arg1: uint64(i)}
		q.Enqueue(nodes[i])
	}

	for i := range nodes {
		got := q.DequeueStalling()
		if got == nil {
			t.Fatalf("message %d missing", i)
		}
		if got.Arg1 != uint64(i) {
			t.Fatalf("message %d out of order: got Arg1=%d", i, got.Arg1)
		}
	}
}

func TestQueueConservationUnderConcurrentProducers(t *testing.T) {
	const producers = 16
	const perProducer = 500

	var stub node.Node
	q := node.NewQueue(&stub)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(&node.Node{Arg1: 1})
			}
		}()
	}
	wg.Wait()

	var received int
	for {
		n := q.DequeueStalling()
		if n == nil {
			break
		}
		received++
	}

	want := producers * perProducer
	if received != want {
		t.Fatalf("received %d messages, want %d", received, want)
	}
}

func TestQueueDeinitReturnsResidualStubWhenSelfOwned(t *testing.T) {
	var stub node.Node
	q := node.NewQueue(&stub)
	stub.Pool = q // the stub belongs to the queue being torn down

	processed, residual := q.Deinit()
	if processed != 0 {
		t.Fatalf("processed = %d, want 0", processed)
	}
	if residual != &stub {
		t.Fatalf("residual = %p, want stub %p", residual, &stub)
	}
}

func TestQueueDeinitCountsProcessed(t *testing.T) {
	var stub node.Node
	q := node.NewQueue(&stub)

	for i := 0; i < 5; i++ {
		q.Enqueue(&node.Node{})
	}
	for i := 0; i < 5; i++ {
		q.DequeueStalling()
	}

	processed, _ := q.Deinit()
	if processed != 5 {
		t.Fatalf("processed = %d, want 5", processed)
	}
}

type signalCounter struct {
	mu    sync.Mutex
	count int
}

func (s *signalCounter) Signal() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
}

func TestQueueNotifierSignalledOnEnqueue(t *testing.T) {
	var stub node.Node
	sc := &signalCounter{}
	q := node.NewQueue(&stub, node.WithNotifier(sc))

	for i := 0; i < 3; i++ {
		q.Enqueue(&node.Node{})
	}

	sc.mu.Lock()
	got := sc.count
	sc.mu.Unlock()
	if got != 3 {
		t.Fatalf("notifier signalled %d times, want 3", got)
	}
}
