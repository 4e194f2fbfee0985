package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id       int
	executed *int32
	delay    time.Duration
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	atomic.AddInt32(j.executed, 1)
	return &mockResult{id: j.id}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int32
	jobCount := 20

	for i := 0; i < jobCount; i++ {
		pool.Submit(&mockJob{id: i, executed: &executed})
	}

	results := pool.Wait()

	if int(atomic.LoadInt32(&executed)) != jobCount {
		t.Errorf("expected %d executions, got %d", jobCount, executed)
	}
	if len(results) != jobCount {
		t.Errorf("expected %d results, got %d", jobCount, len(results))
	}
	for _, result := range results {
		if result.GetError() != nil {
			t.Errorf("unexpected job error: %v", result.GetError())
		}
	}
}

func TestPool_MoreJobsThanBuffers(t *testing.T) {
	// Submissions far beyond the channel buffers must not block Wait
	pool := NewPool(2)
	pool.Start()

	var executed int32
	jobCount := 100

	for i := 0; i < jobCount; i++ {
		pool.Submit(&mockJob{id: i, executed: &executed})
	}

	done := make(chan []Result)
	go func() { done <- pool.Wait() }()

	select {
	case results := <-done:
		if len(results) != jobCount {
			t.Errorf("expected %d results, got %d", jobCount, len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pool deadlocked with jobs exceeding buffer capacity")
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var executed int32
	pool.Submit(&mockJob{id: 0, executed: &executed})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestPool_ConcurrencyBound(t *testing.T) {
	workers := 3
	pool := NewPool(workers)
	pool.Start()

	var current, max int32
	for i := 0; i < 12; i++ {
		pool.Submit(&concurrencyJob{current: &current, max: &max})
	}
	pool.Wait()

	if got := atomic.LoadInt32(&max); got > int32(workers) {
		t.Errorf("observed %d concurrent jobs, limit is %d", got, workers)
	}
}

type concurrencyJob struct {
	current *int32
	max     *int32
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	n := atomic.AddInt32(j.current, 1)
	for {
		old := atomic.LoadInt32(j.max)
		if n <= old || atomic.CompareAndSwapInt32(j.max, old, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	atomic.AddInt32(j.current, -1)
	return &mockResult{}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	for i := 0; i < 10; i++ {
		pool.Submit(&mockJob{id: i, executed: &executed, delay: 50 * time.Millisecond})
	}

	pool.Shutdown()

	// Submit after shutdown must not block
	done := make(chan struct{})
	go func() {
		pool.Submit(&mockJob{id: 99, executed: &executed})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after Shutdown")
	}
}
