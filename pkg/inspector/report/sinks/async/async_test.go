package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/narrowspark/exception-inspector/pkg/inspector/report"
)

// countingSink counts writes behind a mutex.
type countingSink struct {
	mu     sync.Mutex
	writes int
	delay  time.Duration
}

func (s *countingSink) Write(ctx context.Context, rep report.Report) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	return nil
}

func (s *countingSink) Flush(ctx context.Context) error { return nil }
func (s *countingSink) Close() error                    { return nil }

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func TestAsyncSink_ImplementsSinkInterface(t *testing.T) {
	sink := NewAsyncSink(&countingSink{})
	defer sink.Close()
	var _ report.Sink = sink
}

func TestAsyncSink_WriteIsProcessed(t *testing.T) {
	inner := &countingSink{}
	sink := NewAsyncSink(inner)
	defer sink.Close()

	if err := sink.Write(context.Background(), report.Report{}); err != nil {
		t.Fatalf("Write returned %v", err)
	}
	if err := sink.Flush(context.Background()); err != nil {
		t.Fatalf("Flush returned %v", err)
	}
	if got := inner.count(); got != 1 {
		t.Errorf("inner sink received %d reports, want 1", got)
	}
}

func TestAsyncSink_CloseDrainsQueue(t *testing.T) {
	inner := &countingSink{}
	sink := NewAsyncSink(inner)

	for i := 0; i < 10; i++ {
		if err := sink.Write(context.Background(), report.Report{}); err != nil {
			t.Fatalf("Write %d returned %v", i, err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close returned %v", err)
	}
	if got := inner.count(); got != 10 {
		t.Errorf("inner sink received %d reports after Close, want 10", got)
	}
}

func TestAsyncSink_WriteAfterClose(t *testing.T) {
	sink := NewAsyncSink(&countingSink{})
	sink.Close()

	if err := sink.Write(context.Background(), report.Report{}); err == nil {
		t.Error("Write after Close should return an error")
	}
}

func TestAsyncSink_OverflowDropsOldest(t *testing.T) {
	dropped := 0
	var mu sync.Mutex
	inner := &countingSink{delay: 50 * time.Millisecond}
	sink := NewAsyncSink(inner,
		WithQueueSize(1),
		WithOnDropped(func(count int) {
			mu.Lock()
			defer mu.Unlock()
			dropped += count
		}))
	defer sink.Close()

	for i := 0; i < 5; i++ {
		sink.Write(context.Background(), report.Report{})
	}

	mu.Lock()
	defer mu.Unlock()
	if dropped == 0 {
		t.Error("overflowing a 1-slot queue should drop reports")
	}
}

func TestAsyncSink_FlushHonorsContext(t *testing.T) {
	inner := &countingSink{delay: time.Second}
	sink := NewAsyncSink(inner, WithQueueSize(4))
	defer sink.Close()

	for i := 0; i < 4; i++ {
		sink.Write(context.Background(), report.Report{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := sink.Flush(ctx); err == nil {
		t.Error("Flush should respect context cancellation while the queue drains")
	}
}
