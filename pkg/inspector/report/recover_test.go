package report

import (
	"context"
	"errors"
	"testing"
)

func TestRecover_NoPanic(t *testing.T) {
	sink := &captureSink{}
	reporter := NewReporter(WithSink(sink))

	func() {
		defer Recover(context.Background(), reporter)
	}()

	if len(sink.reports) != 0 {
		t.Errorf("Recover recorded %d reports without a panic", len(sink.reports))
	}
}

func TestRecover_RecordsPanic(t *testing.T) {
	sink := &captureSink{}
	reporter := NewReporter(WithSink(sink))

	func() {
		defer Recover(context.Background(), reporter)
		panic("kaboom")
	}()

	if len(sink.reports) != 1 {
		t.Fatalf("Recover recorded %d reports, want 1", len(sink.reports))
	}
	rep := sink.reports[0]
	if rep.Message != "kaboom" {
		t.Errorf("Message = %q, want %q", rep.Message, "kaboom")
	}
	if len(rep.Frames) == 0 {
		t.Error("report should carry a captured trace")
	}
}

func TestRecover_ReturnsRecoveredValue(t *testing.T) {
	reporter := NewReporter()

	var recovered any
	func() {
		defer func() {
			recovered = Recover(context.Background(), reporter)
		}()
		panic(42)
	}()

	if recovered != 42 {
		t.Errorf("Recover returned %v, want 42", recovered)
	}
}

func TestRecover_ErrorPanicBecomesCause(t *testing.T) {
	sink := &captureSink{}
	reporter := NewReporter(WithSink(sink))
	cause := errors.New("disk full")

	func() {
		defer Recover(context.Background(), reporter)
		panic(cause)
	}()

	rep := sink.reports[0]
	if rep.Message != "disk full" {
		t.Errorf("Message = %q, want the error text", rep.Message)
	}
	if len(rep.CauseMessages) != 1 || rep.CauseMessages[0] != "disk full" {
		t.Errorf("CauseMessages = %v, want the panicking error", rep.CauseMessages)
	}
}

func TestRecover_SinkFailureDoesNotPropagate(t *testing.T) {
	reporter := NewReporter(WithSink(&captureSink{failing: true}))

	// Must neither re-panic nor surface the sink error.
	func() {
		defer Recover(context.Background(), reporter)
		panic("kaboom")
	}()
}
