package report

import (
	"testing"
	"time"
)

func TestCaptureSystemState(t *testing.T) {
	state := CaptureSystemState(time.Now().Add(-50 * time.Millisecond))

	if state.MemoryBytes <= 0 {
		t.Errorf("MemoryBytes = %d, want positive", state.MemoryBytes)
	}
	if state.GoroutineCount <= 0 {
		t.Errorf("GoroutineCount = %d, want positive", state.GoroutineCount)
	}
	if state.UptimeMs < 0 {
		t.Errorf("UptimeMs = %d, want non-negative", state.UptimeMs)
	}
}

func TestCaptureSystemState_FutureStartClampsToZero(t *testing.T) {
	state := CaptureSystemState(time.Now().Add(time.Hour))
	if state.UptimeMs != 0 {
		t.Errorf("UptimeMs = %d, want 0 for a future start time", state.UptimeMs)
	}
}
