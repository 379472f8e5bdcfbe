// recover.go provides the Recover helper for standalone panic recovery.
// Use this in HTTP handlers, goroutines, or other code outside of a
// framework-level error boundary.

package report

import (
	"context"
	"fmt"

	"github.com/narrowspark/exception-inspector/pkg/inspector"
)

// Recover captures a panic, records it to the reporter, and returns the
// recovered value. Recover does NOT re-panic after recording.
//
// Use in defer:
//
//	func handler(ctx context.Context) {
//	    defer report.Recover(ctx, reporter)
//	    // code that might panic
//	}
//
// Or to capture the recovered value:
//
//	func handler(ctx context.Context) (err error) {
//	    defer func() {
//	        if r := report.Recover(ctx, reporter); r != nil {
//	            err = fmt.Errorf("panic: %v", r)
//	        }
//	    }()
//	    // code that might panic
//	}
func Recover(ctx context.Context, reporter Reporter) any {
	r := recover()
	if r == nil {
		return nil
	}

	opts := []inspector.ExceptionOption{
		// Skip Recover itself and the deferred closure so the recorded
		// origin is the panicking function's caller region.
		inspector.WithStackSkip(2),
	}
	if err, ok := r.(error); ok {
		opts = append(opts, inspector.WithCause(err))
	}
	exc := inspector.NewException(formatRecovered(r), opts...)

	// Record the report (ignore errors - we don't want to affect caller)
	_ = reporter.Record(ctx, exc)

	return r
}

// formatRecovered formats a recovered panic value as a string.
func formatRecovered(recovered any) string {
	if recovered == nil {
		return "<nil>"
	}
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", recovered)
}
