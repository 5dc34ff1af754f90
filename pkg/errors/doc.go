// Package errors provides structured error types for better observability
// and programmatic error handling across the monitor server.
//
// Every metric source reports failures with a source-specific code so the
// status aggregator can log which subsystem degraded:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeDiskUnavailable,
//	    "failed to stat filesystem",
//	    cause,
//	    map[string]any{
//	        "path": "/",
//	    },
//	)
//
//	if errors.CodeOf(err) == errors.ErrCodeDiskUnavailable {
//	    // fall back to (0, 0)
//	}
package errors
