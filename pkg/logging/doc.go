// Package logging provides structured logging utilities for the monitor server.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so every component logs the same way. It supports environment-based log
// level configuration, module/version context injection, an optional log
// file tee, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithWriter(os.Stderr, "monitor-server", "v1.0.0", "")
//	    slog.Info("processing request", "id", "req-123")
//	}
//
// Writing to a file as well as stderr:
//
//	w, closeFn, err := logging.OpenFileTee("/var/log/monitor-server.log")
//	...
//	defer closeFn()
//	logging.SetDefaultStructuredLoggerWithWriter(w, "monitor-server", version, "info")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is given:
//
//	LOG_LEVEL=debug monitor-server serve
//
// # Output Format
//
// All logs are JSON:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "monitor-server",
//	    "version": "v1.0.0",
//	    "port": 8550
//	}
package logging
