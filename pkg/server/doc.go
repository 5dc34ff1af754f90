// Copyright (c) 2025, The monitor-server Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the host status HTTP API.
//
// # Architecture
//
// The server is stateless apart from the read-only credential store and the
// readiness flag. Every request runs through the same middleware chain:
//
//   - Prometheus RED metrics, labelled by route pattern
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request logging, including the informational X-Forwarded-For value
//
// Protected routes are additionally wrapped by the Basic authentication gate
// (pkg/auth), which decides before any snapshot work starts.
//
// # API Endpoints
//
// GET /status - Host snapshot (authenticated)
//
//	Query parameters:
//	  - format: html, json, yaml (default: negotiated from Accept, else html)
//
//	Example:
//	  curl -u alice:secret "http://localhost:8550/status?format=json"
//
// GET /status/{service} - Activation state of one service (authenticated)
//
//	Returns {"service": "cron", "active": true, "state": "active"}
//
// GET /health - Liveness probe, always 200
//
// GET /ready - Readiness probe, 503 until the server is started
//
// GET /metrics - Prometheus exposition
//
// # Error Responses
//
// Authentication failures are always a bare 401 with
// `WWW-Authenticate: Basic realm="Restricted"`. Other errors use a JSON body:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-02T15:04:05Z",
//	  "retryable": true
//	}
//
// # Usage
//
//	srv, err := server.New(
//	    server.WithConfig(cfg),
//	    server.WithVerifier(store),
//	    server.WithAggregator(agg),
//	)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// Run blocks until SIGINT/SIGTERM or ctx cancellation, then shuts down
// gracefully within Config.ShutdownTimeout.
package server
