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

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints, no authentication
	mux.HandleFunc("GET /health", s.withMiddleware(s.handleHealth))
	mux.HandleFunc("GET /ready", s.withMiddleware(s.handleReady))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Status endpoints behind the gate
	mux.HandleFunc("GET /status", s.withMiddleware(s.gate.WrapFunc(s.handleStatus)))
	mux.HandleFunc("GET /status/{service}", s.withMiddleware(s.gate.WrapFunc(s.handleServiceStatus)))

	return mux
}
