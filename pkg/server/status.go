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
	"log/slog"
	"net/http"

	"github.com/blastrider/monitor-server/pkg/collector/systemd"
	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/blastrider/monitor-server/pkg/render"
	"github.com/blastrider/monitor-server/pkg/serializer"
	"github.com/blastrider/monitor-server/pkg/snapshot"
)

// ServiceStatusResponse is the body of GET /status/{service}.
type ServiceStatusResponse struct {
	Service string `json:"service"`
	Active  bool   `json:"active"`
	State   string `json:"state"`
}

// handleStatus handles GET /status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	format := render.Negotiate(r)

	snap := s.aggregator.Collect(r.Context(), snapshot.Meta{
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
	})

	if len(snap.Degraded) > 0 {
		statusDegraded.Inc()
	}

	body, err := s.renderer.Render(format, snap)
	if err != nil {
		statusResponses.WithLabelValues(string(format), "error").Inc()
		slog.Error("failed to render status",
			"requestID", r.Context().Value(contextKeyRequestID),
			"format", format,
			"error", err)
		writeError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
			"Failed to render status", false, nil)
		return
	}

	statusResponses.WithLabelValues(string(format), "ok").Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// handleServiceStatus handles GET /status/{service}
func (s *Server) handleServiceStatus(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("service")

	active := s.services.IsActive(r.Context(), name)
	state := "inactive"
	if active {
		state = systemd.StateActive
	}
	serviceStatusQueries.WithLabelValues(state).Inc()

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, ServiceStatusResponse{
		Service: name,
		Active:  active,
		State:   state,
	})
}
