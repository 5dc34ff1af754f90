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

package systemd

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/blastrider/monitor-server/pkg/defaults"
	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

// StateActive is the only state reported as active.
const StateActive = "active"

var serviceQueryFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "monitor_service_query_failures_total",
		Help: "Service state queries that failed, by backend.",
	},
	[]string{"backend"},
)

// Querier returns the raw activation state of a unit.
type Querier interface {
	// Backend names the implementation for logs and metrics.
	Backend() string
	ActiveState(ctx context.Context, name string) (string, error)
}

// Status is the activation state of one configured service.
type Status struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}

// Option configures a Checker.
type Option func(*Checker)

// WithConcurrency bounds the number of in-flight queries.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithQueryTimeout bounds each individual query.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Checker checks service activation through a Querier.
type Checker struct {
	querier     Querier
	concurrency int
	timeout     time.Duration
}

// NewChecker returns a Checker using q.
func NewChecker(q Querier, opts ...Option) *Checker {
	c := &Checker{
		querier:     q,
		concurrency: defaults.ServiceQueryConcurrency,
		timeout:     defaults.ServiceQueryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the name of the underlying query backend.
func (c *Checker) Backend() string {
	if c.querier == nil {
		return ""
	}
	return c.querier.Backend()
}

// Check returns the activation state of every name, in input order.
// Duplicate names are checked independently.
func (c *Checker) Check(ctx context.Context, names []string) []Status {
	results := make([]Status, len(names))

	g := new(errgroup.Group)
	g.SetLimit(c.concurrency)

	for i, name := range names {
		g.Go(func() error {
			results[i] = Status{Name: name, Active: c.IsActive(ctx, name)}
			return nil
		})
	}

	// goroutines never return errors
	_ = g.Wait()
	return results
}

// IsActive reports whether a single service is active.
func (c *Checker) IsActive(ctx context.Context, name string) bool {
	if !ValidUnitName(name) {
		slog.Warn("invalid service name, reporting inactive", "service", name)
		return false
	}
	if c.querier == nil {
		return false
	}

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	state, err := c.querier.ActiveState(qctx, name)
	if err != nil {
		serviceQueryFailures.WithLabelValues(c.querier.Backend()).Inc()
		slog.Warn("failed to check service status",
			"service", name,
			"backend", c.querier.Backend(),
			"code", errors.CodeOf(err),
			"error", err)
		return false
	}
	return strings.TrimSpace(state) == StateActive
}

const maxUnitNameLength = 256

// ValidUnitName reports whether name only uses characters systemd accepts
// in unit names. Names starting with '-' are rejected so they can never be
// read as command-line options.
func ValidUnitName(name string) bool {
	if name == "" || len(name) > maxUnitNameLength || strings.HasPrefix(name, "-") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(":-_.\\@", r):
		default:
			return false
		}
	}
	return true
}
