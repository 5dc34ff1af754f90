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

// Package snapshot assembles a point-in-time Snapshot of the host.
//
// # Overview
//
// An Aggregator runs every source concurrently in an errgroup and joins them
// before building the Snapshot. Sources are individually unreliable: a source
// that fails or exceeds its timeout is replaced by a fixed fallback value
// and recorded in Snapshot.Degraded. No single failure aborts collection, and
// a Snapshot is only returned after every source has finished or timed out.
//
// Fallbacks:
//
//	memory, disk, network  (0, 0)
//	uptime                 "Unknown"
//	temperature            "Unavailable"
//	containers             []
//	local / public IP      "Unknown"
//	hostname               "Unknown"
//	kernel                 "Unknown Kernel"
//	os release             "Unknown System"
//
// Service activation never fails as a whole: each configured service is
// reported inactive when its own check fails.
//
// # Usage
//
//	agg := snapshot.NewAggregator(collector.NewDefaultFactory(),
//	    snapshot.WithServiceNames(config.ServicesFromFile(path)),
//	)
//	snap := agg.Collect(ctx, snapshot.Meta{ForwardedFor: r.Header.Get("X-Forwarded-For")})
//
// # Metrics
//
// Each source observes monitor_source_duration_seconds and, on failure,
// increments monitor_source_failures_total labelled by source and error code.
package snapshot
