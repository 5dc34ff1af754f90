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

// Package systemd reports whether configured services are active.
//
// A Checker takes an ordered list of service names and returns one Status per
// name, in the same order. A name is active only when the service manager
// reports the exact state "active"; any other state, an invalid unit name, or
// a failed query counts as inactive. Query failures are logged and never
// returned to the caller.
//
// Two backends implement Querier:
//
//   - SystemctlQuerier runs `systemctl is-active <name>`
//   - DBusQuerier reads the ActiveState unit property over D-Bus
//
// Usage:
//
//	checker := systemd.NewChecker(systemd.NewSystemctlQuerier())
//	for _, s := range checker.Check(ctx, []string{"ssh", "cron", "nginx"}) {
//	    fmt.Printf("%s: %v\n", s.Name, s.Active)
//	}
//
// Queries run concurrently, bounded by the checker's concurrency limit, and
// each one is bounded by its own timeout derived from the caller's context.
package systemd
