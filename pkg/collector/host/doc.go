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

// Package host reads the operating condition of the local machine.
//
// Each reading is a method on Collector and queries exactly one subsystem:
//
//   - Memory: used and total bytes from /proc/meminfo
//   - Disk: available and total bytes of a filesystem via statfs(2)
//   - Network: bytes received and sent, summed over /proc/net/dev
//   - Temperature: average of all thermal zones under /sys/class/thermal
//   - Uptime: seconds since boot from /proc/uptime
//   - Kernel, OSRelease, Hostname: system identification
//
// Failures are returned as *errors.StructuredError values whose code names
// the subsystem (for example MEMORY_UNAVAILABLE), so callers can degrade one
// field without inspecting error text. A host without thermal sensors is not
// a failure: Temperature returns TemperatureVMSentinel.
//
// The proc and sys roots are configurable so tests can point the collector
// at fixture trees:
//
//	c := host.NewCollector(host.WithProcRoot("testdata/proc"))
//	mem, err := c.Memory(ctx)
package host
