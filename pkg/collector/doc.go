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

// Package collector builds the sources that describe the local host.
//
// # Overview
//
// Every source lives in its own subpackage and queries one subsystem:
//
//   - collector/host: memory, disk, network counters, temperature, uptime,
//     kernel release, OS release and hostname
//   - collector/docker: container inventory from the Docker Engine API
//   - collector/systemd: service activation through systemctl or D-Bus
//   - collector/netaddr: local and public IPv4 addresses
//   - collector/file: line and key/value parsing shared by the others
//
// Sources return *errors.StructuredError values coded by subsystem. They do
// not apply fallbacks; that is the aggregator's job (see pkg/snapshot).
//
// # Factory Pattern
//
// The Factory interface abstracts source construction so the aggregator can
// be wired with production sources or test doubles:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithDockerSocket("/run/docker.sock"),
//	    collector.WithServiceBackend(collector.ServiceBackendDBus),
//	)
//	hostCollector := factory.CreateHostCollector()
//	mem, err := hostCollector.Memory(ctx)
package collector
