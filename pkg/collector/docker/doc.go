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

// Package docker lists containers known to the local Docker daemon.
//
// The client speaks the Docker Engine HTTP API directly over the daemon's
// unix socket. A listing is two calls: GET /_ping to confirm the daemon is
// reachable, then GET /containers/json?all=1. The two failure modes map to
// distinct error codes (CONTAINER_CONNECT_FAILED and CONTAINER_LIST_FAILED).
//
//	c := docker.NewCollector("/var/run/docker.sock")
//	containers, err := c.List(ctx)
package docker
