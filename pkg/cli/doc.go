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

// Package cli implements the monitor-server command-line interface.
//
// # Commands
//
// serve - Run the status endpoint (default when no command is given):
//
//	monitor-server serve [--config FILE] [--address ADDR] [--port PORT]
//
// Loads configuration, the credential file and logging, then serves
// /status until SIGINT or SIGTERM.
//
// snapshot - Collect one status snapshot locally:
//
//	monitor-server snapshot [--output FILE] [--format json|yaml|table]
//
// passwd - Print a credential file line:
//
//	monitor-server passwd --user alice [--password PW]
//
// Without --password the first line of stdin is used.
//
// # Global Flags
//
//	--config       Config file path (TOML, default /etc/monitor_server/config.toml)
//	--log-level    Log level override (debug, info, warn, error)
//
// # Environment Variables
//
//	MONITOR_CONFIG     Config file path
//	LOG_LEVEL          Log level override
//	MONITOR_*          Any config key, e.g. MONITOR_SERVER_PORT
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/blastrider/monitor-server/pkg/cli.version=1.0.0'"
package cli
