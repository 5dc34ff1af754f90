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

// Package config loads monitor server process configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// TOML config file, MONITOR_* environment variables, and explicit overrides
// applied by the CLI. A missing config file is not an error; a present but
// unparsable one is.
//
// The services list lives in its own TOML file and is loaded separately with
// LoadServices, on every snapshot, so operators can edit it without a restart.
package config
