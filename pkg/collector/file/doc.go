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

// Package file parses small line-oriented files from /proc and /etc.
//
// A Parser splits a file into trimmed, non-empty lines and optionally into
// key/value pairs. Files larger than the configured limit, or not valid
// UTF-8, are rejected rather than partially parsed.
//
// Read os-release style files:
//
//	p := file.NewParser(file.WithTrimQuotes(true))
//	kv, err := p.GetMap("/etc/os-release")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(kv["PRETTY_NAME"])
//
// Read whitespace separated fields from a single-line file:
//
//	fields, err := file.NewParser().GetFields("/proc/uptime")
//
// Every function is safe to call concurrently.
package file
