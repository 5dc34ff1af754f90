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

// Package auth provides the HTTP Basic authentication gate.
//
// The gate runs before any protected handler. Each request ends in exactly
// one Outcome:
//
//	NoHeader        no Authorization header
//	Malformed       wrong scheme, bad base64 or non UTF-8 credentials
//	BadCredentials  unknown user or wrong password
//	Authorized      credentials verified against the store
//
// Only Authorized calls the next handler, exactly once and with the request
// untouched. Every other outcome writes the same 401 response with a
// `WWW-Authenticate: Basic realm="Restricted"` challenge and no body, so a
// client cannot tell which check failed.
package auth
