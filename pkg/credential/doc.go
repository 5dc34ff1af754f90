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

// Package credential holds the read-only credential store used by the
// authentication gate.
//
// The store is loaded once at startup from an htpasswd-style file with one
// `username:hash` record per line. Lines that do not split into exactly two
// colon-separated fields are skipped with a warning. After Load returns the
// store exposes only read methods, so it can be shared by every request
// goroutine without locking.
//
// Supported hash formats are those of Apache htpasswd: bcrypt ($2a$, $2b$,
// $2y$), Apache MD5 ($apr1$), SHA1 ({SHA}) and salted SHA1 ({SSHA}), as
// well as crypt SHA-256/512. A record whose hash is in no known format never
// verifies.
package credential
