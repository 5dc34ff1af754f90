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

package credential

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	htpasswd "github.com/tg123/go-htpasswd"

	"github.com/blastrider/monitor-server/pkg/errors"
)

const fieldDelimiter = ":"

// maxLineLength bounds a single credential line. Longer lines are skipped.
const maxLineLength = 4096

// hashSystems are the accepted hash schemes. Plaintext is deliberately absent.
var hashSystems = []htpasswd.PasswdParser{
	htpasswd.AcceptMd5,
	htpasswd.AcceptSha,
	htpasswd.AcceptBcrypt,
	htpasswd.AcceptSsha,
	htpasswd.AcceptCryptSha,
}

// Record is a single username to password hash entry.
type Record struct {
	Username     string
	PasswordHash string
}

type entry struct {
	hash    string
	encoded htpasswd.EncodedPasswd
}

// Store maps usernames to password hashes. It is immutable after construction.
type Store struct {
	entries map[string]entry
}

// Load reads the credential file at path. A read failure is fatal to the
// caller: the server must not start without credentials.
func Load(path string) (*Store, error) {
	slog.Debug("loading credential file", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfigInvalid,
			"unable to read credential file", err, map[string]any{"path": path})
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfigInvalid,
			"unable to parse credential file", err, map[string]any{"path": path})
	}

	slog.Info("loaded credential file", "path", path, "entries", s.Len())
	return s, nil
}

// Parse builds a Store from htpasswd-formatted content.
func Parse(r io.Reader) (*Store, error) {
	s := &Store{entries: make(map[string]entry)}

	br := bufio.NewReaderSize(r, maxLineLength)
	lineNo := 0
	for {
		raw, oversized, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials: %w", err)
		}
		lineNo++
		if oversized {
			slog.Warn("credential line too long, skipping", "line", lineNo, "max", maxLineLength)
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, fieldDelimiter)
		if len(parts) != 2 || parts[0] == "" {
			slog.Warn("invalid line format in credential file", "line", lineNo)
			continue
		}

		username, hash := parts[0], parts[1]
		if _, dup := s.entries[username]; dup {
			slog.Warn("duplicate user in credential file, last entry wins",
				"user", username, "line", lineNo)
		}

		encoded := encode(hash)
		if encoded == nil {
			slog.Warn("unsupported password hash format", "user", username, "line", lineNo)
		}
		s.entries[username] = entry{hash: hash, encoded: encoded}
		slog.Debug("parsed credential entry", "user", username)
	}

	return s, nil
}

// readLine returns the next line without its terminator. A line that does
// not fit the reader buffer is drained and reported as oversized.
func readLine(br *bufio.Reader) (string, bool, error) {
	line, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", false, err
	}
	if !isPrefix {
		return string(line), false, nil
	}
	for isPrefix {
		_, isPrefix, err = br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}
	}
	return "", true, nil
}

// NewStore builds a Store from records, mainly for tests and tooling.
func NewStore(records ...Record) *Store {
	s := &Store{entries: make(map[string]entry, len(records))}
	for _, r := range records {
		s.entries[r.Username] = entry{hash: r.PasswordHash, encoded: encode(r.PasswordHash)}
	}
	return s
}

// encode returns the first htpasswd scheme that recognizes hash, or nil.
func encode(hash string) htpasswd.EncodedPasswd {
	for _, parse := range hashSystems {
		enc, err := parse(hash)
		if err != nil {
			return nil
		}
		if enc != nil {
			return enc
		}
	}
	return nil
}

// Lookup returns the stored hash for username.
func (s *Store) Lookup(username string) (string, bool) {
	if s == nil {
		return "", false
	}
	e, ok := s.entries[username]
	return e.hash, ok
}

// Verify reports whether password matches the stored hash for username.
// Unknown users and unsupported hash formats never verify.
func (s *Store) Verify(username, password string) bool {
	if s == nil {
		return false
	}
	e, ok := s.entries[username]
	if !ok || e.encoded == nil {
		return false
	}
	return e.encoded.MatchesPassword(password)
}

// Len returns the number of users in the store.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
