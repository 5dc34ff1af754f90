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

package auth

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	// Realm is advertised in the authentication challenge.
	Realm = "Restricted"

	// ChallengeHeader is the response header carrying the challenge.
	ChallengeHeader = "WWW-Authenticate"

	schemeBasic = "Basic"
)

// challenge is the literal WWW-Authenticate value sent with every rejection.
var challenge = schemeBasic + ` realm="` + Realm + `"`

// Outcome is the terminal state of a single authentication attempt.
type Outcome int

const (
	NoHeader Outcome = iota
	Malformed
	BadCredentials
	Authorized
)

// String returns the metric and log label of the outcome.
func (o Outcome) String() string {
	switch o {
	case NoHeader:
		return "no_header"
	case Malformed:
		return "malformed"
	case BadCredentials:
		return "bad_credentials"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Verifier checks a username and password pair. credential.Store implements it.
type Verifier interface {
	Verify(username, password string) bool
}

// ParseBasic extracts the username and password from an Authorization header
// value. The value must be exactly two whitespace separated fields, the first
// being "Basic" and the second standard base64 of UTF-8 text. A decoded value
// without ':' yields that value as username and an empty password.
func ParseBasic(header string) (username, password string, ok bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != schemeBasic {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}
	if !utf8.Valid(decoded) {
		return "", "", false
	}

	username, password, _ = strings.Cut(string(decoded), ":")
	return username, password, true
}

// Evaluate runs the authentication state machine for one Authorization
// header value. present reports whether the header was sent at all.
func Evaluate(header string, present bool, v Verifier) Outcome {
	if !present {
		return NoHeader
	}

	username, password, ok := ParseBasic(header)
	if !ok {
		return Malformed
	}

	if v == nil || !v.Verify(username, password) {
		return BadCredentials
	}

	return Authorized
}

// EvaluateRequest evaluates the Authorization header of r.
func EvaluateRequest(r *http.Request, v Verifier) Outcome {
	values := r.Header.Values("Authorization")
	if len(values) == 0 {
		return NoHeader
	}
	return Evaluate(values[0], true, v)
}

// Gate guards handlers with Basic authentication.
type Gate struct {
	verifier Verifier
}

// NewGate returns a Gate validating against v. A nil verifier rejects everything.
func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Wrap returns next guarded by the gate.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome := EvaluateRequest(r, g.verifier)
		authAttempts.WithLabelValues(outcome.String()).Inc()

		if outcome != Authorized {
			slog.Debug("authentication rejected",
				"reason", outcome.String(),
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			Reject(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WrapFunc is Wrap for handler functions.
func (g *Gate) WrapFunc(next http.HandlerFunc) http.HandlerFunc {
	return g.Wrap(next).ServeHTTP
}

// Reject writes the uniform 401 challenge response.
func Reject(w http.ResponseWriter) {
	w.Header().Set(ChallengeHeader, challenge)
	w.WriteHeader(http.StatusUnauthorized)
}
