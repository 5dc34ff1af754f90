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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Source timeouts
		{"SourceTimeout", SourceTimeout, 1 * time.Second, 30 * time.Second},
		{"ServiceQueryTimeout", ServiceQueryTimeout, 1 * time.Second, 10 * time.Second},
		{"CLISnapshotTimeout", CLISnapshotTimeout, 10 * time.Second, 5 * time.Minute},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 2 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestSourceTimeoutFitsInWriteTimeout(t *testing.T) {
	// A snapshot waits for its slowest source, so the source bound
	// must leave room to render before the server write deadline.
	if SourceTimeout >= ServerWriteTimeout {
		t.Errorf("SourceTimeout (%v) should be less than ServerWriteTimeout (%v)",
			SourceTimeout, ServerWriteTimeout)
	}
}

func TestServiceQueryWithinSource(t *testing.T) {
	if ServiceQueryTimeout > SourceTimeout {
		t.Errorf("ServiceQueryTimeout (%v) should not exceed SourceTimeout (%v)",
			ServiceQueryTimeout, SourceTimeout)
	}
	if ServiceQueryConcurrency < 1 {
		t.Errorf("ServiceQueryConcurrency must be positive, got %d", ServiceQueryConcurrency)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}
	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
}
