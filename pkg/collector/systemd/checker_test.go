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

package systemd

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	mu       sync.Mutex
	states   map[string]string
	failures map[string]error
	calls    []string
	delay    time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeQuerier) Backend() string { return "fake" }

func (f *fakeQuerier) ActiveState(ctx context.Context, name string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err, ok := f.failures[name]; ok {
		return "", err
	}
	return f.states[name], nil
}

func TestChecker_PreservesOrder(t *testing.T) {
	q := &fakeQuerier{states: map[string]string{"cron": "active\n", "ssh": "inactive", "nginx": "failed"}}

	got := NewChecker(q).Check(context.Background(), []string{"ssh", "cron", "nginx"})

	assert.Equal(t, []Status{
		{Name: "ssh", Active: false},
		{Name: "cron", Active: true},
		{Name: "nginx", Active: false},
	}, got)
}

func TestChecker_ExactMatch(t *testing.T) {
	tests := []struct {
		state string
		want  bool
	}{
		{"active", true},
		{"  active \n", true},
		{"Active", false},
		{"ACTIVE", false},
		{"activating", false},
		{"inactive", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			q := &fakeQuerier{states: map[string]string{"svc": tt.state}}
			assert.Equal(t, tt.want, NewChecker(q).IsActive(context.Background(), "svc"))
		})
	}
}

func TestChecker_FailureIsInactive(t *testing.T) {
	q := &fakeQuerier{
		states:   map[string]string{"cron": "active"},
		failures: map[string]error{"ssh": errors.New("bus closed")},
	}

	got := NewChecker(q).Check(context.Background(), []string{"ssh", "cron"})
	assert.Equal(t, []Status{{Name: "ssh"}, {Name: "cron", Active: true}}, got)
}

func TestChecker_InvalidNamesNotQueried(t *testing.T) {
	q := &fakeQuerier{states: map[string]string{"--help": "active", "a b": "active"}}

	got := NewChecker(q).Check(context.Background(), []string{"--help", "a b", "", "ok"})

	require.Len(t, got, 4)
	for _, s := range got {
		assert.False(t, s.Active, s.Name)
	}
	assert.Equal(t, []string{"ok"}, q.calls)
}

func TestChecker_Duplicates(t *testing.T) {
	q := &fakeQuerier{states: map[string]string{"cron": "active"}}

	got := NewChecker(q).Check(context.Background(), []string{"cron", "cron"})
	assert.Equal(t, []Status{{Name: "cron", Active: true}, {Name: "cron", Active: true}}, got)
	assert.Len(t, q.calls, 2)
}

func TestChecker_Empty(t *testing.T) {
	got := NewChecker(&fakeQuerier{}).Check(context.Background(), nil)
	assert.Empty(t, got)
}

func TestChecker_BoundedConcurrency(t *testing.T) {
	q := &fakeQuerier{states: map[string]string{}, delay: 20 * time.Millisecond}
	names := make([]string, 10)
	for i := range names {
		names[i] = "svc" + strings.Repeat("x", i)
	}

	NewChecker(q, WithConcurrency(2)).Check(context.Background(), names)
	assert.LessOrEqual(t, q.peak.Load(), int32(2))
	assert.Len(t, q.calls, 10)
}

func TestChecker_QueryTimeout(t *testing.T) {
	q := &fakeQuerier{states: map[string]string{"slow": "active"}, delay: time.Second}

	start := time.Now()
	active := NewChecker(q, WithQueryTimeout(20*time.Millisecond)).IsActive(context.Background(), "slow")
	assert.False(t, active)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestChecker_NilQuerier(t *testing.T) {
	c := NewChecker(nil)
	assert.False(t, c.IsActive(context.Background(), "ssh"))
	assert.Empty(t, c.Backend())
}

func TestValidUnitName(t *testing.T) {
	valid := []string{"ssh", "cron.service", "getty@tty1.service", "dev-disk-by\\x2duuid.device", "a:b_c"}
	invalid := []string{"", "-x", "--version", "a b", "a;b", "a/b", "ünïcode", strings.Repeat("a", 257)}

	for _, n := range valid {
		assert.True(t, ValidUnitName(n), n)
	}
	for _, n := range invalid {
		assert.False(t, ValidUnitName(n), n)
	}
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "ssh.service", UnitName("ssh"))
	assert.Equal(t, "ssh.service", UnitName("ssh.service"))
	assert.Equal(t, "docker.socket", UnitName("docker.socket"))
	assert.Equal(t, "multi-user.target", UnitName("multi-user.target"))
}

func TestSystemctlQuerier(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("active\n"), nil
	}

	q := NewSystemctlQuerier().WithRunner(run)
	state, err := q.ActiveState(context.Background(), "cron")
	require.NoError(t, err)
	assert.Equal(t, "active", state)
	assert.Equal(t, "systemctl", gotName)
	assert.Equal(t, []string{"is-active", "cron"}, gotArgs)
	assert.Equal(t, BackendSystemctl, q.Backend())
}

func TestSystemctlQuerier_NonZeroExit(t *testing.T) {
	exitErr := errors.New("exit status 3")

	q := NewSystemctlQuerier().WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("inactive\n"), exitErr
	})
	state, err := q.ActiveState(context.Background(), "nginx")
	require.NoError(t, err)
	assert.Equal(t, "inactive", state)

	q = NewSystemctlQuerier().WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, exitErr
	})
	_, err = q.ActiveState(context.Background(), "nginx")
	assert.ErrorIs(t, err, exitErr)

	q = NewSystemctlQuerier().WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, nil
	})
	_, err = q.ActiveState(context.Background(), "nginx")
	assert.Error(t, err)
}

func TestDBusQuerier_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := NewDBusQuerier()
	state, err := q.ActiveState(ctx, "dbus")
	if err != nil {
		t.Skipf("systemd D-Bus not available: %v", err)
	}
	assert.NotEmpty(t, state)
	assert.Equal(t, BackendDBus, q.Backend())
}
