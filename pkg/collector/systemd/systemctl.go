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
	"bytes"
	"context"
	"os/exec"

	"github.com/blastrider/monitor-server/pkg/errors"
)

// BackendSystemctl names the systemctl backend.
const BackendSystemctl = "systemctl"

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// SystemctlQuerier asks systemctl for the state of a unit.
type SystemctlQuerier struct {
	Path string
	run  Runner
}

// NewSystemctlQuerier returns a querier running systemctl from PATH.
func NewSystemctlQuerier() *SystemctlQuerier {
	return &SystemctlQuerier{Path: "systemctl", run: execRunner}
}

// WithRunner replaces command execution, for tests.
func (q *SystemctlQuerier) WithRunner(r Runner) *SystemctlQuerier {
	q.run = r
	return q
}

func (q *SystemctlQuerier) Backend() string { return BackendSystemctl }

// ActiveState runs `systemctl is-active <name>`. systemctl exits non-zero
// for any state other than active, so stdout wins over the exit status.
func (q *SystemctlQuerier) ActiveState(ctx context.Context, name string) (string, error) {
	out, err := q.run(ctx, q.Path, "is-active", name)
	if state := string(bytes.TrimSpace(out)); state != "" {
		return state, nil
	}
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeServiceQuery, "systemctl is-active failed", err,
			map[string]any{"service": name})
	}
	return "", errors.NewWithContext(errors.ErrCodeServiceQuery, "systemctl returned no state",
		map[string]any{"service": name})
}
