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
	"fmt"
	"strings"

	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/coreos/go-systemd/v22/dbus"
)

// BackendDBus names the D-Bus backend.
const BackendDBus = "dbus"

// DBusQuerier reads ActiveState from systemd over the system bus.
// A connection is opened per query.
type DBusQuerier struct{}

func NewDBusQuerier() *DBusQuerier { return &DBusQuerier{} }

func (q *DBusQuerier) Backend() string { return BackendDBus }

func (q *DBusQuerier) ActiveState(ctx context.Context, name string) (string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeServiceQuery, "failed to connect to systemd", err)
	}
	defer conn.Close()

	unit := UnitName(name)
	prop, err := conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeServiceQuery, "failed to get unit property", err,
			map[string]any{"unit": unit})
	}

	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeServiceQuery,
			fmt.Sprintf("unexpected ActiveState type %T", prop.Value.Value()),
			map[string]any{"unit": unit})
	}
	return state, nil
}

var unitSuffixes = []string{
	".service", ".socket", ".target", ".timer", ".mount", ".path",
	".device", ".swap", ".automount", ".slice", ".scope",
}

// UnitName appends ".service" to names that carry no unit type suffix,
// matching how systemctl resolves bare names.
func UnitName(name string) string {
	for _, s := range unitSuffixes {
		if strings.HasSuffix(name, s) {
			return name
		}
	}
	return name + ".service"
}
