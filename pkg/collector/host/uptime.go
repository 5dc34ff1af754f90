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

package host

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/blastrider/monitor-server/pkg/collector/file"
	"github.com/blastrider/monitor-server/pkg/errors"
)

// Uptime returns seconds since boot, the first field of /proc/uptime.
func (c *Collector) Uptime(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeUptimeUnavailable, "uptime read canceled", err)
	}

	path := filepath.Join(c.ProcRoot, "uptime")
	fields, err := file.NewParser().GetFields(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeUptimeUnavailable, "failed to read uptime", err)
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, errors.NewWithContext(errors.ErrCodeUptimeUnavailable, "invalid uptime format",
			map[string]any{"path": path, "value": fields[0]})
	}
	return secs, nil
}

// FormatUptime renders seconds as "D days, H hours, M minutes".
func FormatUptime(seconds float64) string {
	total := uint64(math.Floor(seconds))
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, minutes)
}
