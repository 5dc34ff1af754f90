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
	"log/slog"

	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/prometheus/procfs/sysfs"
)

// TemperatureVMSentinel is reported when the host exposes no thermal zones,
// which is the normal case for virtual machines.
const TemperatureVMSentinel = "Unavailable (VM environment)"

// Temperature returns the mean of all thermal zones formatted as "%.2f °C".
func (c *Collector) Temperature(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeTemperatureUnavailable, "temperature read canceled", err)
	}

	fs, err := sysfs.NewFS(c.SysRoot)
	if err != nil {
		slog.Warn("sysfs not available, this may be a VM environment", "root", c.SysRoot, "error", err)
		return TemperatureVMSentinel, nil
	}

	zones, err := fs.ClassThermalZoneStats()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemperatureUnavailable, "failed to read thermal zones", err)
	}
	if len(zones) == 0 {
		slog.Warn("no thermal zones found, this may be a VM environment", "root", c.SysRoot)
		return TemperatureVMSentinel, nil
	}

	var sum float64
	for _, z := range zones {
		// millidegrees Celsius
		sum += float64(z.Temp) / 1000.0
	}
	return FormatCelsius(sum / float64(len(zones))), nil
}

// FormatCelsius renders a temperature the way the status page shows it.
func FormatCelsius(v float64) string {
	return fmt.Sprintf("%.2f °C", v)
}
