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

	"github.com/blastrider/monitor-server/pkg/errors"
)

// Disk is the capacity of one filesystem in bytes.
type Disk struct {
	Available uint64 `json:"available" yaml:"available"`
	Total     uint64 `json:"total" yaml:"total"`
}

// Disk returns the space available to unprivileged users and the total size
// of the filesystem holding DiskPath.
func (c *Collector) Disk(ctx context.Context) (Disk, error) {
	if err := ctx.Err(); err != nil {
		return Disk{}, errors.Wrap(errors.ErrCodeDiskUnavailable, "disk read canceled", err)
	}

	available, total, err := statfs(c.DiskPath)
	if err != nil {
		return Disk{}, errors.WrapWithContext(errors.ErrCodeDiskUnavailable, "statfs failed", err,
			map[string]any{"path": c.DiskPath})
	}
	return Disk{Available: available, Total: total}, nil
}
