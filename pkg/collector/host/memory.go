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
	"github.com/prometheus/procfs"
)

// Memory is the RAM usage of the host in bytes.
type Memory struct {
	Used  uint64 `json:"used" yaml:"used"`
	Total uint64 `json:"total" yaml:"total"`
}

// Memory returns used (MemTotal - MemAvailable) and total memory.
func (c *Collector) Memory(ctx context.Context) (Memory, error) {
	if err := ctx.Err(); err != nil {
		return Memory{}, errors.Wrap(errors.ErrCodeMemoryUnavailable, "memory read canceled", err)
	}

	fs, err := procfs.NewFS(c.ProcRoot)
	if err != nil {
		return Memory{}, errors.Wrap(errors.ErrCodeMemoryUnavailable, "failed to open procfs", err)
	}

	mi, err := fs.Meminfo()
	if err != nil {
		return Memory{}, errors.Wrap(errors.ErrCodeMemoryUnavailable, "failed to read meminfo", err)
	}
	if mi.MemTotal == nil || mi.MemAvailable == nil {
		return Memory{}, errors.New(errors.ErrCodeMemoryUnavailable, "meminfo lacks MemTotal or MemAvailable")
	}

	// meminfo reports kB
	total := *mi.MemTotal * 1024
	available := *mi.MemAvailable * 1024
	if available > total {
		available = total
	}
	return Memory{Used: total - available, Total: total}, nil
}
