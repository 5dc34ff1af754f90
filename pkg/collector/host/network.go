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

// Network holds interface byte counters summed over every interface.
type Network struct {
	Received uint64 `json:"received" yaml:"received"`
	Sent     uint64 `json:"sent" yaml:"sent"`
}

// Network returns total bytes received and sent since boot.
func (c *Collector) Network(ctx context.Context) (Network, error) {
	if err := ctx.Err(); err != nil {
		return Network{}, errors.Wrap(errors.ErrCodeNetworkUnavailable, "network read canceled", err)
	}

	fs, err := procfs.NewFS(c.ProcRoot)
	if err != nil {
		return Network{}, errors.Wrap(errors.ErrCodeNetworkUnavailable, "failed to open procfs", err)
	}

	dev, err := fs.NetDev()
	if err != nil {
		return Network{}, errors.Wrap(errors.ErrCodeNetworkUnavailable, "failed to read net/dev", err)
	}

	total := dev.Total()
	return Network{Received: total.RxBytes, Sent: total.TxBytes}, nil
}
