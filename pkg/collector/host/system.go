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
	"log/slog"
	"os"
	"strings"

	"github.com/blastrider/monitor-server/pkg/collector/file"
	"github.com/blastrider/monitor-server/pkg/errors"
)

// Hostname returns the kernel host name.
func (c *Collector) Hostname(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "hostname read canceled", err)
	}

	name, err := c.hostname()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "failed to read hostname", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New(errors.ErrCodeSystemIDUnavailable, "hostname is empty")
	}
	return name, nil
}

// OSRelease returns PRETTY_NAME from the first os-release file that exists.
//
//	NAME="Ubuntu"
//	PRETTY_NAME="Ubuntu 22.04.4 LTS"
func (c *Collector) OSRelease(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "os release read canceled", err)
	}

	path := ""
	for _, p := range c.ReleasePaths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return "", errors.NewWithContext(errors.ErrCodeSystemIDUnavailable, "no os-release file found",
			map[string]any{"paths": c.ReleasePaths})
	}

	params, err := file.NewParser(file.WithTrimQuotes(true)).GetMap(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "failed to read os release", err)
	}

	pretty, ok := params["PRETTY_NAME"]
	if !ok {
		slog.Debug("os-release has no PRETTY_NAME", "path", path)
		return "", errors.NewWithContext(errors.ErrCodeSystemIDUnavailable, "PRETTY_NAME not set",
			map[string]any{"path": path})
	}
	return pretty, nil
}

// Kernel returns the running kernel release, as printed by uname -r.
func (c *Collector) Kernel(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "kernel read canceled", err)
	}

	release, err := kernelRelease()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSystemIDUnavailable, "uname failed", err)
	}
	release = strings.TrimSpace(release)
	if release == "" {
		return "", errors.New(errors.ErrCodeSystemIDUnavailable, "kernel release is empty")
	}
	return release, nil
}
