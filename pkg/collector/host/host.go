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
	"os"
	"path/filepath"

	"github.com/prometheus/procfs"
)

const (
	// DefaultProcRoot is the procfs mount point.
	DefaultProcRoot = procfs.DefaultMountPoint
	// DefaultSysRoot is the sysfs mount point.
	DefaultSysRoot = "/sys"
	// DefaultDiskPath is the filesystem reported by Disk.
	DefaultDiskPath = "/"
)

// Option configures a Collector.
type Option func(*Collector)

// Collector reads host metrics. The zero value is not usable, use NewCollector.
type Collector struct {
	ProcRoot     string
	SysRoot      string
	DiskPath     string
	ReleasePaths []string

	hostname func() (string, error)
}

// WithProcRoot sets the procfs root.
func WithProcRoot(root string) Option {
	return func(c *Collector) {
		if root != "" {
			c.ProcRoot = root
		}
	}
}

// WithSysRoot sets the sysfs root.
func WithSysRoot(root string) Option {
	return func(c *Collector) {
		if root != "" {
			c.SysRoot = root
		}
	}
}

// WithDiskPath sets the path whose filesystem Disk reports.
func WithDiskPath(path string) Option {
	return func(c *Collector) {
		if path != "" {
			c.DiskPath = path
		}
	}
}

// WithReleasePaths overrides the os-release lookup order.
func WithReleasePaths(paths ...string) Option {
	return func(c *Collector) {
		if len(paths) > 0 {
			c.ReleasePaths = paths
		}
	}
}

// WithHostnameFunc replaces os.Hostname.
func WithHostnameFunc(fn func() (string, error)) Option {
	return func(c *Collector) {
		if fn != nil {
			c.hostname = fn
		}
	}
}

// NewCollector creates a Collector reading the live system unless overridden.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		ProcRoot: DefaultProcRoot,
		SysRoot:  DefaultSysRoot,
		DiskPath: DefaultDiskPath,
		// Per os-release(5), /usr/lib/os-release is read when /etc/os-release is absent.
		ReleasePaths: []string{
			filepath.Join("/etc", "os-release"),
			filepath.Join("/usr/lib", "os-release"),
		},
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
