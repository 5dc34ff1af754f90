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

package collector

import (
	"log/slog"

	"github.com/blastrider/monitor-server/pkg/collector/docker"
	"github.com/blastrider/monitor-server/pkg/collector/host"
	"github.com/blastrider/monitor-server/pkg/collector/netaddr"
	"github.com/blastrider/monitor-server/pkg/collector/systemd"
)

const (
	ServiceBackendSystemctl = systemd.BackendSystemctl
	ServiceBackendDBus      = systemd.BackendDBus
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateHostCollector() *host.Collector
	CreateContainerCollector() *docker.Collector
	CreateServiceChecker() *systemd.Checker
	CreateAddressCollector() *netaddr.Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	ProcRoot       string
	SysRoot        string
	DiskPath       string
	DockerSocket   string
	PublicIPURL    string
	ServiceBackend string
}

func WithProcRoot(root string) Option {
	return func(f *DefaultFactory) { f.ProcRoot = root }
}

func WithSysRoot(root string) Option {
	return func(f *DefaultFactory) { f.SysRoot = root }
}

func WithDiskPath(path string) Option {
	return func(f *DefaultFactory) { f.DiskPath = path }
}

func WithDockerSocket(path string) Option {
	return func(f *DefaultFactory) { f.DockerSocket = path }
}

func WithPublicIPURL(url string) Option {
	return func(f *DefaultFactory) { f.PublicIPURL = url }
}

// WithServiceBackend selects systemctl or dbus for service checks.
func WithServiceBackend(backend string) Option {
	return func(f *DefaultFactory) { f.ServiceBackend = backend }
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		ProcRoot:       host.DefaultProcRoot,
		SysRoot:        host.DefaultSysRoot,
		DiskPath:       host.DefaultDiskPath,
		DockerSocket:   docker.DefaultSocket,
		PublicIPURL:    netaddr.DefaultPublicIPURL,
		ServiceBackend: ServiceBackendSystemctl,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateHostCollector creates a host metrics collector.
func (f *DefaultFactory) CreateHostCollector() *host.Collector {
	return host.NewCollector(
		host.WithProcRoot(f.ProcRoot),
		host.WithSysRoot(f.SysRoot),
		host.WithDiskPath(f.DiskPath),
	)
}

// CreateContainerCollector creates a Docker container collector.
func (f *DefaultFactory) CreateContainerCollector() *docker.Collector {
	return docker.NewCollector(f.DockerSocket)
}

// CreateServiceChecker creates a service activation checker for the
// configured backend. Unknown backends fall back to systemctl.
func (f *DefaultFactory) CreateServiceChecker() *systemd.Checker {
	switch f.ServiceBackend {
	case ServiceBackendDBus:
		return systemd.NewChecker(systemd.NewDBusQuerier())
	case ServiceBackendSystemctl, "":
		return systemd.NewChecker(systemd.NewSystemctlQuerier())
	default:
		slog.Warn("unknown service backend, using systemctl", "backend", f.ServiceBackend)
		return systemd.NewChecker(systemd.NewSystemctlQuerier())
	}
}

// CreateAddressCollector creates a local/public address collector.
func (f *DefaultFactory) CreateAddressCollector() *netaddr.Collector {
	return netaddr.NewCollector(netaddr.WithPublicIPURL(f.PublicIPURL))
}
