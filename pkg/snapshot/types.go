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

package snapshot

import (
	"context"
	"time"

	"github.com/blastrider/monitor-server/pkg/collector/docker"
	"github.com/blastrider/monitor-server/pkg/collector/host"
	"github.com/blastrider/monitor-server/pkg/collector/systemd"
)

// Fallback values substituted for failed sources.
const (
	FallbackHostname    = "Unknown"
	FallbackKernel      = "Unknown Kernel"
	FallbackOS          = "Unknown System"
	FallbackUptime      = "Unknown"
	FallbackTemperature = "Unavailable"
	FallbackIP          = "Unknown"
)

// Source names used in logs, metrics and Snapshot.Degraded.
const (
	SourceHostname    = "hostname"
	SourceKernel      = "kernel"
	SourceOSRelease   = "os_release"
	SourceUptime      = "uptime"
	SourceMemory      = "memory"
	SourceDisk        = "disk"
	SourceNetwork     = "network"
	SourceTemperature = "temperature"
	SourceContainers  = "containers"
	SourceServices    = "services"
	SourceLocalIP     = "local_ip"
	SourcePublicIP    = "public_ip"
)

// Uptime is time since boot, raw and formatted.
type Uptime struct {
	Seconds float64 `json:"seconds" yaml:"seconds"`
	Human   string  `json:"human" yaml:"human"`
}

// Snapshot is the status of the host at one instant. Every field is set;
// fields whose source failed hold the fallback value.
type Snapshot struct {
	Hostname      string             `json:"hostname" yaml:"hostname"`
	OSVersion     string             `json:"osVersion" yaml:"osVersion"`
	KernelVersion string             `json:"kernelVersion" yaml:"kernelVersion"`
	Uptime        Uptime             `json:"uptime" yaml:"uptime"`
	Memory        host.Memory        `json:"memory" yaml:"memory"`
	Disk          host.Disk          `json:"disk" yaml:"disk"`
	Network       host.Network       `json:"network" yaml:"network"`
	Temperature   string             `json:"temperature" yaml:"temperature"`
	Containers    []docker.Container `json:"containers" yaml:"containers"`
	Services      []systemd.Status   `json:"services" yaml:"services"`
	LocalIP       string             `json:"localIP" yaml:"localIP"`
	PublicIP      string             `json:"publicIP" yaml:"publicIP"`
	ForwardedFor  string             `json:"forwardedFor" yaml:"forwardedFor"`
	Timestamp     time.Time          `json:"timestamp" yaml:"timestamp"`
	Year          int                `json:"year" yaml:"year"`

	// Degraded lists the sources replaced by fallbacks, in a fixed order.
	Degraded []string `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// Meta carries request-scoped information shown in the snapshot.
type Meta struct {
	// ForwardedFor is the client-supplied X-Forwarded-For value. It is
	// informational and never trusted.
	ForwardedFor string
}

// HostSource reads host metrics. *host.Collector implements it.
type HostSource interface {
	Hostname(ctx context.Context) (string, error)
	Kernel(ctx context.Context) (string, error)
	OSRelease(ctx context.Context) (string, error)
	Uptime(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (host.Memory, error)
	Disk(ctx context.Context) (host.Disk, error)
	Network(ctx context.Context) (host.Network, error)
	Temperature(ctx context.Context) (string, error)
}

// ContainerSource lists containers. *docker.Collector implements it.
type ContainerSource interface {
	List(ctx context.Context) ([]docker.Container, error)
}

// ServiceSource checks service activation. *systemd.Checker implements it.
type ServiceSource interface {
	Check(ctx context.Context, names []string) []systemd.Status
}

// AddressSource resolves addresses. *netaddr.Collector implements it.
type AddressSource interface {
	LocalIPv4(ctx context.Context) (string, error)
	PublicIP(ctx context.Context) (string, error)
}
