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
	"fmt"
	"log/slog"
	"time"

	"github.com/blastrider/monitor-server/pkg/collector"
	"github.com/blastrider/monitor-server/pkg/collector/docker"
	"github.com/blastrider/monitor-server/pkg/collector/host"
	"github.com/blastrider/monitor-server/pkg/collector/systemd"
	"github.com/blastrider/monitor-server/pkg/defaults"
	"github.com/blastrider/monitor-server/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSourceTimeout bounds every individual source call.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.Timeout = d
		}
	}
}

// WithServiceNames sets the provider of the service list, called once per
// Collect so configuration changes are picked up without a restart.
func WithServiceNames(fn func() []string) Option {
	return func(a *Aggregator) {
		a.ServiceNames = fn
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// Aggregator builds Snapshots from independent sources. It holds no
// per-request state and is safe for concurrent use.
type Aggregator struct {
	Host       HostSource
	Containers ContainerSource
	Services   ServiceSource
	Addresses  AddressSource

	ServiceNames func() []string
	Timeout      time.Duration

	now func() time.Time
}

// NewAggregator wires an Aggregator to the sources built by f.
func NewAggregator(f collector.Factory, opts ...Option) *Aggregator {
	if f == nil {
		f = collector.NewDefaultFactory()
	}
	return New(
		f.CreateHostCollector(),
		f.CreateContainerCollector(),
		f.CreateServiceChecker(),
		f.CreateAddressCollector(),
		opts...,
	)
}

// New creates an Aggregator over explicit sources.
func New(h HostSource, c ContainerSource, s ServiceSource, a AddressSource, opts ...Option) *Aggregator {
	agg := &Aggregator{
		Host:       h,
		Containers: c,
		Services:   s,
		Addresses:  a,
		Timeout:    defaults.SourceTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(agg)
	}
	return agg
}

// Collect runs every source and returns a fully populated Snapshot.
// It never fails: each source that errors or times out gets its fallback.
func (a *Aggregator) Collect(ctx context.Context, meta Meta) *Snapshot {
	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	slog.Debug("starting host snapshot")

	hs, cs, ss, as := a.sources()

	var (
		hostname, kernel, osRelease outcome[string]
		uptime                      outcome[float64]
		memory                      outcome[host.Memory]
		disk                        outcome[host.Disk]
		network                     outcome[host.Network]
		temperature                 outcome[string]
		containers                  outcome[[]docker.Container]
		localIP, publicIP           outcome[string]
		services                    []systemd.Status
	)

	// Goroutines never return errors; one source cannot cancel another.
	g := new(errgroup.Group)

	g.Go(func() error { hostname = run(ctx, a.Timeout, SourceHostname, hs.Hostname); return nil })
	g.Go(func() error { kernel = run(ctx, a.Timeout, SourceKernel, hs.Kernel); return nil })
	g.Go(func() error { osRelease = run(ctx, a.Timeout, SourceOSRelease, hs.OSRelease); return nil })
	g.Go(func() error { uptime = run(ctx, a.Timeout, SourceUptime, hs.Uptime); return nil })
	g.Go(func() error { memory = run(ctx, a.Timeout, SourceMemory, hs.Memory); return nil })
	g.Go(func() error { disk = run(ctx, a.Timeout, SourceDisk, hs.Disk); return nil })
	g.Go(func() error { network = run(ctx, a.Timeout, SourceNetwork, hs.Network); return nil })
	g.Go(func() error { temperature = run(ctx, a.Timeout, SourceTemperature, hs.Temperature); return nil })
	g.Go(func() error { containers = run(ctx, a.Timeout, SourceContainers, cs.List); return nil })
	g.Go(func() error { localIP = run(ctx, a.Timeout, SourceLocalIP, as.LocalIPv4); return nil })
	g.Go(func() error { publicIP = run(ctx, a.Timeout, SourcePublicIP, as.PublicIP); return nil })
	g.Go(func() error {
		services = a.checkServices(ctx, ss)
		return nil
	})

	_ = g.Wait()

	snap := &Snapshot{
		Hostname:      hostname.or(FallbackHostname),
		KernelVersion: kernel.or(FallbackKernel),
		OSVersion:     osRelease.or(FallbackOS),
		Memory:        memory.or(host.Memory{}),
		Disk:          disk.or(host.Disk{}),
		Network:       network.or(host.Network{}),
		Temperature:   temperature.or(FallbackTemperature),
		Containers:    containers.or(nil),
		Services:      services,
		LocalIP:       localIP.or(FallbackIP),
		PublicIP:      publicIP.or(FallbackIP),
		ForwardedFor:  meta.ForwardedFor,
	}
	if snap.Containers == nil {
		snap.Containers = []docker.Container{}
	}

	snap.Uptime = Uptime{Human: FallbackUptime}
	if uptime.ok {
		snap.Uptime = Uptime{Seconds: uptime.value, Human: host.FormatUptime(uptime.value)}
	}

	snap.Timestamp = a.now().UTC()
	snap.Year = snap.Timestamp.Year()

	// fixed order so snapshots compare equal across calls
	for _, d := range []struct {
		name string
		ok   bool
	}{
		{SourceHostname, hostname.ok},
		{SourceKernel, kernel.ok},
		{SourceOSRelease, osRelease.ok},
		{SourceUptime, uptime.ok},
		{SourceMemory, memory.ok},
		{SourceDisk, disk.ok},
		{SourceNetwork, network.ok},
		{SourceTemperature, temperature.ok},
		{SourceContainers, containers.ok},
		{SourceLocalIP, localIP.ok},
		{SourcePublicIP, publicIP.ok},
	} {
		if !d.ok {
			snap.Degraded = append(snap.Degraded, d.name)
		}
	}
	snapshotDegradedSources.Set(float64(len(snap.Degraded)))

	slog.Debug("snapshot collection complete",
		"duration", time.Since(start),
		"services", len(snap.Services),
		"containers", len(snap.Containers),
		"degraded", snap.Degraded)

	return snap
}

func (a *Aggregator) checkServices(ctx context.Context, ss ServiceSource) (out []systemd.Status) {
	start := time.Now()
	var names []string
	defer func() {
		sourceDuration.WithLabelValues(SourceServices).Observe(time.Since(start).Seconds())
		if p := recover(); p != nil {
			sourceFailures.WithLabelValues(SourceServices, string(errors.ErrCodeInternal)).Inc()
			slog.Warn("service checker panicked, reporting all inactive", "panic", fmt.Sprint(p))
			out = missing{}.Check(ctx, names)
		}
	}()

	if a.ServiceNames != nil {
		names = a.ServiceNames()
	}
	if len(names) == 0 {
		return []systemd.Status{}
	}
	return ss.Check(ctx, names)
}

// sources substitutes unconfigured sources with ones that always fail.
func (a *Aggregator) sources() (HostSource, ContainerSource, ServiceSource, AddressSource) {
	var (
		hs HostSource      = missing{}
		cs ContainerSource = missing{}
		ss ServiceSource   = missing{}
		as AddressSource   = missing{}
	)
	if a.Host != nil {
		hs = a.Host
	}
	if a.Containers != nil {
		cs = a.Containers
	}
	if a.Services != nil {
		ss = a.Services
	}
	if a.Addresses != nil {
		as = a.Addresses
	}
	return hs, cs, ss, as
}

// outcome is the result of one source call.
type outcome[T any] struct {
	value T
	ok    bool
}

func (o outcome[T]) or(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// run calls fn with a per-source deadline. A source that ignores its context
// is abandoned when the deadline passes; its late result is discarded.
func run[T any](ctx context.Context, timeout time.Duration, source string, fn func(context.Context) (T, error)) outcome[T] {
	start := time.Now()
	defer func() {
		sourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}()

	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result{err: errors.NewWithContext(errors.ErrCodeInternal,
					fmt.Sprintf("source panicked: %v", p), map[string]any{"source": source})}
			}
		}()
		v, err := fn(sctx)
		ch <- result{value: v, err: err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-sctx.Done():
		res.err = errors.WrapWithContext(errors.ErrCodeTimeout, "source did not finish in time", sctx.Err(),
			map[string]any{"source": source, "timeout": timeout.String()})
	}

	if res.err != nil {
		code := errors.CodeOf(res.err)
		sourceFailures.WithLabelValues(source, string(code)).Inc()
		slog.Warn("source unavailable, using fallback",
			"source", source,
			"code", code,
			"error", res.err)
		return outcome[T]{}
	}
	return outcome[T]{value: res.value, ok: true}
}

var errNotConfigured = errors.New(errors.ErrCodeUnavailable, "source not configured")

// missing stands in for an unconfigured source.
type missing struct{}

func (missing) Hostname(context.Context) (string, error) { return "", errNotConfigured }
func (missing) Kernel(context.Context) (string, error) { return "", errNotConfigured }
func (missing) OSRelease(context.Context) (string, error) { return "", errNotConfigured }
func (missing) Uptime(context.Context) (float64, error) { return 0, errNotConfigured }
func (missing) Memory(context.Context) (host.Memory, error) { return host.Memory{}, errNotConfigured }
func (missing) Disk(context.Context) (host.Disk, error) { return host.Disk{}, errNotConfigured }
func (missing) Network(context.Context) (host.Network, error) { return host.Network{}, errNotConfigured }
func (missing) Temperature(context.Context) (string, error) { return "", errNotConfigured }
func (missing) List(context.Context) ([]docker.Container, error) { return nil, errNotConfigured }
func (missing) LocalIPv4(context.Context) (string, error) { return "", errNotConfigured }
func (missing) PublicIP(context.Context) (string, error) { return "", errNotConfigured }

func (missing) Check(_ context.Context, names []string) []systemd.Status {
	out := make([]systemd.Status, len(names))
	for i, n := range names {
		out[i] = systemd.Status{Name: n}
	}
	return out
}
