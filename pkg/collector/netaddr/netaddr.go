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

// Package netaddr discovers the host's local and public IPv4 addresses.
package netaddr

import (
	"context"
	"net"
	"strings"

	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/blastrider/monitor-server/pkg/serializer"
)

// DefaultPublicIPURL echoes the caller's public address as plain text.
const DefaultPublicIPURL = "https://api.ipify.org"

// Collector resolves addresses.
type Collector struct {
	PublicIPURL string

	reader     *serializer.HttpReader
	interfaces func() ([]Interface, error)
}

// Interface is the subset of net.Interface the local lookup needs.
type Interface struct {
	Name     string
	Loopback bool
	Addrs    []net.Addr
}

// Option configures a Collector.
type Option func(*Collector)

// WithPublicIPURL sets the echo service queried by PublicIP.
func WithPublicIPURL(url string) Option {
	return func(c *Collector) {
		if url != "" {
			c.PublicIPURL = url
		}
	}
}

// WithReader replaces the HTTP reader used by PublicIP.
func WithReader(r *serializer.HttpReader) Option {
	return func(c *Collector) {
		if r != nil {
			c.reader = r
		}
	}
}

// WithInterfaces replaces interface enumeration.
func WithInterfaces(fn func() ([]Interface, error)) Option {
	return func(c *Collector) {
		if fn != nil {
			c.interfaces = fn
		}
	}
}

// NewCollector returns a Collector for the live host.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		PublicIPURL: DefaultPublicIPURL,
		reader:      serializer.NewHttpReader(serializer.WithMaxBytes(256)),
		interfaces:  systemInterfaces,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func systemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]Interface, 0, len(ifaces))
	for _, ifc := range ifaces {
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		result = append(result, Interface{
			Name:     ifc.Name,
			Loopback: ifc.Flags&net.FlagLoopback != 0,
			Addrs:    addrs,
		})
	}
	return result, nil
}

// LocalIPv4 returns the first IPv4 address of the first non-loopback interface.
func (c *Collector) LocalIPv4(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeNetworkUnavailable, "local address lookup canceled", err)
	}

	ifaces, err := c.interfaces()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetworkUnavailable, "failed to list interfaces", err)
	}

	for _, ifc := range ifaces {
		if ifc.Loopback {
			continue
		}
		for _, addr := range ifc.Addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
				return ip4.String(), nil
			}
		}
	}
	return "", errors.New(errors.ErrCodeNetworkUnavailable, "no non-loopback IPv4 address")
}

// PublicIP returns the address reported by the echo service.
func (c *Collector) PublicIP(ctx context.Context) (string, error) {
	body, err := c.reader.ReadWithContext(ctx, c.PublicIPURL)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeNetworkUnavailable, "public address lookup failed", err,
			map[string]any{"url": c.PublicIPURL})
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", errors.NewWithContext(errors.ErrCodeNetworkUnavailable, "public address lookup returned no address",
			map[string]any{"url": c.PublicIPURL})
	}
	return ip, nil
}
