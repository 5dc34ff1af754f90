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

package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/blastrider/monitor-server/pkg/defaults"
	"github.com/blastrider/monitor-server/pkg/errors"
)

const (
	// DefaultSocket is where dockerd listens by default.
	DefaultSocket = "/var/run/docker.sock"

	// apiVersion is the minimum Engine API version this client targets.
	apiVersion = "v1.41"

	maxBodyBytes = 8 << 20
)

// Container is one entry of the daemon's container list.
type Container struct {
	Image string `json:"image" yaml:"image"`
	State string `json:"state" yaml:"state"`
}

// Collector lists containers through the Engine API.
type Collector struct {
	SocketPath string

	client  *http.Client
	baseURL string
}

// NewCollector returns a Collector bound to the unix socket at socketPath.
// An empty path selects DefaultSocket.
func NewCollector(socketPath string) *Collector {
	if socketPath == "" {
		socketPath = DefaultSocket
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: defaults.HTTPConnectTimeout}
			return d.DialContext(ctx, "unix", socketPath)
		},
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConns:          2,
	}

	return &Collector{
		SocketPath: socketPath,
		client: &http.Client{
			Transport: transport,
			Timeout:   defaults.HTTPClientTimeout,
		},
		// The host is ignored on a unix transport but must be non-empty.
		baseURL: "http://localhost/" + apiVersion,
	}
}

// engineContainer is the subset of /containers/json this package reads.
type engineContainer struct {
	ID    string `json:"Id"`
	Image string `json:"Image"`
	State string `json:"State"`
}

// List returns every container, running or not, in the order the daemon
// reports them.
func (c *Collector) List(ctx context.Context) ([]Container, error) {
	if err := c.ping(ctx); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeContainerConnect, "failed to connect to docker daemon", err,
			map[string]any{"socket": c.SocketPath})
	}

	body, err := c.get(ctx, "/containers/json?all=1")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeContainerList, "failed to list containers", err)
	}

	var raw []engineContainer
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeContainerList, "failed to decode container list", err)
	}

	result := make([]Container, 0, len(raw))
	for _, rc := range raw {
		result = append(result, Container{Image: rc.Image, State: rc.State})
	}
	return result, nil
}

func (c *Collector) ping(ctx context.Context) error {
	body, err := c.get(ctx, "/_ping")
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "OK" {
		return fmt.Errorf("unexpected ping response %q", body)
	}
	return nil
}

func (c *Collector) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if err := checkAPIError(resp.StatusCode, body); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return body, nil
}

func checkAPIError(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	var apiErr struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("docker: %s", apiErr.Message)
		}
	}
	return fmt.Errorf("docker: unexpected status %d", statusCode)
}
