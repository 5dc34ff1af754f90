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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastrider/monitor-server/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerAddress)
	assert.Equal(t, 8550, cfg.ServerPort)
	assert.Equal(t, "/etc/monitor_server/htpasswd", cfg.HtpasswdPath)
	assert.Equal(t, "/etc/monitor_server/services.toml", cfg.ServicesPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendSystemctl, cfg.ServiceBackend)
	assert.Equal(t, 5*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "0.0.0.0:8550", cfg.Addr())
}

func TestDefaultMatchesLoad(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadOverride(t *testing.T) {
	path := writeFile(t, "config.toml", `
server_address = "127.0.0.1"
server_port = 8080
htpasswd_path = "/custom/path/htpasswd"
service_backend = "dbus"
source_timeout = "2s"
rate_limit = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServerAddress)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "/custom/path/htpasswd", cfg.HtpasswdPath)
	assert.Equal(t, BackendDBus, cfg.ServiceBackend)
	assert.Equal(t, 2*time.Second, cfg.SourceTimeout)
	assert.InDelta(t, 3.0, cfg.RateLimit, 0.001)
	// untouched keys keep defaults
	assert.Equal(t, "/etc/monitor_server/services.toml", cfg.ServicesPath)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MONITOR_SERVER_PORT", "9999")
	t.Setenv("MONITOR_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "server_port = = 1"},
		{"bad port", "server_port = 70000"},
		{"bad backend", `service_backend = "upstart"`},
		{"bad timeout", `source_timeout = "0s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
		})
	}
}

func TestLoadServices(t *testing.T) {
	path := writeFile(t, "services.toml", `services = ["ssh", "cron", "nginx", "ssh", " "]`)

	services, err := LoadServices(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ssh", "cron", "nginx", "ssh"}, services)
}

func TestLoadServicesErrors(t *testing.T) {
	_, err := LoadServices("")
	assert.Error(t, err)

	_, err = LoadServices(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
}

func TestServicesFromFileDegrades(t *testing.T) {
	load := ServicesFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	services := load()
	assert.NotNil(t, services)
	assert.Empty(t, services)

	path := writeFile(t, "services.toml", `services = ["docker"]`)
	assert.Equal(t, []string{"docker"}, ServicesFromFile(path)())
}
