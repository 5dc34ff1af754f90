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
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blastrider/monitor-server/pkg/defaults"
	"github.com/blastrider/monitor-server/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides (MONITOR_SERVER_PORT, ...).
const EnvPrefix = "MONITOR"

// DefaultConfigPath is where serve looks for a config file when none is given.
const DefaultConfigPath = "/etc/monitor_server/config.toml"

// Service manager backends.
const (
	BackendSystemctl = "systemctl"
	BackendDBus      = "dbus"
)

// Config holds process configuration.
type Config struct {
	ServerAddress string `mapstructure:"server_address"`
	ServerPort    int    `mapstructure:"server_port"`

	HtpasswdPath string `mapstructure:"htpasswd_path"`
	ServicesPath string `mapstructure:"services_path"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	DockerSocket   string        `mapstructure:"docker_socket"`
	PublicIPURL    string        `mapstructure:"public_ip_url"`
	ServiceBackend string        `mapstructure:"service_backend"`
	SourceTimeout  time.Duration `mapstructure:"source_timeout"`
	DiskPath       string        `mapstructure:"disk_path"`
	ProcRoot       string        `mapstructure:"proc_root"`
	SysRoot        string        `mapstructure:"sys_root"`

	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerAddress, strconv.Itoa(c.ServerPort))
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return errors.NewWithContext(errors.ErrCodeConfigInvalid, "server_port out of range",
			map[string]any{"server_port": c.ServerPort})
	}
	if strings.TrimSpace(c.HtpasswdPath) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "htpasswd_path is required")
	}
	switch c.ServiceBackend {
	case BackendSystemctl, BackendDBus:
	default:
		return errors.NewWithContext(errors.ErrCodeConfigInvalid, "unknown service_backend",
			map[string]any{"service_backend": c.ServiceBackend})
	}
	if c.SourceTimeout <= 0 {
		return errors.NewWithContext(errors.ErrCodeConfigInvalid, "source_timeout must be positive",
			map[string]any{"source_timeout": c.SourceTimeout.String()})
	}
	if c.RateLimit <= 0 || c.RateLimitBurst <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "rate_limit and rate_limit_burst must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_address", "0.0.0.0")
	v.SetDefault("server_port", 8550)
	v.SetDefault("htpasswd_path", "/etc/monitor_server/htpasswd")
	v.SetDefault("services_path", "/etc/monitor_server/services.toml")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("docker_socket", "/var/run/docker.sock")
	v.SetDefault("public_ip_url", "https://api.ipify.org")
	v.SetDefault("service_backend", BackendSystemctl)
	v.SetDefault("source_timeout", defaults.SourceTimeout)
	v.SetDefault("disk_path", "/")
	v.SetDefault("proc_root", "/proc")
	v.SetDefault("sys_root", "/sys")
	v.SetDefault("rate_limit", 10.0)
	v.SetDefault("rate_limit_burst", 20)
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// defaults are static; failure here is a programming error
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from path (TOML) layered over defaults and env.
// An empty path or a missing file yields defaults plus env overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to stat config file", err)
			}
			slog.Debug("config file not found, using defaults", "path", path)
		} else {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeConfigInvalid,
					"failed to read config file", err, map[string]any{"path": path})
			}
			slog.Debug("loaded config file", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
