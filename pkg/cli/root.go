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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/blastrider/monitor-server/pkg/collector"
	"github.com/blastrider/monitor-server/pkg/config"
	"github.com/blastrider/monitor-server/pkg/logging"
	"github.com/blastrider/monitor-server/pkg/snapshot"
)

const (
	name           = "monitor-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

const (
	configFlagName   = "config"
	logLevelFlagName = "log-level"
)

// Flags are built per command tree; urfave flags carry parse state.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlagName,
			Aliases: []string{"c"},
			Usage:   "Path to the TOML config file",
			Value:   config.DefaultConfigPath,
			Sources: cli.EnvVars("MONITOR_CONFIG"),
		},
		&cli.StringFlag{
			Name:    logLevelFlagName,
			Usage:   "Log level (debug, info, warn, error); overrides log_level from config",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:           name,
		Usage:          "Host status endpoint behind HTTP Basic authentication",
		Version:        fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		DefaultCommand: "serve",
		Flags:          globalFlags(),
		Commands: []*cli.Command{
			serveCmd(),
			snapshotCmd(),
			passwdCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads config for cmd and applies the log level override.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlagName))
	if err != nil {
		return nil, err
	}
	if lvl := cmd.String(logLevelFlagName); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// initLogger installs the default logger, teeing to cfg.LogFile when set.
// The returned func closes the log file.
func initLogger(cfg *config.Config) (func() error, error) {
	w, closeFn, err := logging.OpenFileTee(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	logging.SetDefaultStructuredLoggerWithWriter(w, name, version, cfg.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", cfg.LogLevel)
	return closeFn, nil
}

func newFactory(cfg *config.Config) *collector.DefaultFactory {
	return collector.NewDefaultFactory(
		collector.WithProcRoot(cfg.ProcRoot),
		collector.WithSysRoot(cfg.SysRoot),
		collector.WithDiskPath(cfg.DiskPath),
		collector.WithDockerSocket(cfg.DockerSocket),
		collector.WithPublicIPURL(cfg.PublicIPURL),
		collector.WithServiceBackend(cfg.ServiceBackend),
	)
}

func newAggregator(cfg *config.Config, factory collector.Factory) *snapshot.Aggregator {
	return snapshot.NewAggregator(factory,
		snapshot.WithSourceTimeout(cfg.SourceTimeout),
		snapshot.WithServiceNames(config.ServicesFromFile(cfg.ServicesPath)),
	)
}
