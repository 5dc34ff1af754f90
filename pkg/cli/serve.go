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

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/blastrider/monitor-server/pkg/credential"
	"github.com/blastrider/monitor-server/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the authenticated status endpoint",
		Description: `Run the HTTP server. Configuration is layered: built-in defaults,
then the TOML config file, then MONITOR_* environment variables, then flags.

The credential file is read once at startup; a missing or unreadable file
is fatal. The services file is re-read on every /status request.

# Examples

Serve with the default config:
  monitor-server serve

Override the listen port:
  monitor-server serve --port 9000`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address; overrides server_address",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port; overrides server_port",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.IsSet("address") {
				cfg.ServerAddress = cmd.String("address")
			}
			if cmd.IsSet("port") {
				cfg.ServerPort = int(cmd.Int("port"))
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			closeLog, err := initLogger(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeLog(); cerr != nil {
					slog.Warn("failed to close log file", "error", cerr)
				}
			}()

			store, err := credential.Load(cfg.HtpasswdPath)
			if err != nil {
				return fmt.Errorf("failed to load credentials: %w", err)
			}
			slog.Info("credentials loaded", "path", cfg.HtpasswdPath, "users", store.Len())

			factory := newFactory(cfg)

			srvCfg := server.NewConfig()
			srvCfg.Name = name
			srvCfg.Version = version
			srvCfg.Address = cfg.ServerAddress
			srvCfg.Port = cfg.ServerPort
			srvCfg.RateLimit = rate.Limit(cfg.RateLimit)
			srvCfg.RateLimitBurst = cfg.RateLimitBurst

			srv, err := server.New(
				server.WithConfig(srvCfg),
				server.WithVerifier(store),
				server.WithAggregator(newAggregator(cfg, factory)),
				server.WithServiceChecker(factory.CreateServiceChecker()),
			)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Run(ctx)
		},
	}
}
