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

	"github.com/blastrider/monitor-server/pkg/defaults"
	"github.com/blastrider/monitor-server/pkg/serializer"
	"github.com/blastrider/monitor-server/pkg/snapshot"
)

const (
	outputFlagName = "output"
	formatFlagName = "format"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    outputFlagName,
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    formatFlagName,
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (%v)", serializer.SupportedFormats()),
		Value:   string(serializer.FormatJSON),
	}
}

// parseOutputFormat validates the --format flag value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(formatFlagName))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Collect one status snapshot",
		Description: `Collect the same snapshot GET /status serves, without starting a server
or checking credentials. Failing sources degrade to their fallback values
and are listed under "degraded".

# Examples

Print as JSON:
  monitor-server snapshot

Write a table to a file:
  monitor-server snapshot --format table --output status.txt`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall collection timeout",
				Value: defaults.CLISnapshotTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			closeLog, err := initLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			collectCtx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			snap := newAggregator(cfg, newFactory(cfg)).Collect(collectCtx, snapshot.Meta{})
			if len(snap.Degraded) > 0 {
				slog.Warn("snapshot degraded", "sources", snap.Degraded)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String(outputFlagName))
			defer func() {
				if cerr := w.Close(); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			return w.Serialize(ctx, snap)
		},
	}
}
