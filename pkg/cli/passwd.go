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
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/blastrider/monitor-server/pkg/credential"
)

func passwdCmd() *cli.Command {
	return &cli.Command{
		Name:  "passwd",
		Usage: "Print a bcrypt credential line for the htpasswd file",
		Description: `Hash a password with bcrypt and print "username:hash". Append the output
to the file named by htpasswd_path. Without --password the first line of
stdin is read, so the password stays out of shell history.

# Examples

  echo -n secret | monitor-server passwd --user alice >> /etc/monitor_server/htpasswd`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Username",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Password (default: read from stdin)",
			},
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost",
				Value: bcrypt.DefaultCost,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			password := cmd.String("password")
			if !cmd.IsSet("password") {
				line, err := readLine(cmd)
				if err != nil {
					return err
				}
				password = line
			}
			if password == "" {
				return fmt.Errorf("password is empty")
			}

			cost := int(cmd.Int("cost"))
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
			}

			hash, err := credential.HashPassword(password, cost)
			if err != nil {
				return err
			}
			record, err := credential.FormatRecord(cmd.String("user"), hash)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, record)
			return err
		},
	}
}

func readLine(cmd *cli.Command) (string, error) {
	scanner := bufio.NewScanner(cmd.Root().Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
