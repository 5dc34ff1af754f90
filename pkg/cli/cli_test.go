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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/blastrider/monitor-server/pkg/serializer"
	"github.com/blastrider/monitor-server/pkg/snapshot"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "valid table format", format: "table", wantFormat: serializer.FormatTable},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  formatFlagName,
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestPasswdCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantErr bool
	}{
		{
			name: "password flag",
			args: []string{"passwd", "--user", "alice", "--password", "s3cret", "--cost", "4"},
		},
		{
			name:  "password from stdin",
			args:  []string{"passwd", "--user", "alice", "--cost", "4"},
			stdin: "s3cret\n",
		},
		{
			name:    "empty stdin",
			args:    []string{"passwd", "--user", "alice", "--cost", "4"},
			wantErr: true,
		},
		{
			name:    "username with colon",
			args:    []string{"passwd", "--user", "al:ice", "--password", "s3cret", "--cost", "4"},
			wantErr: true,
		},
		{
			name:    "cost out of range",
			args:    []string{"passwd", "--user", "alice", "--password", "s3cret", "--cost", "99"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := newRootCmd()
			root.Writer = &out
			root.Reader = strings.NewReader(tt.stdin)

			err := root.Run(context.Background(), append([]string{name}, tt.args...))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			user, hash, ok := strings.Cut(strings.TrimSpace(out.String()), ":")
			require.True(t, ok, "output %q", out.String())
			assert.Equal(t, "alice", user)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
		})
	}
}

func TestSnapshotCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("collects from the local host")
	}

	ipServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7"))
	}))
	defer ipServer.Close()

	dir := t.TempDir()
	servicesPath := filepath.Join(dir, "services.toml")
	require.NoError(t, os.WriteFile(servicesPath, []byte("services = []\n"), 0o600))

	t.Setenv("MONITOR_PUBLIC_IP_URL", ipServer.URL)
	t.Setenv("MONITOR_DOCKER_SOCKET", filepath.Join(dir, "missing.sock"))
	t.Setenv("MONITOR_SERVICES_PATH", servicesPath)

	outPath := filepath.Join(dir, "snapshot.json")
	err := newRootCmd().Run(context.Background(), []string{name,
		"--config", filepath.Join(dir, "absent.toml"),
		"snapshot", "--format", "json", "--output", outPath})
	require.NoError(t, err)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var snap snapshot.Snapshot
	require.NoError(t, json.Unmarshal(b, &snap))
	assert.NotEmpty(t, snap.Hostname)
	assert.Equal(t, "203.0.113.7", snap.PublicIP)
	assert.Empty(t, snap.Services)
	assert.Empty(t, snap.Containers)
	assert.Contains(t, snap.Degraded, snapshot.SourceContainers)
}

func TestSnapshotCmdUnknownFormat(t *testing.T) {
	err := newRootCmd().Run(context.Background(), []string{name, "snapshot", "--format", "xml"})
	assert.Error(t, err)
}
