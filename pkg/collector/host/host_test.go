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

package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	cnserrors "github.com/blastrider/monitor-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netDevFixture = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:    1000      10    0    0    0     0          0         0     1000      10    0    0    0     0       0          0
  eth0:    5000      50    0    0    0     0          0         0     3000      30    0    0    0     0       0          0
`

const meminfoFixture = `MemTotal:       16000000 kB
MemFree:         1000000 kB
MemAvailable:    4000000 kB
Buffers:          200000 kB
`

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func procFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, "meminfo", meminfoFixture)
	writeFixture(t, root, "net/dev", netDevFixture)
	writeFixture(t, root, "uptime", "93784.52 180000.12\n")
	return root
}

func assertCode(t *testing.T, err error, code cnserrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var se *cnserrors.StructuredError
	require.True(t, errors.As(err, &se), "expected StructuredError, got %T", err)
	assert.Equal(t, code, se.Code)
}

func TestCollector_Memory(t *testing.T) {
	c := NewCollector(WithProcRoot(procFixture(t)))

	mem, err := c.Memory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16000000*1024), mem.Total)
	assert.Equal(t, uint64(12000000*1024), mem.Used)
}

func TestCollector_MemoryMissingField(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "meminfo", "MemTotal:       16000000 kB\n")

	_, err := NewCollector(WithProcRoot(root)).Memory(context.Background())
	assertCode(t, err, cnserrors.ErrCodeMemoryUnavailable)
}

func TestCollector_MemoryUnavailable(t *testing.T) {
	c := NewCollector(WithProcRoot(filepath.Join(t.TempDir(), "missing")))

	_, err := c.Memory(context.Background())
	assertCode(t, err, cnserrors.ErrCodeMemoryUnavailable)
}

func TestCollector_Network(t *testing.T) {
	c := NewCollector(WithProcRoot(procFixture(t)))

	net, err := c.Network(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6000), net.Received)
	assert.Equal(t, uint64(4000), net.Sent)
}

func TestCollector_NetworkUnavailable(t *testing.T) {
	_, err := NewCollector(WithProcRoot(t.TempDir())).Network(context.Background())
	assertCode(t, err, cnserrors.ErrCodeNetworkUnavailable)
}

func TestCollector_Uptime(t *testing.T) {
	c := NewCollector(WithProcRoot(procFixture(t)))

	secs, err := c.Uptime(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 93784.52, secs, 0.001)
	assert.Equal(t, "1 days, 2 hours, 3 minutes", FormatUptime(secs))
}

func TestCollector_UptimeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "not a number", content: strPtr("abc 1.0\n")},
		{name: "negative", content: strPtr("-5 1.0\n")},
		{name: "empty", content: strPtr("\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != nil {
				writeFixture(t, root, "uptime", *tt.content)
			}
			_, err := NewCollector(WithProcRoot(root)).Uptime(context.Background())
			assertCode(t, err, cnserrors.ErrCodeUptimeUnavailable)
		})
	}
}

func strPtr(s string) *string { return &s }

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0 days, 0 hours, 0 minutes"},
		{59.9, "0 days, 0 hours, 0 minutes"},
		{3600, "0 days, 1 hours, 0 minutes"},
		{86400*3 + 3600*5 + 60*7 + 30, "3 days, 5 hours, 7 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.secs))
	}
}

func TestCollector_Temperature(t *testing.T) {
	root := t.TempDir()
	for zone, temp := range map[string]string{"thermal_zone0": "45000", "thermal_zone1": "55500"} {
		writeFixture(t, root, filepath.Join("class/thermal", zone, "type"), "x86_pkg_temp\n")
		writeFixture(t, root, filepath.Join("class/thermal", zone, "policy"), "step_wise\n")
		writeFixture(t, root, filepath.Join("class/thermal", zone, "temp"), temp+"\n")
	}

	got, err := NewCollector(WithSysRoot(root)).Temperature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "50.25 °C", got)
}

func TestCollector_TemperatureVM(t *testing.T) {
	t.Run("no thermal zones", func(t *testing.T) {
		got, err := NewCollector(WithSysRoot(t.TempDir())).Temperature(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TemperatureVMSentinel, got)
	})

	t.Run("no sysfs", func(t *testing.T) {
		c := NewCollector(WithSysRoot(filepath.Join(t.TempDir(), "missing")))
		got, err := c.Temperature(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TemperatureVMSentinel, got)
	})
}

func TestCollector_OSRelease(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "etc-os-release")
	fallback := filepath.Join(dir, "usr-lib-os-release")
	writeFixture(t, dir, "usr-lib-os-release", "NAME=\"Debian\"\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\n")

	c := NewCollector(WithReleasePaths(primary, fallback))
	got, err := c.OSRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Debian GNU/Linux 12 (bookworm)", got)

	writeFixture(t, dir, "etc-os-release", "PRETTY_NAME=\"Ubuntu 22.04.4 LTS\"\n")
	got, err = c.OSRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ubuntu 22.04.4 LTS", got)
}

func TestCollector_OSReleaseErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCollector(WithReleasePaths(filepath.Join(dir, "none"))).OSRelease(context.Background())
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)

	writeFixture(t, dir, "os-release", "NAME=\"Ubuntu\"\n")
	_, err = NewCollector(WithReleasePaths(filepath.Join(dir, "os-release"))).OSRelease(context.Background())
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)
}

func TestCollector_Hostname(t *testing.T) {
	c := NewCollector(WithHostnameFunc(func() (string, error) { return " node-1\n", nil }))
	got, err := c.Hostname(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "node-1", got)

	c = NewCollector(WithHostnameFunc(func() (string, error) { return "", errors.New("boom") }))
	_, err = c.Hostname(context.Background())
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)

	c = NewCollector(WithHostnameFunc(func() (string, error) { return "  ", nil }))
	_, err = c.Hostname(context.Background())
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)
}

func TestCollector_Kernel(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("uname is only wired on linux")
	}

	got, err := NewCollector().Kernel(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestCollector_Disk(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("statfs is only wired on linux")
	}

	disk, err := NewCollector(WithDiskPath(t.TempDir())).Disk(context.Background())
	require.NoError(t, err)
	assert.Positive(t, disk.Total)
	assert.LessOrEqual(t, disk.Available, disk.Total)

	_, err = NewCollector(WithDiskPath(filepath.Join(t.TempDir(), "missing"))).Disk(context.Background())
	assertCode(t, err, cnserrors.ErrCodeDiskUnavailable)
}

func TestCollector_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(WithProcRoot(procFixture(t)))

	_, err := c.Memory(ctx)
	assertCode(t, err, cnserrors.ErrCodeMemoryUnavailable)
	_, err = c.Network(ctx)
	assertCode(t, err, cnserrors.ErrCodeNetworkUnavailable)
	_, err = c.Uptime(ctx)
	assertCode(t, err, cnserrors.ErrCodeUptimeUnavailable)
	_, err = c.Temperature(ctx)
	assertCode(t, err, cnserrors.ErrCodeTemperatureUnavailable)
	_, err = c.Disk(ctx)
	assertCode(t, err, cnserrors.ErrCodeDiskUnavailable)
	_, err = c.Hostname(ctx)
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)
	_, err = c.Kernel(ctx)
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)
	_, err = c.OSRelease(ctx)
	assertCode(t, err, cnserrors.ErrCodeSystemIDUnavailable)
}
