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
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/blastrider/monitor-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDaemon serves handler on a unix socket and returns the socket path.
func fakeDaemon(t *testing.T, handler http.Handler) string {
	t.Helper()

	// unix socket paths are limited to ~108 bytes; t.TempDir can exceed that.
	dir, err := os.MkdirTemp("", "dkr")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sock := filepath.Join(dir, "docker.sock")
	ln, err := net.Listen("unix", sock)
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(handler)
	_ = srv.Listener.Close()
	srv.Listener = ln
	srv.Start()
	t.Cleanup(srv.Close)
	return sock
}

func engineMux(list string, listStatus int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1.41/_ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /v1.41/containers/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("all") != "1" {
			http.Error(w, `{"message":"all not set"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(listStatus)
		_, _ = w.Write([]byte(list))
	})
	return mux
}

func TestCollector_List(t *testing.T) {
	sock := fakeDaemon(t, engineMux(`[
		{"Id":"a1","Image":"nginx:latest","State":"running"},
		{"Id":"b2","Image":"redis:7","State":"exited"}
	]`, http.StatusOK))

	got, err := NewCollector(sock).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Container{
		{Image: "nginx:latest", State: "running"},
		{Image: "redis:7", State: "exited"},
	}, got)
}

func TestCollector_ListEmpty(t *testing.T) {
	sock := fakeDaemon(t, engineMux(`[]`, http.StatusOK))

	got, err := NewCollector(sock).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCollector_ConnectFailure(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "absent.sock")

	_, err := NewCollector(sock).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeContainerConnect, errors.CodeOf(err))
}

func TestCollector_PingRejected(t *testing.T) {
	sock := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := NewCollector(sock).List(context.Background())
	assert.Equal(t, errors.ErrCodeContainerConnect, errors.CodeOf(err))
}

func TestCollector_ListFailure(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "api error", body: `{"message":"daemon busy"}`, status: http.StatusInternalServerError},
		{name: "bad json", body: `not json`, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sock := fakeDaemon(t, engineMux(tt.body, tt.status))

			_, err := NewCollector(sock).List(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeContainerList, errors.CodeOf(err))
		})
	}
}

func TestCollector_CanceledContext(t *testing.T) {
	sock := fakeDaemon(t, engineMux(`[]`, http.StatusOK))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(sock).List(ctx)
	assert.Equal(t, errors.ErrCodeContainerConnect, errors.CodeOf(err))
}

func TestNewCollector_DefaultSocket(t *testing.T) {
	assert.Equal(t, DefaultSocket, NewCollector("").SocketPath)
}
