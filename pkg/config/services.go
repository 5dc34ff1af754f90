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
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/blastrider/monitor-server/pkg/errors"
)

// LoadServices reads the ordered service list from the `services` key of a
// TOML file. Order is preserved and duplicates are kept.
func LoadServices(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "services path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfigInvalid,
			"failed to read services file", err, map[string]any{"path": path})
	}

	var doc struct {
		Services []string `mapstructure:"services"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfigInvalid,
			"failed to decode services file", err, map[string]any{"path": path})
	}

	out := make([]string, 0, len(doc.Services))
	for _, s := range doc.Services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// ServicesFromFile returns a loader that reads path on every call and
// degrades to an empty list, logging a warning, when the file is unusable.
func ServicesFromFile(path string) func() []string {
	return func() []string {
		services, err := LoadServices(path)
		if err != nil {
			slog.Warn("failed to load services list", "path", path, "error", err)
			return []string{}
		}
		return services
	}
}
