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

// Package render turns a Snapshot into an HTTP response body.
//
// HTML is rendered from an embedded html/template with sizes humanized and
// states title-cased. JSON and YAML go through pkg/serializer. Every format
// is rendered into a buffer first, so a failure never leaves a partial body
// on the wire.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/blastrider/monitor-server/pkg/serializer"
	"github.com/blastrider/monitor-server/pkg/snapshot"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is a response representation.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed templates/status.html
var templateFS embed.FS

// ContentType returns the media type written for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/html; charset=utf-8"
	}
}

// Negotiate picks the response format: the format query parameter wins,
// then the first recognized Accept media type, then HTML.
func Negotiate(r *http.Request) Format {
	switch Format(strings.ToLower(r.URL.Query().Get("format"))) {
	case FormatJSON:
		return FormatJSON
	case FormatYAML:
		return FormatYAML
	case FormatHTML:
		return FormatHTML
	}

	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mt {
		case "application/json":
			return FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml":
			return FormatYAML
		case "text/html":
			return FormatHTML
		}
	}
	return FormatHTML
}

// Renderer renders snapshots. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded status template.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/status.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse status template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render encodes snap in format f.
func (r *Renderer) Render(f Format, snap *snapshot.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	switch f {
	case FormatJSON:
		return serializer.Marshal(serializer.FormatJSON, snap)
	case FormatYAML:
		return serializer.Marshal(serializer.FormatYAML, snap)
	case FormatHTML:
		var buf bytes.Buffer
		if err := r.tmpl.Execute(&buf, r.view(snap)); err != nil {
			return nil, fmt.Errorf("failed to render status page: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

type serviceView struct {
	Name  string
	State string
	Class string
}

type containerView struct {
	Image string
	State string
}

type pageView struct {
	Hostname, OSVersion, KernelVersion, Uptime, Temperature string
	LocalIP, PublicIP, ForwardedFor                         string
	MemoryUsed, MemoryTotal                                 string
	DiskAvailable, DiskTotal                                string
	NetworkIn, NetworkOut                                   string
	Services                                                []serviceView
	Containers                                              []containerView
	Generated                                               string
	Year                                                    int
}

// A Caser keeps state between calls, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func (r *Renderer) view(s *snapshot.Snapshot) pageView {
	v := pageView{
		Hostname:      s.Hostname,
		OSVersion:     s.OSVersion,
		KernelVersion: s.KernelVersion,
		Uptime:        s.Uptime.Human,
		Temperature:   s.Temperature,
		LocalIP:       s.LocalIP,
		PublicIP:      s.PublicIP,
		ForwardedFor:  s.ForwardedFor,
		MemoryUsed:    humanize.IBytes(s.Memory.Used),
		MemoryTotal:   humanize.IBytes(s.Memory.Total),
		DiskAvailable: humanize.IBytes(s.Disk.Available),
		DiskTotal:     humanize.IBytes(s.Disk.Total),
		NetworkIn:     humanize.IBytes(s.Network.Received),
		NetworkOut:    humanize.IBytes(s.Network.Sent),
		Generated:     s.Timestamp.Format(time.RFC1123),
		Year:          s.Year,
	}
	if v.ForwardedFor == "" {
		v.ForwardedFor = "Unknown"
	}

	for _, svc := range s.Services {
		sv := serviceView{Name: svc.Name, State: "Inactive", Class: "inactive"}
		if svc.Active {
			sv.State, sv.Class = "Active", "active"
		}
		v.Services = append(v.Services, sv)
	}
	for _, c := range s.Containers {
		v.Containers = append(v.Containers, containerView{Image: c.Image, State: titleCase(c.State)})
	}
	return v
}
