// SPDX-License-Identifier: MIT

// Package export persists advisory copies of updated dashboard bodies.
// Export failures never fail a run; callers log them and carry on.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink receives a durable copy of an updated dashboard body and returns
// where it was written.
type Sink interface {
	Write(name string, at time.Time, body []byte) (string, error)
}

// Dir writes one JSON file per annotated dashboard into a base directory.
// Filenames sort chronologically: <timestamp>-<sanitized-name>.json.
type Dir struct {
	Base string
}

func (d Dir) Write(name string, at time.Time, body []byte) (string, error) {
	if d.Base != "" {
		if err := os.MkdirAll(d.Base, 0o755); err != nil {
			return "", err
		}
	}
	filename := fmt.Sprintf("%s-%s.json", at.UTC().Format("20060102T150405Z"), SanitizeName(name))
	path := filepath.Join(d.Base, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SanitizeName turns a dashboard name into a filesystem-safe token: lower
// case, every character outside ASCII [a-z0-9-] replaced with a hyphen.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
