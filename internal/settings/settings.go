// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/regctl/regctl/internal/log"
)

// DefaultFilename is the document regctl looks for next to its own
// executable when no document argument is given.
const DefaultFilename = "settings.json"

var (
	// ErrNotFound indicates the settings document does not exist. Fatal to
	// the run; nothing is applied.
	ErrNotFound = errors.New("settings document not found")

	// ErrParse indicates the settings document exists but could not be
	// parsed. Fatal to the run; nothing is applied.
	ErrParse = errors.New("settings document parse failure")
)

// Entry is one desired path/name/value/type assignment. Type stays a raw tag
// here so a document with one bad tag still parses; the tag is resolved per
// entry during the apply loop.
type Entry struct {
	Path        string `json:"path" yaml:"path"`
	Name        string `json:"name" yaml:"name"`
	Value       any    `json:"value" yaml:"value"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks the entry invariants that hold regardless of value type.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Path) == "" {
		return errors.New("entry has an empty path")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("entry has an empty name")
	}
	return nil
}

// Document is a parsed settings document. Entries preserve file order, which
// is also application and reporting order.
type Document struct {
	Source  string
	Entries []Entry
}

// Empty reports whether the document has no entries to apply. An empty
// document is a valid no-op, not an error.
func (d *Document) Empty() bool {
	return len(d.Entries) == 0
}

// Load reads and parses the settings document at path. A missing file maps
// to ErrNotFound, a malformed one to ErrParse with the underlying parser
// message preserved.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return Parse(path, data)
}

// Parse parses raw document bytes. The format is chosen by the source's
// extension: .yaml/.yml parse as YAML, everything else as JSON.
func Parse(source string, data []byte) (*Document, error) {
	var envelope struct {
		Settings []Entry `json:"settings" yaml:"settings"`
	}

	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &envelope)
	default:
		err = json.Unmarshal(data, &envelope)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	log.Debugf("document parsed: source=%s entries=%d", source, len(envelope.Settings))
	return &Document{Source: source, Entries: envelope.Settings}, nil
}

// DefaultPath returns the default document location: DefaultFilename in the
// directory holding the regctl executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), DefaultFilename), nil
}
