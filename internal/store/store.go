// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/regctl/regctl/internal/settings"
)

// ErrWrite categorizes path-creation and value-write failures. It wraps the
// underlying platform error and is local to a single entry: the apply loop
// reports it and moves on.
var ErrWrite = errors.New("store write failure")

// Value is a typed value in registry wire form: the numeric type tag plus
// the raw data bytes as the store persists them.
type Value struct {
	Type settings.ValueType
	Data []byte
}

// Store is the contract over a hierarchical typed value store. Paths are
// backslash-separated and matched case-insensitively, case-preserving on
// create. Value names match case-insensitively as well.
type Store interface {
	// PathExists reports whether the path is present. Absence is (false, nil);
	// an error from the underlying check propagates and the caller treats it
	// as an entry failure.
	PathExists(path string) (bool, error)

	// EnsurePath creates the path and all missing intermediate levels.
	// Idempotent: created is false when the path was already present.
	EnsurePath(path string) (created bool, err error)

	// SetValue writes a typed value at path/name, overwriting any existing
	// value of any type.
	SetValue(path, name string, val Value) error

	// GetValue reads a value back. found is false when the path or name is
	// absent.
	GetValue(path, name string) (val Value, found bool, err error)

	Close() error
}

// Spec is a parsed store spec from the --store flag.
type Spec struct {
	// Registry is true for "winreg:" specs addressing the live registry.
	Registry bool

	// Root is the registry root key short name (HKLM, HKCU, HKCR, HKU,
	// HKCC). Registry specs only.
	Root string

	// Prefix is an optional subpath under Root prepended to every entry
	// path. Registry specs only.
	Prefix string

	// Path is the hive file location. File specs only.
	Path string
}

// registry root aliases accepted in specs, long and short forms.
var registryRoots = map[string]string{
	"HKLM": "HKLM", "HKEY_LOCAL_MACHINE": "HKLM",
	"HKCU": "HKCU", "HKEY_CURRENT_USER": "HKCU",
	"HKCR": "HKCR", "HKEY_CLASSES_ROOT": "HKCR",
	"HKU": "HKU", "HKEY_USERS": "HKU",
	"HKCC": "HKCC", "HKEY_CURRENT_CONFIG": "HKCC",
}

// ParseSpec parses a store spec string. "winreg:ROOT[\prefix]" addresses the
// live registry; anything else is a hive file path.
func ParseSpec(spec string) (Spec, error) {
	if spec == "" {
		return Spec{}, errors.New("empty store spec")
	}

	rest, ok := strings.CutPrefix(spec, "winreg:")
	if !ok {
		return Spec{Path: spec}, nil
	}

	// Split the root from an optional subpath prefix.
	rootPart, prefix, _ := strings.Cut(rest, `\`)
	root, ok := registryRoots[strings.ToUpper(rootPart)]
	if !ok {
		return Spec{}, fmt.Errorf("unknown registry root %q in store spec %q", rootPart, spec)
	}

	return Spec{
		Registry: true,
		Root:     root,
		Prefix:   strings.Trim(prefix, `\`),
	}, nil
}

// Open opens the store a spec addresses. Registry specs are only available
// on Windows builds.
func Open(spec string) (Store, error) {
	s, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	if s.Registry {
		return openRegistry(s)
	}
	return OpenHiveFile(s.Path)
}

// splitPath breaks a backslash-separated store path into its segments,
// dropping empty runs so "A\\\\B" and trailing separators are tolerated.
func splitPath(path string) []string {
	parts := strings.Split(path, `\`)
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}
