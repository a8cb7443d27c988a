// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/settings"
)

// hiveFormat tags the on-disk document so future layout changes can be
// detected on open.
const hiveFormat = "regctl-hive/1"

// hiveDoc is the on-disk shape of a hive file: a format tag and a key tree.
type hiveDoc struct {
	Format string    `json:"format"`
	Root   *hiveNode `json:"root"`
}

// hiveNode is one key: child keys plus named typed values. Data bytes are
// base64 in the document, courtesy of encoding/json.
type hiveNode struct {
	Keys   map[string]*hiveNode `json:"keys,omitempty"`
	Values map[string]hiveValue `json:"values,omitempty"`
}

type hiveValue struct {
	Type uint32 `json:"type"`
	Data []byte `json:"data"`
}

// HiveFile is the portable file-backed store: a JSON key tree persisted
// atomically on every mutation. A missing file opens as an empty store; the
// first mutation materializes it. Reads walk the raw document; mutations
// decode, edit and rewrite it, so nothing stays open between operations.
type HiveFile struct {
	path string
	raw  []byte
}

// OpenHiveFile opens (or virtually creates) the hive file at path.
func OpenHiveFile(path string) (*HiveFile, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debugf("hive file absent, starting empty: path=%s", path)
		raw, _ = json.Marshal(hiveDoc{Format: hiveFormat, Root: &hiveNode{}})
		return &HiveFile{path: path, raw: raw}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open hive file %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("hive file %s is not valid JSON", path)
	}
	if f := gjson.GetBytes(raw, "format"); f.String() != hiveFormat {
		return nil, fmt.Errorf("hive file %s has unsupported format %q", path, f.String())
	}
	return &HiveFile{path: path, raw: raw}, nil
}

// PathExists walks the raw document segment by segment, matching child keys
// case-insensitively.
func (h *HiveFile) PathExists(path string) (bool, error) {
	_, ok := h.lookup(path)
	return ok, nil
}

// EnsurePath creates the path and any missing intermediate keys, preserving
// the case given on first creation.
func (h *HiveFile) EnsurePath(path string) (bool, error) {
	doc, err := h.decode()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	created := false
	node := doc.Root
	for _, seg := range splitPath(path) {
		if node.Keys == nil {
			node.Keys = map[string]*hiveNode{}
		}
		name, ok := findFold(node.Keys, seg)
		if !ok {
			node.Keys[seg] = &hiveNode{}
			name = seg
			created = true
		}
		node = node.Keys[name]
	}

	if !created {
		return false, nil
	}
	if err := h.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// SetValue overwrites the named value at path regardless of its previous
// type. The path must already exist.
func (h *HiveFile) SetValue(path, name string, val Value) error {
	doc, err := h.decode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	node := doc.Root
	for _, seg := range splitPath(path) {
		key, ok := findFold(node.Keys, seg)
		if !ok {
			return fmt.Errorf("%w: path %s not found", ErrWrite, path)
		}
		node = node.Keys[key]
	}

	if node.Values == nil {
		node.Values = map[string]hiveValue{}
	}
	// Drop a case-variant of the same name before writing.
	if existing, ok := findFold(node.Values, name); ok && existing != name {
		delete(node.Values, existing)
	}
	node.Values[name] = hiveValue{Type: uint32(val.Type), Data: val.Data}

	return h.save(doc)
}

// GetValue reads a value back from the raw document.
func (h *HiveFile) GetValue(path, name string) (Value, bool, error) {
	node, ok := h.lookup(path)
	if !ok {
		return Value{}, false, nil
	}

	var found gjson.Result
	node.Get("values").ForEach(func(key, value gjson.Result) bool {
		if strings.EqualFold(key.String(), name) {
			found = value
			return false
		}
		return true
	})
	if !found.Exists() {
		return Value{}, false, nil
	}

	data, err := base64.StdEncoding.DecodeString(found.Get("data").String())
	if err != nil {
		return Value{}, false, fmt.Errorf("hive file value %s\\%s: %v", path, name, err)
	}
	return Value{
		Type: settings.ValueType(found.Get("type").Uint()),
		Data: data,
	}, true, nil
}

func (h *HiveFile) Close() error { return nil }

// lookup walks the raw JSON to the node for path, case-insensitively.
func (h *HiveFile) lookup(path string) (gjson.Result, bool) {
	current := gjson.GetBytes(h.raw, "root")
	for _, seg := range splitPath(path) {
		var next gjson.Result
		current.Get("keys").ForEach(func(key, value gjson.Result) bool {
			if strings.EqualFold(key.String(), seg) {
				next = value
				return false
			}
			return true
		})
		if !next.Exists() {
			return gjson.Result{}, false
		}
		current = next
	}
	return current, true
}

// decode unmarshals the raw document into the mutable tree form.
func (h *HiveFile) decode() (*hiveDoc, error) {
	var doc hiveDoc
	if err := json.Unmarshal(h.raw, &doc); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		doc.Root = &hiveNode{}
	}
	return &doc, nil
}

// save serializes the tree and replaces the file atomically, then refreshes
// the raw snapshot reads walk.
func (h *HiveFile) save(doc *hiveDoc) error {
	doc.Format = hiveFormat
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tempPath := h.path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tempPath, h.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	h.raw = raw
	return nil
}

// findFold returns the stored key matching name case-insensitively.
func findFold[V any](m map[string]V, name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}
	for k := range m {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}
