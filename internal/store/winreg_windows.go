// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package store

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/sys/windows/registry"

	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/settings"
)

var registryRootKeys = map[string]registry.Key{
	"HKLM": registry.LOCAL_MACHINE,
	"HKCU": registry.CURRENT_USER,
	"HKCR": registry.CLASSES_ROOT,
	"HKU":  registry.USERS,
	"HKCC": registry.CURRENT_CONFIG,
}

// regStore writes to the live Windows registry. Elevation is a precondition
// of the run; permission denials surface per entry as ErrWrite.
type regStore struct {
	root     registry.Key
	rootName string
	prefix   string
}

func openRegistry(s Spec) (Store, error) {
	root, ok := registryRootKeys[s.Root]
	if !ok {
		return nil, fmt.Errorf("unknown registry root %q", s.Root)
	}
	log.Debugf("registry store opened: root=%s prefix=%s", s.Root, s.Prefix)
	return &regStore{root: root, rootName: s.Root, prefix: s.Prefix}, nil
}

// full joins the spec prefix and an entry path.
func (r *regStore) full(path string) string {
	segs := splitPath(path)
	if r.prefix != "" {
		segs = append(splitPath(r.prefix), segs...)
	}
	return strings.Join(segs, `\`)
}

func (r *regStore) PathExists(path string) (bool, error) {
	k, err := registry.OpenKey(r.root, r.full(path), registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	k.Close()
	return true, nil
}

func (r *regStore) EnsurePath(path string) (bool, error) {
	// RegCreateKeyEx creates missing intermediate keys in one call.
	k, existing, err := registry.CreateKey(r.root, r.full(path), registry.ALL_ACCESS)
	if err != nil {
		return false, fmt.Errorf("%w: create %s\\%s: %v", ErrWrite, r.rootName, r.full(path), err)
	}
	k.Close()
	return !existing, nil
}

func (r *regStore) SetValue(path, name string, val Value) error {
	k, err := registry.OpenKey(r.root, r.full(path), registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("%w: open %s\\%s: %v", ErrWrite, r.rootName, r.full(path), err)
	}
	defer k.Close()

	tv, err := Decode(val)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	switch tv.Type {
	case settings.TypeDword:
		err = k.SetDWordValue(name, tv.Dword)
	case settings.TypeQword:
		err = k.SetQWordValue(name, tv.Qword)
	case settings.TypeString:
		err = k.SetStringValue(name, tv.Str)
	case settings.TypeExpandString:
		err = k.SetExpandStringValue(name, tv.Str)
	case settings.TypeMultiString:
		err = k.SetStringsValue(name, tv.Strs)
	case settings.TypeBinary:
		err = k.SetBinaryValue(name, tv.Bin)
	default:
		err = fmt.Errorf("unsupported value type %s", tv.Type)
	}
	if err != nil {
		return fmt.Errorf("%w: set %s at %s\\%s: %v", ErrWrite, name, r.rootName, r.full(path), err)
	}
	return nil
}

func (r *regStore) GetValue(path, name string) (Value, bool, error) {
	k, err := registry.OpenKey(r.root, r.full(path), registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return Value{}, false, nil
		}
		return Value{}, false, err
	}
	defer k.Close()

	buf := make([]byte, 64)
	for {
		n, valtype, err := k.GetValue(name, buf)
		if err == nil {
			return Value{Type: settings.ValueType(valtype), Data: buf[:n]}, true, nil
		}
		if errors.Is(err, registry.ErrNotExist) {
			return Value{}, false, nil
		}
		if errors.Is(err, syscall.ERROR_MORE_DATA) {
			buf = make([]byte, n)
			continue
		}
		return Value{}, false, err
	}
}

func (r *regStore) Close() error { return nil }
