// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/regctl/regctl/internal/settings"
)

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// Encode converts a coerced typed value into registry wire form: DWORD and
// QWORD as fixed-width little-endian, strings as NUL-terminated UTF-16LE,
// multi-strings double-terminated, binary as-is.
func Encode(v settings.TypedValue) (Value, error) {
	switch v.Type {
	case settings.TypeDword:
		data := make([]byte, 4)
		binary.LittleEndian.PutUint32(data, v.Dword)
		return Value{Type: v.Type, Data: data}, nil
	case settings.TypeQword:
		data := make([]byte, 8)
		binary.LittleEndian.PutUint64(data, v.Qword)
		return Value{Type: v.Type, Data: data}, nil
	case settings.TypeString, settings.TypeExpandString:
		data, err := encodeUTF16LE(v.Str)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: v.Type, Data: data}, nil
	case settings.TypeMultiString:
		var data []byte
		for _, s := range v.Strs {
			b, err := encodeUTF16LE(s)
			if err != nil {
				return Value{}, err
			}
			data = append(data, b...)
		}
		// List terminator.
		data = append(data, 0, 0)
		return Value{Type: v.Type, Data: data}, nil
	case settings.TypeBinary:
		return Value{Type: v.Type, Data: v.Bin}, nil
	default:
		return Value{}, fmt.Errorf("cannot encode value type %s", v.Type)
	}
}

// Decode converts wire form back into the tagged union, for read-back and
// display.
func Decode(val Value) (settings.TypedValue, error) {
	switch val.Type {
	case settings.TypeDword:
		if len(val.Data) != 4 {
			return settings.TypedValue{}, fmt.Errorf("REG_DWORD data is %d bytes, want 4", len(val.Data))
		}
		return settings.TypedValue{Type: val.Type, Dword: binary.LittleEndian.Uint32(val.Data)}, nil
	case settings.TypeQword:
		if len(val.Data) != 8 {
			return settings.TypedValue{}, fmt.Errorf("REG_QWORD data is %d bytes, want 8", len(val.Data))
		}
		return settings.TypedValue{Type: val.Type, Qword: binary.LittleEndian.Uint64(val.Data)}, nil
	case settings.TypeString, settings.TypeExpandString:
		s, err := decodeUTF16LE(val.Data)
		if err != nil {
			return settings.TypedValue{}, err
		}
		return settings.TypedValue{Type: val.Type, Str: strings.TrimRight(s, "\x00")}, nil
	case settings.TypeMultiString:
		s, err := decodeUTF16LE(val.Data)
		if err != nil {
			return settings.TypedValue{}, err
		}
		var strs []string
		for _, part := range strings.Split(strings.TrimRight(s, "\x00"), "\x00") {
			if part != "" {
				strs = append(strs, part)
			}
		}
		return settings.TypedValue{Type: val.Type, Strs: strs}, nil
	case settings.TypeBinary:
		return settings.TypedValue{Type: val.Type, Bin: val.Data}, nil
	default:
		return settings.TypedValue{}, fmt.Errorf("cannot decode value type %s", val.Type)
	}
}

// encodeUTF16LE converts a string to UTF-16LE with a NUL terminator.
func encodeUTF16LE(s string) ([]byte, error) {
	b, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("UTF-16 encode: %v", err)
	}
	return append(b, 0, 0), nil
}

// decodeUTF16LE converts UTF-16LE bytes (terminators included) to a string.
func decodeUTF16LE(b []byte) (string, error) {
	out, err := utf16LE.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("UTF-16 decode: %v", err)
	}
	return string(out), nil
}
