// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TypedValue is the tagged union produced by coercing an entry's raw value
// against its resolved type. Exactly one variant field is meaningful, keyed
// by Type.
type TypedValue struct {
	Type  ValueType
	Dword uint32
	Qword uint64
	Str   string
	Strs  []string
	Bin   []byte
}

// Coerce converts a raw decoded document value into the typed form required
// by t. Each tag has its own conversion; there is no cross-tag inference. A
// conversion failure is an entry-level failure.
func Coerce(t ValueType, raw any) (TypedValue, error) {
	switch t {
	case TypeDword:
		return coerceDword(raw)
	case TypeQword:
		return coerceQword(raw)
	case TypeString, TypeExpandString:
		return coerceString(t, raw)
	case TypeMultiString:
		return coerceMultiString(raw)
	case TypeBinary:
		return coerceBinary(raw)
	default:
		return TypedValue{}, fmt.Errorf("unrecognized value type %q", t)
	}
}

// Display renders the logical value for the per-entry report line.
func (v TypedValue) Display() string {
	switch v.Type {
	case TypeDword:
		return fmt.Sprintf("0x%08x (%d)", v.Dword, v.Dword)
	case TypeQword:
		return fmt.Sprintf("0x%016x (%d)", v.Qword, v.Qword)
	case TypeString, TypeExpandString:
		return v.Str
	case TypeMultiString:
		return strings.Join(v.Strs, ", ")
	case TypeBinary:
		// Long payloads are elided; the report adds the byte count.
		if len(v.Bin) > 16 {
			return fmt.Sprintf("% x ...", v.Bin[:16])
		}
		return fmt.Sprintf("% x", v.Bin)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceDword(raw any) (TypedValue, error) {
	n, err := toUint64(raw)
	if err != nil {
		return TypedValue{}, fmt.Errorf("DWord value: %w", err)
	}
	if n > math.MaxUint32 {
		return TypedValue{}, fmt.Errorf("DWord value %d overflows 32 bits", n)
	}
	return TypedValue{Type: TypeDword, Dword: uint32(n)}, nil
}

func coerceQword(raw any) (TypedValue, error) {
	n, err := toUint64(raw)
	if err != nil {
		return TypedValue{}, fmt.Errorf("QWord value: %w", err)
	}
	return TypedValue{Type: TypeQword, Qword: n}, nil
}

func coerceString(t ValueType, raw any) (TypedValue, error) {
	// ExpandString keeps %VAR% references verbatim; expansion happens in the
	// consumer, never at write time.
	switch v := raw.(type) {
	case string:
		return TypedValue{Type: t, Str: v}, nil
	case bool:
		return TypedValue{Type: t, Str: strconv.FormatBool(v)}, nil
	case int:
		return TypedValue{Type: t, Str: strconv.Itoa(v)}, nil
	case int64:
		return TypedValue{Type: t, Str: strconv.FormatInt(v, 10)}, nil
	case float64:
		if v == math.Trunc(v) {
			return TypedValue{Type: t, Str: strconv.FormatInt(int64(v), 10)}, nil
		}
		return TypedValue{Type: t, Str: strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case nil:
		return TypedValue{Type: t, Str: ""}, nil
	default:
		return TypedValue{}, fmt.Errorf("%s value must be text, got %T", t.Tag(), raw)
	}
}

func coerceMultiString(raw any) (TypedValue, error) {
	switch v := raw.(type) {
	case []string:
		return TypedValue{Type: TypeMultiString, Strs: v}, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return TypedValue{}, fmt.Errorf("MultiString element %d is %T, want string", i, item)
			}
			out[i] = s
		}
		return TypedValue{Type: TypeMultiString, Strs: out}, nil
	default:
		return TypedValue{}, fmt.Errorf("MultiString value must be an array of strings, got %T", raw)
	}
}

func coerceBinary(raw any) (TypedValue, error) {
	switch v := raw.(type) {
	case string:
		// Base64 text form, the compact way to carry binary in a document.
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return TypedValue{}, fmt.Errorf("Binary value is not valid base64: %v", err)
		}
		return TypedValue{Type: TypeBinary, Bin: b}, nil
	case []any:
		out := make([]byte, len(v))
		for i, item := range v {
			n, err := toUint64(item)
			if err != nil {
				return TypedValue{}, fmt.Errorf("Binary element %d: %w", i, err)
			}
			if n > math.MaxUint8 {
				return TypedValue{}, fmt.Errorf("Binary element %d (%d) exceeds a byte", i, n)
			}
			out[i] = byte(n)
		}
		return TypedValue{Type: TypeBinary, Bin: out}, nil
	default:
		return TypedValue{}, fmt.Errorf("Binary value must be a numeric array or base64 string, got %T", raw)
	}
}

// toUint64 accepts the numeric shapes the JSON and YAML decoders produce.
func toUint64(raw any) (uint64, error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		if v < 0 {
			return 0, fmt.Errorf("%v is negative", v)
		}
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("%v (%T) is not numeric", raw, raw)
	}
}
