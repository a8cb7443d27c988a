// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"strings"
)

// ValueType enumerates the registry value types regctl can write. The
// numbering aligns with the Windows definitions so stores can persist the
// tag directly.
type ValueType uint32

const (
	TypeString       ValueType = 1  // REG_SZ
	TypeExpandString ValueType = 2  // REG_EXPAND_SZ
	TypeBinary       ValueType = 3  // REG_BINARY
	TypeDword        ValueType = 4  // REG_DWORD
	TypeMultiString  ValueType = 7  // REG_MULTI_SZ
	TypeQword        ValueType = 11 // REG_QWORD
)

// String implements the Stringer interface for ValueType.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "REG_SZ"
	case TypeExpandString:
		return "REG_EXPAND_SZ"
	case TypeBinary:
		return "REG_BINARY"
	case TypeDword:
		return "REG_DWORD"
	case TypeMultiString:
		return "REG_MULTI_SZ"
	case TypeQword:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// Tag returns the document-facing tag for the type ("DWord", "String", ...).
func (t ValueType) Tag() string {
	switch t {
	case TypeString:
		return "String"
	case TypeExpandString:
		return "ExpandString"
	case TypeBinary:
		return "Binary"
	case TypeDword:
		return "DWord"
	case TypeMultiString:
		return "MultiString"
	case TypeQword:
		return "QWord"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// ParseType resolves a document type tag to a ValueType. Matching is
// case-insensitive and an empty tag defaults to String. An unrecognized tag
// is an error the caller reports against the single entry carrying it, not
// against the document.
func ParseType(tag string) (ValueType, error) {
	switch strings.ToLower(tag) {
	case "", "string", "sz":
		return TypeString, nil
	case "expandstring", "expand_sz":
		return TypeExpandString, nil
	case "binary":
		return TypeBinary, nil
	case "dword":
		return TypeDword, nil
	case "multistring", "multi_sz":
		return TypeMultiString, nil
	case "qword":
		return TypeQword, nil
	default:
		return 0, fmt.Errorf("unrecognized value type %q", tag)
	}
}
