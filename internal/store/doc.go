// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package store abstracts the hierarchical typed value store regctl writes
// to. Two backends exist: a portable JSON hive file, and the live Windows
// registry (build-tagged). Values travel in registry wire form, a type tag
// plus raw little-endian/UTF-16LE data bytes.
package store
