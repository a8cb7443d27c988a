// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package settings models the declarative settings document regctl applies:
// an ordered list of path/name/value/type entries, loaded from JSON or YAML.
// Entry values are represented as a tagged union keyed by the registry value
// type, with one explicit conversion per tag.
package settings
