// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package config loads regctl's own optional YAML configuration from the
// user config directory (or REGCTL_CFG_FILE) and exposes dotted-path typed
// getters. It configures the tool itself; the settings documents that regctl
// applies are handled by the settings package.
package config
