// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package command wires the regctl CLI: the "apply" command (the default)
// runs a settings document against a store, "get" reads a value back. Flag
// values chain from explicit flags to environment variables to regctl.yaml.
package command
