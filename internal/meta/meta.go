// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"github.com/regctl/regctl/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments and loaded tool configuration.
type Meta struct {
	Args   []string
	Config config.Type
}
