// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package store

import "errors"

// openRegistry is only available on Windows builds. Other platforms use the
// hive file backend.
func openRegistry(Spec) (Store, error) {
	return nil, errors.New("winreg: store requires a Windows build; use a hive file path instead")
}
