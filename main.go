// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/regctl/regctl/internal/command"
	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// knownCommands are the regctl subcommands; anything else in the command
// position is treated as a settings document for the default "apply".
var knownCommands = map[string]bool{
	"apply": true,
	"get":   true,
	"help":  true,
}

// injectDefaultCommand makes "apply" the default command: a bare invocation
// becomes "regctl apply", and "regctl <document>" becomes
// "regctl apply <document>".
func injectDefaultCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "apply")
	}
	if strings.HasPrefix(args[1], "-") || knownCommands[args[1]] {
		return args
	}
	return append(args[:1], append([]string{"apply"}, args[1:]...)...)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// Document and store failures are fatal before any entry is processed and
// exit 1; a run that reaches the apply loop exits 0 regardless of per-entry
// failures.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 1
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	// If --help appears anywhere, skip command injection and let the CLI
	// handle it.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return initAndRunApp(args)
		}
	}

	args = injectDefaultCommand(args)

	return initAndRunApp(args)
}
