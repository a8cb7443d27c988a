// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/regctl/regctl/internal/apply"
	"github.com/regctl/regctl/internal/fetch"
	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/meta"
	"github.com/regctl/regctl/internal/report"
	"github.com/regctl/regctl/internal/settings"
	"github.com/regctl/regctl/internal/store"
)

// applyCommandAction is the action handler for the "apply" subcommand. It
// loads the settings document, opens the store and runs the apply loop.
// Per-entry failures are tallied, not fatal: only a missing or unparsable
// document (or an unopenable store) returns an error and exits non-zero.
func applyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args)

	src := cmd.Args().First()
	if src == "" {
		var err error
		src, err = settings.DefaultPath()
		if err != nil {
			return err
		}
		log.Debugf("no document argument, using default: src=%s", src)
	}

	data, err := fetch.Document(ctx, src)
	if err != nil {
		return err
	}
	doc, err := settings.Parse(src, data)
	if err != nil {
		return err
	}

	sink := report.NewConsoleSink(os.Stdout, report.ColorEnabled(colorRequested(cmd.Bool("color"))))
	rep := report.New(sink, cmd.Bool("quiet"))

	// Zero entries is a valid no-op, not an error.
	if doc.Empty() {
		rep.NoSettings(src)
		return nil
	}

	st, err := store.Open(cmd.String("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	res := apply.Run(st, doc, rep)
	log.Infof("apply finished: entries=%d succeeded=%d failed=%d",
		len(doc.Entries), res.Succeeded, res.Failed)

	// Run-level success even when individual entries failed; the summary
	// line carries the tallies.
	return nil
}

// applyCommandBuilder constructs the cli.Command for "apply", wiring
// metadata and flags.
func applyCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "apply a settings document to the store",
		UsageText: "regctl apply [document] [options]",
		Flags: []cli.Flag{
			colorFlag,
			quietFlag,
			NewStoreFlag("apply", m.Config.Source),
		},
		Metadata: map[string]any{"meta": m},
		Action:   applyCommandAction,
	}
}
