// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/meta"
	"github.com/regctl/regctl/internal/store"
)

// getCommandAction reads one value back from the store and prints it with
// its resolved type.
func getCommandAction(_ context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args)

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected 2 arguments, got %d\nUsage: %s", cmd.Args().Len(), cmd.UsageText)
	}
	path := cmd.Args().Get(0)
	name := cmd.Args().Get(1)

	st, err := store.Open(cmd.String("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	val, found, err := st.GetValue(path, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("value %s\\%s not found", path, name)
	}

	tv, err := store.Decode(val)
	if err != nil {
		return err
	}

	fmt.Printf("%s\\%s = %s [%s]\n", path, name, tv.Display(), tv.Type)
	return nil
}

// getCommandBuilder constructs the cli.Command for "get".
func getCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a value back from the store",
		UsageText: "regctl get <path> <name> [options]",
		Flags: []cli.Flag{
			NewStoreFlag("get", m.Config.Source),
		},
		Metadata: map[string]any{"meta": m},
		Action:   getCommandAction,
	}
}
