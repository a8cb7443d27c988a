// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"runtime"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/regctl/regctl/internal/config"
	"github.com/regctl/regctl/internal/store"
)

var colorFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:    "color",
	Aliases: []string{"c"},
	Usage:   "enable colored text output",
	Value:   false,
}

// colorRequested resolves the color preference. The --color flag wins;
// otherwise a "color: true" key in regctl.yaml opts in.
func colorRequested(flagValue bool) bool {
	if flagValue {
		return true
	}
	b, _ := config.GetBool("color", false)
	return b
}

var quietFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:    "quiet",
	Aliases: []string{"q"},
	Usage:   "only report failures and the summary",
	Value:   false,
}

// NewStoreFlag constructs the --store flag, optionally namespaced to a
// command and config file. params[1] is the config file; when present the
// flag also sources "<cmd>.store" and "store" keys from it.
func NewStoreFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "store",
		Aliases: []string{"s"},
		Usage:   "store spec: winreg:ROOT[\\prefix] or a hive file path",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("REGCTL_STORE"),
		),
		Value: defaultStoreSpec(),
		Validator: func(value string) error {
			_, err := store.ParseSpec(value)
			return err
		},
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// defaultStoreSpec is the live registry on Windows and a local hive file
// everywhere else.
func defaultStoreSpec() string {
	if runtime.GOOS == "windows" {
		return "winreg:HKCU"
	}
	return "regctl.hive.json"
}
