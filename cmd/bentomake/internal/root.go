// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Options controls the environment of one invocation.
type Options struct {
	// Dir is the top directory of the package. Defaults to the working
	// directory.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

type globalFlags struct {
	bentoInfo  string
	buildDir   string
	configPath string
	logLevel   string
	verbose    bool
}

func newRootCmd(opts *Options) *cobra.Command {
	var gf globalFlags
	rootCmd := &cobra.Command{
		Use:   "bentomake [global options] <command> [command options]",
		Short: "bentomake configures, builds, installs and packages a bento package",
		Long: `bentomake runs a pipeline of package commands. Running a command first runs
every command it depends on, replaying the arguments they were last run with.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCommand(cmd.Context(), opts, &gf, args[0], args[1:])
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)

	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&gf.bentoInfo, "bento-info", "", "package description file, in the top directory [bento.yaml]")
	pflags.StringVar(&gf.buildDir, "build-dir", "", "build directory [build]")
	pflags.StringVar(&gf.configPath, "config", "", "configuration file")
	pflags.StringVar(&gf.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pflags.BoolVarP(&gf.verbose, "verbose", "v", false, "log command progress")

	rootCmd.AddCommand(newCommandsCmd(opts, &gf))
	rootCmd.SetHelpCommand(newHelpCmd(opts, &gf))
	return rootCmd
}

// Run runs bentomake with args and returns the exit status.
func Run(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	rootCmd := newRootCmd(&opts)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "bentomake: %v\n", err)
	}
	return ExitCode(err)
}

// Execute runs bentomake with the process arguments. It is called by
// main.main().
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Run(ctx, os.Args[1:], Options{})
}
