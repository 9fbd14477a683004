// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goplus/bento/commands"
	"github.com/spf13/cobra"
)

// runCommand runs the package command name. Without arguments the
// command replays the ones it was last run with.
func runCommand(ctx context.Context, opts *Options, gf *globalFlags, name string, argv []string) error {
	s, err := openSession(opts, gf, true)
	if err != nil {
		return err
	}
	defer s.close()

	if len(argv) == 0 {
		argv = nil
	}
	return s.driver.Run(ctx, name, argv)
}

func newCommandsCmd(opts *Options, gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the package commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, gf, false)
			if err != nil {
				return err
			}
			defer s.close()
			return listCommands(opts.Stdout, s.global)
		},
	}
}

func listCommands(w io.Writer, g *commands.GlobalContext) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range g.CommandNames(true) {
		short := ""
		if cmd, err := g.RetrieveCommand(name); err == nil {
			if d, ok := cmd.(commands.Describer); ok {
				short = d.Short()
			}
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, short)
	}
	return tw.Flush()
}

func newHelpCmd(opts *Options, gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show help for bentomake or one of the package commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				if err := root.Help(); err != nil {
					return err
				}
				s, err := openSession(opts, gf, false)
				if err != nil {
					return err
				}
				defer s.close()
				fmt.Fprintln(opts.Stdout, "\nPackage commands:")
				return listCommands(opts.Stdout, s.global)
			}
			if c, _, err := root.Find(args); err == nil && c != root {
				return c.Help()
			}
			s, err := openSession(opts, gf, false)
			if err != nil {
				return err
			}
			defer s.close()
			if !s.global.IsCommandRegistered(args[0]) {
				return fmt.Errorf("%w: unknown command %q", commands.ErrUsage, args[0])
			}
			_, err = io.WriteString(opts.Stdout, s.driver.Usage(args[0]))
			return err
		},
	}
}
