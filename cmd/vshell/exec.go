package main

import (
	"fmt"

	"github.com/arthur-debert/vshell/pkg/vshell/render"
	"github.com/spf13/cobra"
)

func newExecCommand(opts *globalOptions) *cobra.Command {
	var echo bool

	cmd := &cobra.Command{
		Use:   "exec [line]...",
		Short: "Run command lines and print their output",
		Long: `Run each argument as one command line against the persisted filesystem.
Quote lines that contain spaces or a redirection, e.g.
  vshell exec "mkdir notes" "echo hello > notes/a.txt" "cat notes/a.txt"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r := render.New(out, render.UseColor(opts.cfg.Color, false))
			s := openSession(cmd.Context(), opts.cfg, false)

			for _, line := range args {
				if echo {
					fmt.Fprintf(out, "%s$ %s\n", s.Cwd(), line)
				}
				lines, _ := s.Submit(cmd.Context(), line)
				for _, l := range r.Lines(lines) {
					fmt.Fprintln(out, l)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&echo, "echo", false, "print a prompt and each line before its output")

	return cmd
}
