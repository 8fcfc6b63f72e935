package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell"
	"github.com/arthur-debert/vshell/pkg/vshell/render"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShellCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long:  "Read command lines from stdin until end of input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			color := render.UseColor(opts.cfg.Color, term.IsTerminal(int(os.Stdout.Fd())))

			s := openSession(cmd.Context(), opts.cfg, true)
			return runShell(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout(), render.New(cmd.OutOrStdout(), color), interactive)
		},
	}
}

// runShell feeds lines from in to the session and writes rendered output to
// out. With interactive set it prompts and clears the screen on clear.
func runShell(ctx context.Context, s *vshell.Session, in io.Reader, out io.Writer, r *render.Renderer, interactive bool) error {
	for _, line := range r.Lines(s.Output()) {
		fmt.Fprintln(out, line)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprintf(out, "%s$ ", s.Cwd())
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		lines, _ := s.Submit(ctx, line)
		if interactive && isClear(line) {
			termenv.NewOutput(out).ClearScreen()
		}
		for _, l := range r.Lines(lines) {
			fmt.Fprintln(out, l)
		}
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

func isClear(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == vshell.CmdClear.String()
}
