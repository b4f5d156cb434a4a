package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/unitdb/internal/shell"
)

const prompt = "unitdb> "

// prompter is the part of [liner.State] used by the shell loop.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell over the documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lin := liner.NewLiner()
			defer lin.Close()
			lin.SetCtrlCAborts(true)

			if err := a.readHistory(lin); err != nil {
				return err
			}
			if err := repl(cmd.Context(), a.shell, lin, cmd.OutOrStdout()); err != nil {
				return err
			}
			return a.writeHistory(lin)
		},
	}
}

func (a *app) readHistory(lin *liner.State) error {
	if a.cfg.History == "" {
		return nil
	}
	exists, err := a.storage.Exists(a.cfg.History)
	if err != nil || !exists {
		return err
	}
	r, err := a.storage.ReadFileStream(a.cfg.History)
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = lin.ReadHistory(r)
	return err
}

func (a *app) writeHistory(lin *liner.State) error {
	if a.cfg.History == "" {
		return nil
	}
	return a.storage.CrashSafeWriteFile(a.cfg.History, func(w io.Writer) error {
		_, err := lin.WriteHistory(w)
		return err
	})
}

// repl runs shell commands read from p until .exit, end of input or ctx is
// done.
func repl(ctx context.Context, sh *shell.Shell, p prompter, w io.Writer) error {
	fmt.Fprintln(w, "unitdb shell. Type .help for commands.")
	if file := sh.File(); file != "" {
		fmt.Fprintf(w, "File: %s (not saved until .save)\n", file)
	}

	for ctx.Err() == nil {
		line, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(w)
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.AppendHistory(line)

		cmd, err := shell.Parse(line)
		if err != nil {
			shell.ErrorResult{Err: err}.Print(w)
			continue
		}
		res := sh.Execute(ctx, cmd)
		if res.IsExit() {
			return nil
		}
		res.Print(w)
	}
	return nil
}
