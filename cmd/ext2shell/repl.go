package main

import (
	"bufio"
	"fmt"
	"io"

	shellwords "github.com/mattn/go-shellwords"

	"ext2shell/pkg/command"
)

// runREPL reads lines from in, tokenizes them with shell-style quoting, and
// dispatches each to a command, until EOF or an "exit"/"quit" line. A
// command failure prints a message to errOut, never out, and never ends the
// session, per spec.md §6/§7.
func runREPL(ctx *command.Context, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		prompt, err := command.Pwd(ctx)
		if err != nil {
			prompt = "?"
		}
		fmt.Fprintf(out, "[%s]$> ", prompt)

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		tokens, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		if tokens[0] == "exit" || tokens[0] == "quit" {
			return nil
		}

		if err := dispatch(ctx, tokens, out); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}
}
