package main

import (
	"fmt"
	"io"

	"ext2shell/pkg/command"
	"ext2shell/pkg/ext2"
)

// dispatch maps a tokenized command line onto the command layer and writes
// its output to out. Argument-count mistakes are reported the same way the
// core's own ErrInvalidSyntax is.
func dispatch(ctx *command.Context, tokens []string, out io.Writer) error {
	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "help":
		fmt.Fprint(out, helpText)
		return nil

	case "info":
		s, err := command.Info(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
		return nil

	case "ls":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		entries, err := command.Ls(ctx, path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintln(out, e.Name)
		}
		return nil

	case "pwd":
		p, err := command.Pwd(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, p)
		return nil

	case "cd":
		if len(args) != 1 {
			return usageErr("cd <path>")
		}
		return command.Cd(ctx, args[0])

	case "cat":
		if len(args) != 1 {
			return usageErr("cat <path>")
		}
		return command.Cat(ctx, args[0], out)

	case "attr":
		if len(args) != 1 {
			return usageErr("attr <path>")
		}
		a, err := command.GetAttr(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, a.String())
		return nil

	case "touch":
		if len(args) != 1 {
			return usageErr("touch <path>")
		}
		return command.Touch(ctx, args[0])

	case "mkdir":
		if len(args) != 1 {
			return usageErr("mkdir <path>")
		}
		return command.Mkdir(ctx, args[0])

	case "rm":
		if len(args) != 1 {
			return usageErr("rm <path>")
		}
		return command.Rm(ctx, args[0])

	case "rmdir":
		if len(args) != 1 {
			return usageErr("rmdir <path>")
		}
		return command.Rmdir(ctx, args[0])

	case "rename":
		if len(args) != 2 {
			return usageErr("rename <path> <newname>")
		}
		return command.Rename(ctx, args[0], args[1])

	case "cp":
		if len(args) != 2 {
			return usageErr("cp <src> <dst>")
		}
		return command.Cp(ctx, args[0], args[1])

	case "mv":
		if len(args) != 2 {
			return usageErr("mv <src> <dst>")
		}
		return command.Mv(ctx, args[0], args[1])

	case "print":
		if len(args) < 1 {
			return usageErr("print <superblock|groups|inode|block|inodebitmap|blockbitmap> [arg]")
		}
		s, err := command.Print(ctx, args[0], args[1:]...)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try \"help\")", verb)
	}
}

func usageErr(usage string) error {
	return fmt.Errorf("usage: %s: %w", usage, ext2.ErrInvalidSyntax)
}
