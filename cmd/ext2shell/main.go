// Command ext2shell is an interactive shell for reading, navigating, and
// modifying an ext2 filesystem image file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"ext2shell/internal/shlog"
	"ext2shell/pkg/command"
	"ext2shell/pkg/ext2"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "enable verbose (debug) logging")
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ext2shell [-v] <image-path>")
		os.Exit(2)
	}

	fs, err := ext2.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer fs.Close()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := &shlog.CLI{Verbose: *verbose}
	ctx := command.NewContext(fs, log)

	if err := runREPL(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
