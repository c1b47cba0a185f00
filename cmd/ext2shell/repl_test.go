package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ext2shell/internal/shlog"
	"ext2shell/pkg/command"
	"ext2shell/pkg/ext2"
)

func newTestContext(t *testing.T) *command.Context {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.img")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating image: %v", err)
	}
	if err := ext2.Format(f, ext2.FormatOptions{TotalBlocks: 2048, InodeCount: 128, VolumeLabel: "TEST"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing image: %v", err)
	}

	fs, err := ext2.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { fs.Close() })

	return command.NewContext(fs, &shlog.CLI{})
}

// TestREPLRunsScriptAndExits feeds a short session through runREPL and
// checks that the prompt reflects cwd changes, output lines appear on out,
// and a failing command doesn't end the session (spec.md §6/§7).
func TestREPLRunsScriptAndExits(t *testing.T) {
	ctx := newTestContext(t)

	script := strings.Join([]string{
		"mkdir /a",
		"cd /a",
		"touch x",
		"ls",
		"rm nonexistent",
		"cd /",
		"exit",
	}, "\n") + "\n"

	var out, errOut bytes.Buffer
	if err := runREPL(ctx, strings.NewReader(script), &out, &errOut); err != nil {
		t.Fatalf("runREPL: %v", err)
	}

	if !strings.Contains(out.String(), "[/a]$> ") {
		t.Errorf("expected prompt to reflect cwd change to /a, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "x") {
		t.Errorf("expected ls output to include the new file, got:\n%s", out.String())
	}
	if errOut.Len() == 0 {
		t.Errorf("expected the failing rm to print an error, got none")
	}
	if strings.LastIndex(out.String(), "[/]$> ") < strings.LastIndex(out.String(), "[/a]$> ") {
		t.Errorf("expected the session to continue past the failing rm to cd /, got:\n%s", out.String())
	}
}

// TestREPLUnknownCommandDoesNotEndSession confirms an unrecognized verb is
// reported but the loop keeps reading subsequent lines.
func TestREPLUnknownCommandDoesNotEndSession(t *testing.T) {
	ctx := newTestContext(t)

	script := "bogus\npwd\nexit\n"

	var out, errOut bytes.Buffer
	if err := runREPL(ctx, strings.NewReader(script), &out, &errOut); err != nil {
		t.Fatalf("runREPL: %v", err)
	}

	if !strings.Contains(errOut.String(), "bogus") {
		t.Errorf("expected unknown-command error mentioning the verb, got:\n%s", errOut.String())
	}
	if !strings.Contains(out.String(), "/\n") {
		t.Errorf("expected pwd output after the bad command, got:\n%s", out.String())
	}
}

// TestREPLQuotedArguments confirms simple "/'-quoting groups a single token,
// per spec.md §6.
func TestREPLQuotedArguments(t *testing.T) {
	ctx := newTestContext(t)

	script := `touch "/a b"` + "\nls\nexit\n"

	var out, errOut bytes.Buffer
	if err := runREPL(ctx, strings.NewReader(script), &out, &errOut); err != nil {
		t.Fatalf("runREPL: %v", err)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected error output: %s", errOut.String())
	}
	if !strings.Contains(out.String(), "a b") {
		t.Errorf("expected the quoted filename to survive as one token, got:\n%s", out.String())
	}
}
