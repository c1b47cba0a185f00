package command

import (
	"fmt"
	"strings"

	"ext2shell/pkg/ext2"
)

// splitParentBase splits a command path argument into its parent directory
// path and final component, e.g. "/a/x" -> ("/a", "x"), "x" -> ("", "x").
// commands that create or rename an entry (touch, mkdir, rename) need the
// parent resolved separately from the final lookup.
func splitParentBase(p string) (parent, base string, err error) {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "", "", fmt.Errorf("empty path: %w", ext2.ErrInvalidSyntax)
	}

	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p, nil
	}

	base = p[i+1:]
	if base == "" {
		return "", "", fmt.Errorf("empty final component in %q: %w", p, ext2.ErrInvalidSyntax)
	}

	parent = p[:i]
	if parent == "" {
		parent = "/"
	}

	return parent, base, nil
}

// resolveParentDir resolves path's parent directory component relative to
// ctx.Cwd (or root, if absolute), requiring it to be a directory, and
// returns its inode number along with the decoded inode.
func (ctx *Context) resolveParentDir(parentPath string) (int, *ext2.Inode, error) {
	parentIno := ctx.Cwd
	if parentPath != "" {
		ino, err := ctx.FS.ResolveFrom(ctx.Cwd, parentPath)
		if err != nil {
			return 0, nil, err
		}
		parentIno = ino
	}

	parentIn, err := ctx.FS.ResolveInode(parentIno)
	if err != nil {
		return 0, nil, err
	}
	if !parentIn.IsDirectory() {
		return 0, nil, ext2.ErrNotADirectory
	}

	return parentIno, parentIn, nil
}
