// Package command implements the interactive shell's user-facing verbs
// (ls, cd, cat, attr, touch, mkdir, rm, rmdir, rename, cp, mv, info, print,
// pwd), each composed from the primitives in pkg/ext2. One file per verb,
// mirroring the teacher's cmd/vorteil/imageutil layout.
package command

import (
	"ext2shell/internal/shlog"
	"ext2shell/pkg/ext2"
)

// Context is the shared state threaded through every command: the open
// image handle, the current working directory inode, and a logger for
// warnings that don't rise to a returned error. It replaces the source's
// global `image_file`/`superblock`/cwd variables with an explicit value
// passed to every operation, per spec.md §9.
type Context struct {
	FS  *ext2.FileSystem
	Cwd int
	Log shlog.Logger
}

// NewContext returns a Context for fs with the cwd set to the image root
// directory.
func NewContext(fs *ext2.FileSystem, log shlog.Logger) *Context {
	return &Context{FS: fs, Cwd: ext2.RootInode, Log: log}
}
