package command

import "ext2shell/pkg/ext2"

// Ls lists the directory entries of path (or the cwd if path is empty).
func Ls(ctx *Context, path string) ([]ext2.DirEntry, error) {
	ino := ctx.Cwd
	if path != "" {
		resolved, err := ctx.FS.ResolveFrom(ctx.Cwd, path)
		if err != nil {
			return nil, err
		}
		ino = resolved
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return nil, err
	}
	if !in.IsDirectory() {
		return nil, ext2.ErrNotADirectory
	}

	return ctx.FS.ReadDir(in)
}
