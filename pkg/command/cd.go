package command

import "ext2shell/pkg/ext2"

// Cd resolves path and, if it names a directory, makes it the new cwd.
func Cd(ctx *Context, path string) error {
	ino, err := ctx.FS.ResolveFrom(ctx.Cwd, path)
	if err != nil {
		return err
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return err
	}
	if !in.IsDirectory() {
		return ext2.ErrNotADirectory
	}

	ctx.Cwd = ino
	return nil
}
