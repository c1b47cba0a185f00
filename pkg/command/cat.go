package command

import (
	"io"

	"ext2shell/pkg/ext2"
)

// Cat streams the file named by path to w. Holes read back as zero bytes.
func Cat(ctx *Context, path string, w io.Writer) error {
	ino, err := ctx.FS.ResolveFrom(ctx.Cwd, path)
	if err != nil {
		return err
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return err
	}
	if in.IsDirectory() {
		return ext2.ErrIsADirectory
	}
	if !in.IsRegular() {
		return ext2.ErrNotARegularFile
	}

	r, err := ctx.FS.Reader(in)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, r)
	return err
}
