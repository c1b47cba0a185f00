package command

import (
	"time"

	"ext2shell/pkg/ext2"
)

// Rmdir removes an empty directory: one holding no entries besides "." and
// "..".
func Rmdir(ctx *Context, path string) error {
	parentPath, name, err := splitParentBase(path)
	if err != nil {
		return err
	}

	parentIno, parentIn, err := ctx.resolveParentDir(parentPath)
	if err != nil {
		return err
	}

	ino, _, found, err := ctx.FS.Lookup(parentIn, name)
	if err != nil {
		return err
	}
	if !found {
		return ext2.ErrNotFound
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return err
	}
	if !in.IsDirectory() {
		return ext2.ErrNotADirectory
	}

	entries, err := ctx.FS.ReadDir(in)
	if err != nil {
		return err
	}
	if len(entries) > 2 {
		return ext2.ErrNotEmpty
	}

	if err := ctx.FS.RemoveEntry(parentIn, ino); err != nil {
		return err
	}

	now := uint32(time.Now().Unix())
	if err := ctx.FS.FreeInodeBlocks(in, now); err != nil {
		return err
	}

	in.LinksCount = 0
	if err := ctx.FS.WriteInode(ino, in); err != nil {
		return err
	}

	if err := ctx.FS.FreeInode(ino, in.Mode); err != nil {
		return err
	}

	parentIn.LinksCount--
	return ctx.FS.WriteInode(parentIno, parentIn)
}
