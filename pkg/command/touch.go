package command

import (
	"time"

	"ext2shell/pkg/ext2"
)

// Touch resolves path. If an entry already exists there, it refreshes the
// entry's atime/mtime in place (refusing directories). Otherwise it
// allocates a new regular-file inode and inserts it into the parent
// directory. This resolves spec.md §9's Open Question uniformly in favor
// of the update-in-place variant.
func Touch(ctx *Context, path string) error {
	parentPath, name, err := splitParentBase(path)
	if err != nil {
		return err
	}

	parentIno, parentIn, err := ctx.resolveParentDir(parentPath)
	if err != nil {
		return err
	}

	now := uint32(time.Now().Unix())

	if existingIno, _, found, err := ctx.FS.Lookup(parentIn, name); err != nil {
		return err
	} else if found {
		in, err := ctx.FS.ResolveInode(existingIno)
		if err != nil {
			return err
		}
		if in.IsDirectory() {
			return ext2.ErrIsADirectory
		}

		in.AccessTime = now
		in.ModifyTime = now
		return ctx.FS.WriteInode(existingIno, in)
	}

	ino, err := ctx.FS.AllocateInode(ext2.ModeTypeRegular)
	if err != nil {
		return err
	}

	in := &ext2.Inode{
		Mode:       ext2.ModeTypeRegular | ext2.DefaultFilePermissions,
		LinksCount: 1,
		AccessTime: now,
		CreateTime: now,
		ModifyTime: now,
	}
	if err := ctx.FS.WriteInode(ino, in); err != nil {
		return err
	}

	return ctx.FS.InsertEntry(parentIno, parentIn, name, ino, ext2.FileTypeRegular)
}
