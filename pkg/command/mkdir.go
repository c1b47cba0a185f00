package command

import (
	"time"

	"ext2shell/pkg/ext2"
)

// Mkdir creates a new, empty directory at path.
func Mkdir(ctx *Context, path string) error {
	parentPath, name, err := splitParentBase(path)
	if err != nil {
		return err
	}

	parentIno, parentIn, err := ctx.resolveParentDir(parentPath)
	if err != nil {
		return err
	}

	if _, _, found, err := ctx.FS.Lookup(parentIn, name); err != nil {
		return err
	} else if found {
		return ext2.ErrAlreadyExists
	}

	ino, err := ctx.FS.AllocateInode(ext2.ModeTypeDirectory)
	if err != nil {
		return err
	}

	block, err := ctx.FS.BootstrapDirectory(ino, parentIno)
	if err != nil {
		return err
	}

	now := uint32(time.Now().Unix())
	in := &ext2.Inode{
		Mode:       ext2.ModeTypeDirectory | ext2.DefaultDirPermissions,
		LinksCount: 2,
		SizeLower:  ext2.BlockSize,
		Blocks:     ext2.BlockSize / 512,
		AccessTime: now,
		CreateTime: now,
		ModifyTime: now,
	}
	in.Block[0] = block
	if err := ctx.FS.WriteInode(ino, in); err != nil {
		return err
	}

	if err := ctx.FS.InsertEntry(parentIno, parentIn, name, ino, ext2.FileTypeDir); err != nil {
		return err
	}

	parentIn.LinksCount++
	return ctx.FS.WriteInode(parentIno, parentIn)
}
