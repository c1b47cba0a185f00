package command

import "ext2shell/pkg/ext2"

// Rename renames the entry at path to newName within the same parent
// directory. It never relocates the entry to a different record or block:
// if the existing record's slack can't hold the new name, it fails.
func Rename(ctx *Context, path, newName string) error {
	parentPath, name, err := splitParentBase(path)
	if err != nil {
		return err
	}

	_, parentIn, err := ctx.resolveParentDir(parentPath)
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

	if _, _, exists, err := ctx.FS.Lookup(parentIn, newName); err != nil {
		return err
	} else if exists {
		return ext2.ErrAlreadyExists
	}

	return ctx.FS.RenameEntry(parentIn, ino, newName)
}
