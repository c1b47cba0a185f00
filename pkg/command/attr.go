package command

import (
	"fmt"
	"time"
)

// Attr describes the attributes attr <path> prints: permission string, uid,
// gid, human-readable size, and modification time.
type Attr struct {
	Permissions string
	UID         uint16
	GID         uint16
	Size        string
	ModTime     string
}

// GetAttr resolves path and reports its attributes, in the format
// spec.md §4.9's attr row and §8 scenario 3 describe.
func GetAttr(ctx *Context, path string) (*Attr, error) {
	ino, err := ctx.FS.ResolveFrom(ctx.Cwd, path)
	if err != nil {
		return nil, err
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return nil, err
	}

	return &Attr{
		Permissions: in.PermissionString(),
		UID:         in.UID,
		GID:         in.GID,
		Size:        humanSize(uint64(in.Size())),
		ModTime:     time.Unix(int64(in.ModifyTime), 0).UTC().Format("02/01/2006 15:04"),
	}, nil
}

// String renders an Attr the way the REPL prints it.
func (a *Attr) String() string {
	return fmt.Sprintf("%s uid=%d gid=%d size=%s mtime=%s", a.Permissions, a.UID, a.GID, a.Size, a.ModTime)
}
