package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"ext2shell/pkg/ext2"
)

// resolveHostDestination applies spec.md §4.9's cp/mv destination rule:
// dst must be an absolute host path; if it names an existing directory, or
// ends in a path separator, the source's basename is appended.
func resolveHostDestination(srcPath, dst string) (string, error) {
	if !strings.HasPrefix(dst, "/") {
		return "", fmt.Errorf("destination %q must be an absolute host path: %w", dst, ext2.ErrInvalidSyntax)
	}

	if strings.HasSuffix(dst, "/") {
		return filepath.Join(dst, filepath.Base(srcPath)), nil
	}

	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		return filepath.Join(dst, filepath.Base(srcPath)), nil
	}

	return dst, nil
}

// Cp copies srcPath's bytes, read from the image, into a file at dst on the
// host.
func Cp(ctx *Context, srcPath, dst string) error {
	ino, err := ctx.FS.ResolveFrom(ctx.Cwd, srcPath)
	if err != nil {
		return err
	}

	in, err := ctx.FS.ResolveInode(ino)
	if err != nil {
		return err
	}
	if !in.IsRegular() {
		return ext2.ErrNotARegularFile
	}

	hostPath, err := resolveHostDestination(srcPath, dst)
	if err != nil {
		return err
	}

	r, err := ctx.FS.Reader(in)
	if err != nil {
		return err
	}

	f, err := os.Create(hostPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", hostPath)
	}
	defer f.Close()

	buf := make([]byte, ext2.BlockSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return errors.Wrapf(werr, "writing %s", hostPath)
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return errors.Wrap(rerr, "reading source file from image")
		}
	}

	return nil
}
