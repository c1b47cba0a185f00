package ext2

import (
	"fmt"
	"strings"
)

// splitPath breaks a path into its '/'-separated components, dropping empty
// components produced by leading, trailing, or repeated slashes. It does not
// distinguish absolute from relative paths — the caller picks the starting
// inode.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Resolve walks path component by component starting from startIno,
// following spec.md §4.8: '.' is a no-op, '..' is looked up as an ordinary
// directory entry (never specially interpreted), and every intermediate
// component must itself be a directory. An empty path is an error.
func (fs *FileSystem) Resolve(startIno int, path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("resolving empty path: %w", ErrInvalidSyntax)
	}

	parts := splitPath(path)
	cur := startIno

	for i, name := range parts {
		if name == "." {
			continue
		}

		in, err := fs.ResolveInode(cur)
		if err != nil {
			return 0, err
		}
		if !in.IsDirectory() {
			return 0, fmt.Errorf("resolving %q: %w", path, ErrNotADirectory)
		}

		ino, _, found, err := fs.Lookup(in, name)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("resolving %q: component %q: %w", path, name, ErrNotFound)
		}

		cur = ino
		_ = i
	}

	return cur, nil
}

// ResolveFrom resolves path starting at root (inode 2) if it begins with
// '/', or at cwdIno otherwise, per spec.md §4.8.
func (fs *FileSystem) ResolveFrom(cwdIno int, path string) (int, error) {
	if strings.HasPrefix(path, "/") {
		return fs.Resolve(RootInode, path)
	}
	return fs.Resolve(cwdIno, path)
}

// AbsolutePath reconstructs the absolute path of ino by walking ".." entries
// upward until it reaches the root, searching each parent for the child's
// own record to recover its name, per spec.md §4.8 — cwd is stored only as
// an inode number, never as a cached path string.
func (fs *FileSystem) AbsolutePath(ino int) (string, error) {
	if ino == RootInode {
		return "/", nil
	}

	var components []string
	cur := ino

	for cur != RootInode {
		in, err := fs.ResolveInode(cur)
		if err != nil {
			return "", err
		}
		if !in.IsDirectory() {
			return "", fmt.Errorf("reconstructing path for inode %d: %w", cur, ErrNotADirectory)
		}

		parentIno, _, found, err := fs.Lookup(in, "..")
		if err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("inode %d has no .. entry: %w", cur, ErrCorruption)
		}

		parent, err := fs.ResolveInode(parentIno)
		if err != nil {
			return "", err
		}

		name, err := nameOfChildIn(fs, parent, cur)
		if err != nil {
			return "", err
		}

		components = append([]string{name}, components...)

		if parentIno == cur {
			// Root reached via its own "..", which points at itself.
			break
		}
		cur = parentIno
	}

	return "/" + strings.Join(components, "/"), nil
}

// nameOfChildIn searches dir's entries for the one naming childIno and
// returns its name, skipping "." and ".." which never identify a child by
// its own name.
func nameOfChildIn(fs *FileSystem, dir *Inode, childIno int) (string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		if e.Inode == childIno {
			return e.Name, nil
		}
	}

	return "", fmt.Errorf("inode %d not found in its parent: %w", childIno, ErrCorruption)
}
