package ext2

import "errors"

// Sentinel errors covering the taxonomy from spec.md §7. Callers should use
// errors.Is against these rather than comparing error strings; concrete
// errors returned by this package wrap one of these with contextual detail
// via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidImage covers a missing/bad superblock magic, a truncated
	// read of the superblock or a group descriptor, or a request for
	// inode 0.
	ErrInvalidImage = errors.New("invalid ext2 image")

	// ErrNotFound covers a missing path component or directory entry name.
	ErrNotFound = errors.New("not found")

	// ErrNotADirectory is returned when an operation required a directory
	// inode but found something else.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotARegularFile is returned when an operation required a regular
	// file inode but found something else.
	ErrNotARegularFile = errors.New("not a regular file")

	// ErrIsADirectory is returned when an operation refuses to act on a
	// directory (e.g. rm).
	ErrIsADirectory = errors.New("is a directory")

	// ErrAlreadyExists covers rename/mkdir collisions in a parent
	// directory.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotEmpty is returned by rmdir when the target directory holds
	// entries besides "." and "..".
	ErrNotEmpty = errors.New("directory not empty")

	// ErrNoSpace covers bitmap exhaustion and directory blocks with no
	// slack and no more direct slots available.
	ErrNoSpace = errors.New("no space left on device")

	// ErrInvalidSyntax covers malformed arguments at the command layer.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrCorruption covers on-disk invariant violations detected at
	// runtime: freeing an already-free bit, a directory record shorter
	// than its minimum size, or an indirect chain that runs out before
	// the claimed file size is reached.
	ErrCorruption = errors.New("file-system corruption detected")
)
