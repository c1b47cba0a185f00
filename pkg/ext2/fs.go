package ext2

import (
	"fmt"
	"os"
)

// FileSystem is process-wide state for one open ext2 image: the image file
// handle, the cached superblock, and the computed group count. It is the
// single explicit handle spec.md §9 models in place of the source's global
// mutable state — every operation in this package takes a *FileSystem
// rather than reaching for a package-level variable.
//
// Ownership: FileSystem exclusively owns the backing file and the cached
// superblock. Inodes and directory blocks read from disk are value copies;
// callers own them and must explicitly call WriteInode/writeBlock (via the
// directory/block-walker helpers) to persist changes.
type FileSystem struct {
	file   *os.File
	dev    *device
	sb     *Superblock
	groups int
}

// Open loads path as an ext2 image, validating the superblock magic. The
// returned handle owns f and must be closed with Close, per spec.md's
// Closed -> Open state transition.
func Open(path string) (*FileSystem, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}

	dev := newDevice(f)

	sb, err := loadSuperblock(dev)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileSystem{
		file:   f,
		dev:    dev,
		sb:     sb,
		groups: sb.GroupCount(),
	}, nil
}

// Close flushes the superblock and releases the underlying file. It is the
// only exit from the Open state, and it is safe to call after an error from
// any mutating operation: per spec.md §5, every exit path flushes.
func (fs *FileSystem) Close() error {
	if err := fs.Flush(); err != nil {
		fs.file.Close()
		return err
	}
	return fs.file.Close()
}

// Flush writes the in-memory superblock back to disk. The allocate and free
// routines call it after every counter change, so the on-disk superblock is
// current when a mutating command returns; Close calls it once more.
func (fs *FileSystem) Flush() error {
	return flushSuperblock(fs.dev, fs.sb)
}

// Superblock returns the cached superblock. Callers must not retain pointers
// across commands that might reopen the image; within a single command the
// returned pointer reflects the live in-memory state.
func (fs *FileSystem) Superblock() *Superblock {
	return fs.sb
}

// GroupCount returns the number of block groups this image was formatted
// with.
func (fs *FileSystem) GroupCount() int {
	return fs.groups
}

// GroupDescriptor reads the descriptor for group g from disk.
func (fs *FileSystem) GroupDescriptor(g int) (*GroupDescriptor, error) {
	if g < 0 || g >= fs.groups {
		return nil, fmt.Errorf("group %d out of range [0,%d): %w", g, fs.groups, ErrCorruption)
	}
	return readGroupDescriptor(fs.dev, g)
}

// writeGroupDescriptor writes the descriptor for group g back to disk.
func (fs *FileSystem) writeGroupDescriptor(g int, gd *GroupDescriptor) error {
	return writeGroupDescriptor(fs.dev, g, gd)
}

// ReadBlock exposes a raw block read for diagnostic tooling (the print
// command's hex dumps). Ordinary command-layer code should go through the
// higher-level Reader/directory helpers instead.
func (fs *FileSystem) ReadBlock(block uint32) ([]byte, error) {
	return fs.dev.readBlock(block)
}
