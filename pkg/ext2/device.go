package ext2

import (
	"bytes"
	"fmt"
	"io"
)

// device is the byte-addressable random-access backing store for the image
// file, matching spec.md §4.1. Block 0 is never read as real data: a block
// pointer of value 0 always means "hole", and readBlock substitutes a
// zero-filled buffer instead of touching the file.
type device struct {
	rw io.ReadWriteSeeker
}

func newDevice(rw io.ReadWriteSeeker) *device {
	return &device{rw: rw}
}

// readBlock fills a BlockSize buffer from byte offset block*BlockSize.
// block == 0 returns a zero-filled buffer without touching the backing
// file, representing a hole in a sparse pointer tree.
func (d *device) readBlock(block uint32) ([]byte, error) {
	buf := make([]byte, BlockSize)
	if block == 0 {
		return buf, nil
	}

	_, err := d.rw.Seek(int64(block)*BlockSize, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("seeking to block %d: %w", block, err)
	}

	n, err := io.ReadFull(d.rw, buf)
	if err != nil {
		return nil, fmt.Errorf("reading block %d: %w (got %d of %d bytes)", block, err, n, BlockSize)
	}

	return buf, nil
}

// writeBlock writes exactly BlockSize bytes at byte offset block*BlockSize.
// It is an error to write to block 0 as data — the caller is expected to
// allocate a real block first.
func (d *device) writeBlock(block uint32, buf []byte) error {
	if block == 0 {
		return fmt.Errorf("writing to block 0: %w", ErrCorruption)
	}
	if len(buf) != BlockSize {
		return fmt.Errorf("writing block %d: buffer is %d bytes, want %d", block, len(buf), BlockSize)
	}

	_, err := d.rw.Seek(int64(block)*BlockSize, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seeking to block %d: %w", block, err)
	}

	n, err := d.rw.Write(buf)
	if err != nil || n != BlockSize {
		return fmt.Errorf("writing block %d: %w (wrote %d of %d bytes)", block, err, n, BlockSize)
	}

	return nil
}

// readAt reads n bytes at an arbitrary byte offset, used for superblock,
// group descriptor, and inode-table accesses that aren't block-aligned.
func (d *device) readAt(offset int64, n int) ([]byte, error) {
	_, err := d.rw.Seek(offset, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("seeking to offset %d: %w", offset, err)
	}

	buf := make([]byte, n)
	k, err := io.ReadFull(d.rw, buf)
	if err != nil {
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w (got %d)", n, offset, err, k)
	}

	return buf, nil
}

// writeAt writes buf at an arbitrary byte offset.
func (d *device) writeAt(offset int64, buf []byte) error {
	_, err := d.rw.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seeking to offset %d: %w", offset, err)
	}

	k, err := d.rw.Write(buf)
	if err != nil || k != len(buf) {
		return fmt.Errorf("writing %d bytes at offset %d: %w (wrote %d)", len(buf), offset, err, k)
	}

	return nil
}

func zeroBlock() []byte {
	return bytes.Repeat([]byte{0}, BlockSize)
}
