package ext2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// groupDescriptorOffset returns the byte offset of group g's descriptor.
// The table begins immediately after the superblock's own block, i.e. at
// byte offset 1024 + 1024 = 2048, per spec.md §4.3/§6.
func groupDescriptorOffset(g int) int64 {
	return SuperblockOffset + BlockSize + int64(g)*GroupDescriptorSize
}

// readGroupDescriptor loads the descriptor for group g.
func readGroupDescriptor(d *device, g int) (*GroupDescriptor, error) {
	buf, err := d.readAt(groupDescriptorOffset(g), GroupDescriptorSize)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("reading group descriptor %d: %v: %w", g, err, ErrInvalidImage)
		}
		return nil, fmt.Errorf("reading group descriptor %d: %w", g, err)
	}

	gd := new(GroupDescriptor)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, gd); err != nil {
		return nil, fmt.Errorf("decoding group descriptor %d: %w", g, err)
	}

	return gd, nil
}

// writeGroupDescriptor writes the descriptor for group g back to disk.
func writeGroupDescriptor(d *device, g int, gd *GroupDescriptor) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, gd); err != nil {
		return fmt.Errorf("encoding group descriptor %d: %w", g, err)
	}

	if err := d.writeAt(groupDescriptorOffset(g), buf.Bytes()); err != nil {
		return fmt.Errorf("writing group descriptor %d: %w", g, err)
	}

	return nil
}
