package ext2

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// inodeLocation computes the (group, byte offset) of inode ino's on-disk
// record, following spec.md §4.5: group = (ino-1) / InodesPerGroup, local =
// (ino-1) % InodesPerGroup, block = inode-table-start + local*inodeSize /
// BlockSize, with the remaining byte offset within that block.
func (fs *FileSystem) inodeLocation(ino int) (group int, offset int64, err error) {
	if ino <= 0 {
		return 0, 0, fmt.Errorf("inode 0 is invalid: %w", ErrInvalidImage)
	}

	sb := fs.sb
	inodeSize := int64(sb.InodeSize)
	if inodeSize == 0 {
		inodeSize = 128
	}

	idx := int64(ino - 1)
	group = int(idx / int64(sb.InodesPerGroup))
	local := idx % int64(sb.InodesPerGroup)

	gd, err := fs.GroupDescriptor(group)
	if err != nil {
		return 0, 0, err
	}

	block := int64(gd.InodeTable) + (local*inodeSize)/BlockSize
	byteOffset := block*BlockSize + (local*inodeSize)%BlockSize

	return group, byteOffset, nil
}

// ResolveInode reads inode number ino from the inode table.
func (fs *FileSystem) ResolveInode(ino int) (*Inode, error) {
	_, offset, err := fs.inodeLocation(ino)
	if err != nil {
		return nil, err
	}

	inodeSize := int(fs.sb.InodeSize)
	if inodeSize == 0 {
		inodeSize = 128
	}

	buf, err := fs.dev.readAt(offset, inodeSize)
	if err != nil {
		return nil, fmt.Errorf("reading inode %d: %w", ino, err)
	}

	in := new(Inode)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, in); err != nil {
		return nil, fmt.Errorf("decoding inode %d: %w", ino, err)
	}

	return in, nil
}

// WriteInode writes inode number ino's record back to the inode table.
func (fs *FileSystem) WriteInode(ino int, in *Inode) error {
	_, offset, err := fs.inodeLocation(ino)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, in); err != nil {
		return fmt.Errorf("encoding inode %d: %w", ino, err)
	}

	inodeSize := int(fs.sb.InodeSize)
	if inodeSize == 0 {
		inodeSize = 128
	}

	data := buf.Bytes()
	if len(data) > inodeSize {
		data = data[:inodeSize]
	} else if len(data) < inodeSize {
		padded := make([]byte, inodeSize)
		copy(padded, data)
		data = padded
	}

	if err := fs.dev.writeAt(offset, data); err != nil {
		return fmt.Errorf("writing inode %d: %w", ino, err)
	}

	return nil
}
