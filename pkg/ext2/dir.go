package ext2

import (
	"encoding/binary"
	"fmt"
)

// DirEntry is a read-only view of one directory record, as handed to
// callers by ReadDir/Lookup (spec.md §4.7's Iterate operation).
type DirEntry struct {
	Inode    int
	Name     string
	FileType uint8
}

// alignUp rounds n up to the next multiple of a.
func alignUp(n, a int) int {
	return ((n + a - 1) / a) * a
}

// idealRecLen is the minimum rec_len a record with the given name length
// needs: the 8-byte header plus the name, 4-byte aligned.
func idealRecLen(nameLen int) int {
	return alignUp(dentryHeaderSize+nameLen, DentryAlignment)
}

func decodeDirent(block []byte, offset int) (ino uint32, recLen uint16, nameLen uint8, fileType uint8, name string) {
	ino = binary.LittleEndian.Uint32(block[offset:])
	recLen = binary.LittleEndian.Uint16(block[offset+4:])
	nameLen = block[offset+6]
	fileType = block[offset+7]
	if recLen >= dentryHeaderSize && offset+int(nameLen)+dentryHeaderSize <= len(block) {
		name = string(block[offset+dentryHeaderSize : offset+dentryHeaderSize+int(nameLen)])
	}
	return
}

func encodeDirent(block []byte, offset int, ino uint32, recLen uint16, nameLen uint8, fileType uint8, name string) {
	binary.LittleEndian.PutUint32(block[offset:], ino)
	binary.LittleEndian.PutUint16(block[offset+4:], recLen)
	block[offset+6] = nameLen
	block[offset+7] = fileType
	copy(block[offset+dentryHeaderSize:], name)
}

// directoryBlockAddrs returns the (in order) addresses of dir's allocated
// direct data blocks. Directories only ever use direct pointers, per
// spec.md §4.6.
func directoryBlockAddrs(in *Inode) []uint32 {
	var addrs []uint32
	for i := 0; i < DirectPointers; i++ {
		if in.Block[i] == 0 {
			break
		}
		addrs = append(addrs, in.Block[i])
	}
	return addrs
}

// ReadDir walks every allocated data block of dir and returns a list of its
// live entries (tombstones and records with rec_len == 0 are skipped or
// stop the block, per spec.md §4.7's Iterate operation).
func (fs *FileSystem) ReadDir(dir *Inode) ([]DirEntry, error) {
	var entries []DirEntry

	for _, addr := range directoryBlockAddrs(dir) {
		block, err := fs.dev.readBlock(addr)
		if err != nil {
			return nil, err
		}

		offset := 0
		for offset < BlockSize {
			ino, recLen, nameLen, fileType, name := decodeDirent(block, offset)
			if recLen == 0 {
				break
			}
			if recLen < dentryHeaderSize {
				return nil, fmt.Errorf("directory record rec_len %d too small: %w", recLen, ErrCorruption)
			}

			if ino != 0 {
				entries = append(entries, DirEntry{Inode: int(ino), Name: name, FileType: fileType})
			}

			offset += int(recLen)
			_ = nameLen
		}
	}

	return entries, nil
}

// Lookup finds the entry named name within dir. Matching is case-sensitive
// and exact, per spec.md §4.7.
func (fs *FileSystem) Lookup(dir *Inode, name string) (ino int, fileType uint8, found bool, err error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return 0, 0, false, err
	}

	for _, e := range entries {
		if e.Name == name {
			return e.Inode, e.FileType, true, nil
		}
	}

	return 0, 0, false, nil
}

// InsertEntry adds a new directory record (ino, name, fileType) into dir,
// following spec.md §4.7's Insert Entry algorithm: reuse slack in an
// existing record if any block has enough, otherwise grow the directory by
// one block. dirInode is dir's own inode number, needed to persist growth.
func (fs *FileSystem) InsertEntry(dirInode int, dir *Inode, name string, ino int, fileType uint8) error {
	need := idealRecLen(len(name))
	if need > BlockSize {
		return fmt.Errorf("name %q too long: %w", name, ErrInvalidSyntax)
	}

	addrs := directoryBlockAddrs(dir)
	for _, addr := range addrs {
		block, err := fs.dev.readBlock(addr)
		if err != nil {
			return err
		}

		if ok, err := insertIntoBlock(block, need, uint32(ino), name, fileType); err != nil {
			return err
		} else if ok {
			return fs.dev.writeBlock(addr, block)
		}
	}

	// No existing block had room: grow the directory by one block, per
	// spec.md §4.6/§4.7.
	newBlock, err := fs.AppendDirectoryBlock(dir)
	if err != nil {
		return err
	}

	block := zeroBlock()
	encodeDirent(block, 0, uint32(ino), uint16(BlockSize), uint8(len(name)), fileType, name)
	if err := fs.dev.writeBlock(newBlock, block); err != nil {
		return err
	}

	return fs.WriteInode(dirInode, dir)
}

// insertIntoBlock attempts to fit a new record into block by splitting an
// existing record's slack. It returns ok == true and leaves block mutated
// in place if it succeeded.
func insertIntoBlock(block []byte, need int, ino uint32, name string, fileType uint8) (bool, error) {
	offset := 0

	for offset < BlockSize {
		curIno, recLen, nameLen, curType, _ := decodeDirent(block, offset)
		if recLen == 0 {
			return false, nil
		}
		if recLen < dentryHeaderSize {
			return false, fmt.Errorf("directory record rec_len %d too small: %w", recLen, ErrCorruption)
		}

		ideal := 0
		if curIno != 0 {
			ideal = idealRecLen(int(nameLen))
		}

		slack := int(recLen) - ideal
		if slack >= need {
			if curIno == 0 {
				// Tombstone: the whole record becomes the new entry.
				encodeDirent(block, offset, ino, recLen, uint8(len(name)), fileType, name)
			} else {
				// Shrink the predecessor to its ideal size and place the
				// new record in the freed tail.
				encodeDirent(block, offset, curIno, uint16(ideal), nameLen, curType, string(block[offset+dentryHeaderSize:offset+dentryHeaderSize+int(nameLen)]))
				newOffset := offset + ideal
				encodeDirent(block, newOffset, ino, uint16(slack), uint8(len(name)), fileType, name)
			}
			return true, nil
		}

		offset += int(recLen)
	}

	return false, nil
}

// RemoveEntry deletes the record naming inode ino within dir, coalescing it
// into the previous record's rec_len, or turning it into a block-spanning
// tombstone if it was the first record of its block, per spec.md §4.7. It
// does not free ino itself or its data blocks — the caller does that.
func (fs *FileSystem) RemoveEntry(dir *Inode, ino int) error {
	for _, addr := range directoryBlockAddrs(dir) {
		block, err := fs.dev.readBlock(addr)
		if err != nil {
			return err
		}

		offset := 0
		prevOffset := -1

		for offset < BlockSize {
			curIno, recLen, _, _, _ := decodeDirent(block, offset)
			if recLen == 0 {
				break
			}

			if int(curIno) == ino {
				if prevOffset >= 0 {
					_, prevLen, prevNameLen, prevType, prevName := decodeDirent(block, prevOffset)
					encodeDirent(block, prevOffset, binary.LittleEndian.Uint32(block[prevOffset:]), prevLen+recLen, prevNameLen, prevType, prevName)
				} else {
					encodeDirent(block, offset, 0, uint16(BlockSize), 0, 0, "")
				}
				return fs.dev.writeBlock(addr, block)
			}

			prevOffset = offset
			offset += int(recLen)
		}
	}

	return fmt.Errorf("removing entry for inode %d: %w", ino, ErrNotFound)
}

// RenameEntry renames the record for inode ino within dir to newName
// in-place. It fails with ErrNoSpace if the existing record's rec_len is
// too small to hold the new name — this implementation never relocates an
// entry, per spec.md §4.7/§9.
func (fs *FileSystem) RenameEntry(dir *Inode, ino int, newName string) error {
	need := idealRecLen(len(newName))

	for _, addr := range directoryBlockAddrs(dir) {
		block, err := fs.dev.readBlock(addr)
		if err != nil {
			return err
		}

		offset := 0
		for offset < BlockSize {
			curIno, recLen, nameLen, fileType, _ := decodeDirent(block, offset)
			if recLen == 0 {
				break
			}

			if int(curIno) == ino {
				if need > int(recLen) {
					return fmt.Errorf("renaming to %q: %w", newName, ErrNoSpace)
				}

				oldNameLen := int(nameLen)
				encodeDirent(block, offset, curIno, recLen, uint8(len(newName)), fileType, newName)

				// Zero any leftover bytes in the old name's tail.
				if oldNameLen > len(newName) {
					start := offset + dentryHeaderSize + len(newName)
					end := offset + dentryHeaderSize + oldNameLen
					for i := start; i < end && i < len(block); i++ {
						block[i] = 0
					}
				}

				return fs.dev.writeBlock(addr, block)
			}

			offset += int(recLen)
		}
	}

	return fmt.Errorf("renaming inode %d: %w", ino, ErrNotFound)
}

// BootstrapDirectory writes the first data block of a freshly allocated
// directory inode: "." pointing at selfIno with rec_len 12, and ".."
// pointing at parentIno spanning the rest of the block, per spec.md §4.7.
func (fs *FileSystem) BootstrapDirectory(selfIno, parentIno int) (uint32, error) {
	block, err := fs.AllocateBlock()
	if err != nil {
		return 0, err
	}

	buf := zeroBlock()
	encodeDirent(buf, 0, uint32(selfIno), 12, 1, FileTypeDir, ".")
	encodeDirent(buf, 12, uint32(parentIno), uint16(BlockSize-12), 2, FileTypeDir, "..")

	if err := fs.dev.writeBlock(block, buf); err != nil {
		return 0, err
	}

	return block, nil
}
