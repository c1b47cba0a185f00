package ext2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// FormatOptions configures Format. TotalBlocks must be large enough to hold
// the fixed single-group overhead (superblock, group descriptor table,
// both bitmaps, and the inode table) plus at least one data block for the
// root directory.
type FormatOptions struct {
	TotalBlocks int
	InodeCount  int
	VolumeLabel string
}

// Format lays out a brand new single-block-group ext2 image on w: a
// superblock, a one-entry group descriptor table, a block bitmap, an inode
// bitmap, an inode table, and a root directory inode with its "." and ".."
// entries. It mirrors, at a much smaller scale, the single-group path of
// the layout math in the teacher's ext compiler — this implementation never
// spans more than one block group, so the group-spanning branches there
// have no counterpart here.
//
// Format exists for test fixtures; it is not one of the interactive shell's
// commands.
func Format(w io.WriteSeeker, opts FormatOptions) error {
	if opts.TotalBlocks <= 0 {
		return fmt.Errorf("formatting image: total blocks must be positive: %w", ErrInvalidSyntax)
	}
	if opts.InodeCount <= 0 {
		opts.InodeCount = 128
	}
	if opts.TotalBlocks > BlockSize*8 {
		return fmt.Errorf("formatting image: %d blocks exceeds what a single-group bitmap block can address (%d): %w", opts.TotalBlocks, BlockSize*8, ErrInvalidSyntax)
	}

	const (
		superblockBlocks = 1 // block 0 is boot block + low superblock offset; block 1 holds the superblock proper in this fixed layout
		bgdtBlock        = 2
	)

	bgdtBlocks := divCeilInt(GroupDescriptorSize, BlockSize)
	if bgdtBlocks == 0 {
		bgdtBlocks = 1
	}

	blockBitmapBlock := uint32(bgdtBlock + bgdtBlocks)
	inodeBitmapBlock := blockBitmapBlock + 1

	inodeTableBlocks := divCeilInt(opts.InodeCount*128, BlockSize)
	inodeTableBlock := inodeBitmapBlock + 1

	firstDataBlock := uint32(int(inodeTableBlock) + inodeTableBlocks)
	if int(firstDataBlock) >= opts.TotalBlocks {
		return fmt.Errorf("formatting image: %d blocks is too small to hold group overhead: %w", opts.TotalBlocks, ErrInvalidSyntax)
	}

	sb := &Superblock{
		InodesCount:     uint32(opts.InodeCount),
		BlocksCount:     uint32(opts.TotalBlocks),
		FirstDataBlock:  firstDataBlock,
		LogBlockSize:    0, // BlockSize == 1024 << 0
		BlocksPerGroup:  uint32(opts.TotalBlocks),
		FragsPerGroup:   uint32(opts.TotalBlocks),
		InodesPerGroup:  uint32(opts.InodeCount),
		MountTime:       unixTime(time.Unix(0, 0)),
		WriteTime:       unixTime(time.Unix(0, 0)),
		Magic:           Signature,
		State:           1,
		Errors:          1,
		RevLevel:        1,
		FirstInode:      FirstNonReservedInode,
		InodeSize:       128,
		FreeInodesCount: uint32(opts.InodeCount) - LostAndFoundInode,
	}
	copy(sb.VolumeLabel[:], opts.VolumeLabel)
	volID := uuid.New()
	copy(sb.VolumeUUID[:], volID[:])

	dataBlocks := opts.TotalBlocks - int(firstDataBlock)
	sb.FreeBlocksCount = uint32(dataBlocks - 1) // one data block reserved for root's directory block below

	gd := &GroupDescriptor{
		BlockBitmap:     blockBitmapBlock,
		InodeBitmap:     inodeBitmapBlock,
		InodeTable:      uint32(inodeTableBlock),
		FreeBlocksCount: uint16(sb.FreeBlocksCount),
		FreeInodesCount: uint16(sb.FreeInodesCount),
		UsedDirsCount:   1,
	}

	if err := writeAt(w, SuperblockOffset, encodeBinary(sb)); err != nil {
		return err
	}
	if err := writeAt(w, SuperblockOffset+BlockSize, encodeBinary(gd)); err != nil {
		return err
	}

	blockBitmap := zeroBlock()
	setBit(blockBitmap, 0) // root's directory block is the first allocated data block
	if err := writeBlockAt(w, blockBitmapBlock, blockBitmap); err != nil {
		return err
	}

	inodeBitmap := zeroBlock()
	for i := 0; i < LostAndFoundInode; i++ {
		setBit(inodeBitmap, i)
	}
	if err := writeBlockAt(w, inodeBitmapBlock, inodeBitmap); err != nil {
		return err
	}

	rootBlock := firstDataBlock
	rootInode := &Inode{
		Mode:       ModeTypeDirectory | DefaultDirPermissions,
		LinksCount: 2,
		SizeLower:  BlockSize,
		Blocks:     BlockSize / 512,
	}
	rootInode.Block[0] = rootBlock
	rootInode.AccessTime = sb.MountTime
	rootInode.CreateTime = sb.MountTime
	rootInode.ModifyTime = sb.MountTime

	inodeTableBuf := make([]byte, inodeTableBlocks*BlockSize)
	copy(inodeTableBuf[(RootInode-1)*128:], encodeBinary(rootInode))
	if err := writeRegionAt(w, int64(inodeTableBlock)*BlockSize, inodeTableBuf); err != nil {
		return err
	}

	rootDirBlock := zeroBlock()
	encodeDirent(rootDirBlock, 0, RootInode, 12, 1, FileTypeDir, ".")
	encodeDirent(rootDirBlock, 12, RootInode, uint16(BlockSize-12), 2, FileTypeDir, "..")
	if err := writeBlockAt(w, rootBlock, rootDirBlock); err != nil {
		return err
	}

	// Pad the image out to its full declared size.
	if _, err := w.Seek(int64(opts.TotalBlocks)*BlockSize-1, io.SeekStart); err != nil {
		return fmt.Errorf("padding image: %w", err)
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return fmt.Errorf("padding image: %w", err)
	}

	return nil
}

func divCeilInt(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func encodeBinary(v interface{}) []byte {
	buf := new(bytes.Buffer)
	// Format only ever encodes fixed-size structs defined in this package,
	// so the error here is unreachable in practice.
	_ = binary.Write(buf, binary.LittleEndian, v)
	return buf.Bytes()
}

func writeAt(w io.WriteSeeker, offset int64, buf []byte) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", offset, err)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing %d bytes at offset %d: %w", len(buf), offset, err)
	}
	return nil
}

func writeRegionAt(w io.WriteSeeker, offset int64, buf []byte) error {
	return writeAt(w, offset, buf)
}

func writeBlockAt(w io.WriteSeeker, block uint32, buf []byte) error {
	return writeAt(w, int64(block)*BlockSize, buf)
}
