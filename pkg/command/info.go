package command

import (
	"fmt"

	"ext2shell/pkg/ext2"
)

// Info prints volume-level statistics, in the field order and units
// ext2_utils.c's print_superblock_info uses: volume name, image size,
// free space, free/total inodes and blocks, block size, inode size, group
// count, group size, group inode count, inode-table size.
func Info(ctx *Context) (string, error) {
	sb := ctx.FS.Superblock()

	inodeTableBlocks := uint32(sb.InodeSize) * sb.InodesPerGroup / ext2.BlockSize

	out := fmt.Sprintf(
		"Volume name.....: %s\n"+
			"Image size......: %d bytes\n"+
			"Free space......: %d KiB\n"+
			"Free inodes.....: %d / %d\n"+
			"Free blocks.....: %d / %d\n"+
			"Block size......: %d bytes\n"+
			"Inode size......: %d bytes\n"+
			"Groups count....: %d\n"+
			"Groups size.....: %d blocks\n"+
			"Groups inodes...: %d inodes\n"+
			"Inodetable size.: %d blocks\n",
		sb.VolumeName(),
		uint64(ext2.BlockSize)*uint64(sb.BlocksCount),
		uint64(sb.FreeBlocksCount)*ext2.BlockSize/1024,
		sb.FreeInodesCount, sb.InodesCount,
		sb.FreeBlocksCount, sb.BlocksCount,
		ext2.BlockSize,
		sb.InodeSize,
		ctx.FS.GroupCount(),
		sb.BlocksPerGroup,
		sb.InodesPerGroup,
		inodeTableBlocks,
	)

	return out, nil
}
