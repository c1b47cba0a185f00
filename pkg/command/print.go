package command

import (
	"fmt"
	"strings"

	"ext2shell/pkg/ext2"
)

// Print implements the "print" diagnostic command's subcommands:
// superblock, groups, inode <n>, block <n>, inodebitmap [g], blockbitmap [g].
func Print(ctx *Context, sub string, args ...string) (string, error) {
	switch sub {
	case "superblock":
		return printSuperblock(ctx)
	case "groups":
		return printGroups(ctx)
	case "inode":
		n, err := argInt(args, 0)
		if err != nil {
			return "", err
		}
		return printInode(ctx, n)
	case "block":
		n, err := argInt(args, 0)
		if err != nil {
			return "", err
		}
		return printBlock(ctx, uint32(n))
	case "inodebitmap":
		g, err := argIntDefault(args, 0, 0)
		if err != nil {
			return "", err
		}
		return printInodeBitmap(ctx, g)
	case "blockbitmap":
		g, err := argIntDefault(args, 0, 0)
		if err != nil {
			return "", err
		}
		return printBlockBitmap(ctx, g)
	default:
		return "", fmt.Errorf("unknown print subcommand %q: %w", sub, ext2.ErrInvalidSyntax)
	}
}

func argInt(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument: %w", ext2.ErrInvalidSyntax)
	}
	var n int
	if _, err := fmt.Sscanf(args[i], "%d", &n); err != nil {
		return 0, fmt.Errorf("parsing %q: %w", args[i], ext2.ErrInvalidSyntax)
	}
	return n, nil
}

func argIntDefault(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	return argInt(args, i)
}

func printSuperblock(ctx *Context) (string, error) {
	sb := ctx.FS.Superblock()
	uid, _ := sb.UUID()

	return fmt.Sprintf(
		"magic=%#x volume=%q uuid=%s inodes=%d/%d blocks=%d/%d block_size=%d inode_size=%d first_data_block=%d blocks_per_group=%d inodes_per_group=%d",
		sb.Magic, sb.VolumeName(), uid,
		sb.FreeInodesCount, sb.InodesCount,
		sb.FreeBlocksCount, sb.BlocksCount,
		ext2.BlockSize, sb.InodeSize,
		sb.FirstDataBlock, sb.BlocksPerGroup, sb.InodesPerGroup,
	), nil
}

func printGroups(ctx *Context) (string, error) {
	var b strings.Builder
	for g := 0; g < ctx.FS.GroupCount(); g++ {
		gd, err := ctx.FS.GroupDescriptor(g)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "group %d: block_bitmap=%d inode_bitmap=%d inode_table=%d free_blocks=%d free_inodes=%d used_dirs=%d\n",
			g, gd.BlockBitmap, gd.InodeBitmap, gd.InodeTable, gd.FreeBlocksCount, gd.FreeInodesCount, gd.UsedDirsCount)
	}
	return b.String(), nil
}

func printInode(ctx *Context, n int) (string, error) {
	in, err := ctx.FS.ResolveInode(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"mode=%#o uid=%d gid=%d size=%d links=%d blocks=%d block[0..11]=%v indirect=[%d %d %d]",
		in.Mode, in.UID, in.GID, in.Size(), in.LinksCount, in.Blocks,
		in.Block[:ext2.DirectPointers], in.Block[12], in.Block[13], in.Block[14],
	), nil
}

func printBlock(ctx *Context, n uint32) (string, error) {
	block, err := ctx.FS.ReadBlock(n)
	if err != nil {
		return "", err
	}
	return hexDump(block), nil
}

func printInodeBitmap(ctx *Context, g int) (string, error) {
	gd, err := ctx.FS.GroupDescriptor(g)
	if err != nil {
		return "", err
	}
	block, err := ctx.FS.ReadBlock(gd.InodeBitmap)
	if err != nil {
		return "", err
	}
	return hexDump(block[:64]), nil
}

func printBlockBitmap(ctx *Context, g int) (string, error) {
	gd, err := ctx.FS.GroupDescriptor(g)
	if err != nil {
		return "", err
	}
	block, err := ctx.FS.ReadBlock(gd.BlockBitmap)
	if err != nil {
		return "", err
	}
	return hexDump(block[:64]), nil
}

// hexDump renders buf 16 bytes per line: a six-digit hex offset, the bytes
// as hex pairs, and an ASCII gutter between '|' marks in which
// non-printable bytes show as '.'.
func hexDump(buf []byte) string {
	var b strings.Builder

	for offset := 0; offset < len(buf); offset += 16 {
		end := offset + 16
		if end > len(buf) {
			end = len(buf)
		}
		line := buf[offset:end]

		fmt.Fprintf(&b, "%06x  ", offset)
		for i := 0; i < 16; i++ {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
		}

		b.WriteString(" |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}

	return b.String()
}
