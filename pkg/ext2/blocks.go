package ext2

import (
	"encoding/binary"
	"fmt"
	"io"
)

// reachableBlockAddrs returns the first n data-block addresses reachable
// from inode's pointer tree, flattening direct, single-indirect,
// double-indirect, and triple-indirect pointers in order, per spec.md §4.6.
// A zero entry denotes a hole. If the pointer space (through the
// triply-indirect range) ends before n addresses are produced, it returns
// ErrCorruption.
func (fs *FileSystem) reachableBlockAddrs(in *Inode, n int) ([]uint32, error) {
	addrs := make([]uint32, n)

	for i := 0; i < DirectPointers && i < n; i++ {
		addrs[i] = in.Block[i]
	}

	i := DirectPointers
	levels := []struct {
		ptr   uint32
		depth int
	}{
		{in.Block[12], 0}, // singly indirect
		{in.Block[13], 1}, // doubly indirect
		{in.Block[14], 2}, // triply indirect
	}

	for _, lvl := range levels {
		if i >= n {
			break
		}
		if err := fs.collectPointers(lvl.ptr, lvl.depth, addrs, &i); err != nil {
			return nil, err
		}
	}

	if i < n {
		return nil, fmt.Errorf("inode data needs %d blocks, pointer space holds %d: %w", n, i, ErrCorruption)
	}

	return addrs, nil
}

// collectPointers recurses through an indirect-pointer chain rooted at
// block addr (depth levels of indirection deep) and appends resulting data
// block addresses into out, starting at *i, until out is full or the chain
// is exhausted.
func (fs *FileSystem) collectPointers(addr uint32, depth int, out []uint32, i *int) error {
	if *i >= len(out) {
		return nil
	}
	if addr == 0 {
		// A hole at this level means every block beneath it is a hole too.
		*i += holesCovered(depth)
		if *i > len(out) {
			*i = len(out)
		}
		return nil
	}

	block, err := fs.dev.readBlock(addr)
	if err != nil {
		return err
	}

	ptrs := make([]uint32, PointersPerBlock)
	for j := range ptrs {
		ptrs[j] = binary.LittleEndian.Uint32(block[j*PointerSize:])
	}

	if depth == 0 {
		for _, p := range ptrs {
			if *i >= len(out) {
				return nil
			}
			out[*i] = p
			*i++
		}
		return nil
	}

	for _, p := range ptrs {
		if *i >= len(out) {
			return nil
		}
		if err := fs.collectPointers(p, depth-1, out, i); err != nil {
			return err
		}
	}

	return nil
}

// holesCovered returns how many data blocks a hole at the given indirection
// depth would otherwise have covered. A block at depth 0 (singly indirect)
// holds PointersPerBlock direct data pointers itself, so the count is
// PointersPerBlock^(depth+1), not PointersPerBlock^depth.
func holesCovered(depth int) int {
	n := PointersPerBlock
	for ; depth > 0; depth-- {
		n *= PointersPerBlock
	}
	return n
}

// inodeReader streams an inode's data blocks in order, substituting
// zero-filled buffers for holes, per spec.md §4.6.
type inodeReader struct {
	fs      *FileSystem
	addrs   []uint32
	size    int64
	pos     int64
	current []byte
}

// Reader returns a stream of inode's data, exactly Size() bytes long. The
// last block yields only the bytes that remain up to Size().
func (fs *FileSystem) Reader(in *Inode) (io.Reader, error) {
	size := in.Size()
	n := int((size + BlockSize - 1) / BlockSize)

	addrs, err := fs.reachableBlockAddrs(in, n)
	if err != nil {
		return nil, err
	}

	return &inodeReader{fs: fs, addrs: addrs, size: size}, nil
}

func (r *inodeReader) Read(p []byte) (int, error) {
	if r.pos >= r.size {
		return 0, io.EOF
	}

	if len(r.current) == 0 {
		blockIdx := int(r.pos / BlockSize)
		if blockIdx >= len(r.addrs) {
			return 0, fmt.Errorf("inode data ends before claimed size (%d bytes): %w", r.size, ErrCorruption)
		}

		block, err := r.fs.dev.readBlock(r.addrs[blockIdx])
		if err != nil {
			return 0, err
		}

		remaining := r.size - int64(blockIdx)*BlockSize
		if remaining > BlockSize {
			remaining = BlockSize
		}
		r.current = block[:remaining]
	}

	n := copy(p, r.current)
	r.current = r.current[n:]
	r.pos += int64(n)

	return n, nil
}

// FreeInodeBlocks frees every block referenced by inode's pointer tree,
// children before parents so a crash mid-free leaks rather than corrupts
// (spec.md §4.6), then clears the inode's size and pointer fields and
// stamps its deletion time.
func (fs *FileSystem) FreeInodeBlocks(in *Inode, now uint32) error {
	for i := 0; i < DirectPointers; i++ {
		if in.Block[i] != 0 {
			if err := fs.FreeBlock(in.Block[i]); err != nil {
				return err
			}
		}
	}

	for depth, idx := range []int{12, 13, 14} {
		if in.Block[idx] != 0 {
			if err := fs.freeIndirectChain(in.Block[idx], depth); err != nil {
				return err
			}
		}
	}

	for i := range in.Block {
		in.Block[i] = 0
	}
	in.Blocks = 0
	in.SizeLower = 0
	in.DeleteTime = now

	return nil
}

// freeIndirectChain recursively frees every non-zero pointer in the chain
// rooted at addr (depth levels of indirection), then frees addr itself.
func (fs *FileSystem) freeIndirectChain(addr uint32, depth int) error {
	block, err := fs.dev.readBlock(addr)
	if err != nil {
		return err
	}

	for j := 0; j < PointersPerBlock; j++ {
		p := binary.LittleEndian.Uint32(block[j*PointerSize:])
		if p == 0 {
			continue
		}

		if depth == 0 {
			if err := fs.FreeBlock(p); err != nil {
				return err
			}
			continue
		}

		if err := fs.freeIndirectChain(p, depth-1); err != nil {
			return err
		}
	}

	return fs.FreeBlock(addr)
}

// AppendDirectoryBlock allocates a new data block for a directory inode,
// assigns it to the next free direct-pointer slot, and grows the inode's
// size accordingly. Directories deliberately never grow past the 12 direct
// pointers, per spec.md §4.6.
func (fs *FileSystem) AppendDirectoryBlock(in *Inode) (uint32, error) {
	slot := -1
	for i := 0; i < DirectPointers; i++ {
		if in.Block[i] == 0 {
			slot = i
			break
		}
	}
	if slot == -1 {
		return 0, fmt.Errorf("directory already has %d direct blocks: %w", DirectPointers, ErrNoSpace)
	}

	block, err := fs.AllocateBlock()
	if err != nil {
		return 0, err
	}

	in.Block[slot] = block
	in.SizeLower += BlockSize
	in.Blocks += BlockSize / 512

	return block, nil
}

// DirectBlockCount returns the number of allocated direct blocks (non-zero
// entries in Block[0:12]) in in — the directory blocks a directory
// currently spans.
func (in *Inode) DirectBlockCount() int {
	n := 0
	for i := 0; i < DirectPointers; i++ {
		if in.Block[i] != 0 {
			n++
		}
	}
	return n
}
