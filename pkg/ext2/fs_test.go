package ext2

import "testing"

func TestMkdirThenRmdirRestoresCounters(t *testing.T) {
	path := newTestImage(t)

	fs, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	freeInodesBefore := fs.Superblock().FreeInodesCount
	freeBlocksBefore := fs.Superblock().FreeBlocksCount

	gdBefore, err := fs.GroupDescriptor(0)
	if err != nil {
		t.Fatalf("GroupDescriptor(0): %v", err)
	}
	usedDirsBefore := gdBefore.UsedDirsCount

	root, err := fs.ResolveInode(RootInode)
	if err != nil {
		t.Fatalf("ResolveInode(root): %v", err)
	}
	rootLinksBefore := root.LinksCount

	dirIno, err := fs.AllocateInode(ModeTypeDirectory)
	if err != nil {
		t.Fatalf("AllocateInode: %v", err)
	}

	block, err := fs.BootstrapDirectory(dirIno, RootInode)
	if err != nil {
		t.Fatalf("BootstrapDirectory: %v", err)
	}

	dirInode := &Inode{
		Mode:       ModeTypeDirectory | DefaultDirPermissions,
		LinksCount: 2,
		SizeLower:  BlockSize,
		Blocks:     BlockSize / 512,
	}
	dirInode.Block[0] = block
	if err := fs.WriteInode(dirIno, dirInode); err != nil {
		t.Fatalf("WriteInode: %v", err)
	}

	if err := fs.InsertEntry(RootInode, root, "a", dirIno, FileTypeDir); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	root.LinksCount++
	if err := fs.WriteInode(RootInode, root); err != nil {
		t.Fatalf("WriteInode(root): %v", err)
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir(root): %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Name == "a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find 'a' in root, got %v", entries)
	}

	// Now remove it again and confirm every counter returns to its
	// pre-mkdir value, per spec's round-trip law.
	if err := fs.RemoveEntry(root, dirIno); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}

	if err := fs.FreeInodeBlocks(dirInode, 0); err != nil {
		t.Fatalf("FreeInodeBlocks: %v", err)
	}
	if err := fs.FreeInode(dirIno, ModeTypeDirectory); err != nil {
		t.Fatalf("FreeInode: %v", err)
	}

	root.LinksCount--
	if err := fs.WriteInode(RootInode, root); err != nil {
		t.Fatalf("WriteInode(root): %v", err)
	}

	if fs.Superblock().FreeInodesCount != freeInodesBefore {
		t.Errorf("FreeInodesCount = %d, want %d", fs.Superblock().FreeInodesCount, freeInodesBefore)
	}
	if fs.Superblock().FreeBlocksCount != freeBlocksBefore {
		t.Errorf("FreeBlocksCount = %d, want %d", fs.Superblock().FreeBlocksCount, freeBlocksBefore)
	}
	if root.LinksCount != rootLinksBefore {
		t.Errorf("root LinksCount = %d, want %d", root.LinksCount, rootLinksBefore)
	}

	gdAfter, err := fs.GroupDescriptor(0)
	if err != nil {
		t.Fatalf("GroupDescriptor(0): %v", err)
	}
	if gdAfter.UsedDirsCount != usedDirsBefore {
		t.Errorf("UsedDirsCount = %d, want %d", gdAfter.UsedDirsCount, usedDirsBefore)
	}
}

func TestResolveAndAbsolutePathRoundTrip(t *testing.T) {
	path := newTestImage(t)

	fs, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	root, err := fs.ResolveInode(RootInode)
	if err != nil {
		t.Fatalf("ResolveInode(root): %v", err)
	}

	dirIno, err := fs.AllocateInode(ModeTypeDirectory)
	if err != nil {
		t.Fatalf("AllocateInode: %v", err)
	}
	block, err := fs.BootstrapDirectory(dirIno, RootInode)
	if err != nil {
		t.Fatalf("BootstrapDirectory: %v", err)
	}
	dirInode := &Inode{Mode: ModeTypeDirectory | DefaultDirPermissions, LinksCount: 2, SizeLower: BlockSize, Blocks: BlockSize / 512}
	dirInode.Block[0] = block
	if err := fs.WriteInode(dirIno, dirInode); err != nil {
		t.Fatalf("WriteInode: %v", err)
	}
	if err := fs.InsertEntry(RootInode, root, "a", dirIno, FileTypeDir); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	resolved, err := fs.Resolve(RootInode, "/a")
	if err != nil {
		t.Fatalf("Resolve(/a): %v", err)
	}
	if resolved != dirIno {
		t.Fatalf("Resolve(/a) = %d, want %d", resolved, dirIno)
	}

	abs, err := fs.AbsolutePath(dirIno)
	if err != nil {
		t.Fatalf("AbsolutePath: %v", err)
	}
	if abs != "/a" {
		t.Fatalf("AbsolutePath = %q, want /a", abs)
	}
}
