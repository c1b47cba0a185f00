package ext2

import "testing"

func TestIdealRecLen(t *testing.T) {
	cases := []struct {
		nameLen int
		want    int
	}{
		{0, 8},
		{1, 12},
		{4, 12},
		{5, 16},
		{255, 264},
	}

	for _, c := range cases {
		if got := idealRecLen(c.nameLen); got != c.want {
			t.Errorf("idealRecLen(%d) = %d, want %d", c.nameLen, got, c.want)
		}
	}
}

func TestEncodeDecodeDirentRoundTrip(t *testing.T) {
	block := zeroBlock()
	encodeDirent(block, 0, 42, 16, 5, FileTypeRegular, "hello")

	ino, recLen, nameLen, fileType, name := decodeDirent(block, 0)
	if ino != 42 || recLen != 16 || nameLen != 5 || fileType != FileTypeRegular || name != "hello" {
		t.Fatalf("round-trip mismatch: ino=%d recLen=%d nameLen=%d fileType=%d name=%q", ino, recLen, nameLen, fileType, name)
	}
}

func TestInsertIntoBlockSplitsSlack(t *testing.T) {
	block := zeroBlock()
	// A single record spanning the whole block, as a freshly bootstrapped
	// directory's ".." entry would leave it.
	encodeDirent(block, 0, 2, uint16(BlockSize), 2, FileTypeDir, "..")

	ok, err := insertIntoBlock(block, idealRecLen(1), 5, "x", FileTypeRegular)
	if err != nil {
		t.Fatalf("insertIntoBlock: %v", err)
	}
	if !ok {
		t.Fatalf("insertIntoBlock did not find slack in an all-slack block")
	}

	ino, recLen, nameLen, fileType, name := decodeDirent(block, 0)
	if ino != 2 || recLen != 12 || nameLen != 2 || fileType != FileTypeDir || name != ".." {
		t.Fatalf("predecessor record was not shrunk correctly: ino=%d recLen=%d name=%q", ino, recLen, name)
	}

	ino, recLen, nameLen, fileType, name = decodeDirent(block, 12)
	if ino != 5 || recLen != uint16(BlockSize-12) || nameLen != 1 || fileType != FileTypeRegular || name != "x" {
		t.Fatalf("new record placed incorrectly: ino=%d recLen=%d name=%q", ino, recLen, name)
	}
}

func TestInsertIntoBlockNoSlack(t *testing.T) {
	block := zeroBlock()
	encodeDirent(block, 0, 2, uint16(BlockSize), 2, FileTypeDir, "..")

	// Fill nearly the whole block with one big name so there is no room
	// left for a second record.
	bigName := make([]byte, BlockSize-dentryHeaderSize-16)
	for i := range bigName {
		bigName[i] = 'a'
	}
	if ok, err := insertIntoBlock(block, idealRecLen(len(bigName)), 9, string(bigName), FileTypeRegular); err != nil || !ok {
		t.Fatalf("expected the big name to fit once: ok=%v err=%v", ok, err)
	}

	ok, err := insertIntoBlock(block, idealRecLen(4), 10, "four", FileTypeRegular)
	if err != nil {
		t.Fatalf("insertIntoBlock: %v", err)
	}
	if ok {
		t.Fatalf("expected no slack left for a second insert")
	}
}

func TestReadDirSkipsTombstones(t *testing.T) {
	fs, err := Open(newTestImage(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	addr, err := fs.AllocateBlock()
	if err != nil {
		t.Fatalf("AllocateBlock: %v", err)
	}

	block := zeroBlock()
	encodeDirent(block, 0, RootInode, 12, 1, FileTypeDir, ".")
	encodeDirent(block, 12, 0, uint16(BlockSize-12), 0, 0, "")
	if err := fs.dev.writeBlock(addr, block); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	dir := &Inode{Mode: ModeTypeDirectory | DefaultDirPermissions, SizeLower: BlockSize}
	dir.Block[0] = addr

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "." {
		t.Fatalf("expected only the live entry, got %v", entries)
	}
}
