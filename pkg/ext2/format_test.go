package ext2

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.img")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()

	if err := Format(f, FormatOptions{TotalBlocks: 1024, InodeCount: 64, VolumeLabel: "TEST"}); err != nil {
		t.Fatalf("Format: %v", err)
	}

	return path
}

func TestFormatProducesOpenableImage(t *testing.T) {
	path := newTestImage(t)

	fs, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	sb := fs.Superblock()
	if sb.Magic != Signature {
		t.Fatalf("Magic = %#x, want %#x", sb.Magic, Signature)
	}
	if sb.VolumeName() != "TEST" {
		t.Fatalf("VolumeName = %q, want TEST", sb.VolumeName())
	}
	if sb.BlocksCount != 1024 {
		t.Fatalf("BlocksCount = %d, want 1024", sb.BlocksCount)
	}

	root, err := fs.ResolveInode(RootInode)
	if err != nil {
		t.Fatalf("ResolveInode(root): %v", err)
	}
	if !root.IsDirectory() {
		t.Fatalf("root inode is not a directory")
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir(root): %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "." || entries[1].Name != ".." {
		t.Fatalf("root directory entries = %v, want [. ..]", entries)
	}
}
