package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ext2shell/internal/shlog"
	"ext2shell/pkg/ext2"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.img")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, ext2.Format(f, ext2.FormatOptions{TotalBlocks: 2048, InodeCount: 128, VolumeLabel: "TEST"}))
	require.NoError(t, f.Close())

	fs, err := ext2.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { fs.Close() })

	return NewContext(fs, &shlog.CLI{})
}

func TestMkdirTouchLsScenario(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, Mkdir(ctx, "/a"))

	entries, err := Ls(ctx, "/")
	require.NoError(t, err)
	names := entryNames(entries)
	require.Contains(t, names, "a")

	require.NoError(t, Cd(ctx, "/a"))
	pwd, err := Pwd(ctx)
	require.NoError(t, err)
	require.Equal(t, "/a", pwd)

	require.NoError(t, Touch(ctx, "x"))

	entries, err = Ls(ctx, "")
	require.NoError(t, err)
	names = entryNames(entries)
	require.Contains(t, names, "x")

	attr, err := GetAttr(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "-rw-r--r--", attr.Permissions)
}

func TestRmRemovesEntryAndFreesInode(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, Touch(ctx, "/f"))
	freeBefore := ctx.FS.Superblock().FreeInodesCount

	require.NoError(t, Rm(ctx, "/f"))

	entries, err := Ls(ctx, "/")
	require.NoError(t, err)
	require.NotContains(t, entryNames(entries), "f")

	require.Equal(t, freeBefore+1, ctx.FS.Superblock().FreeInodesCount)
}

func TestRmdirRejectsNonEmptyDirectory(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, Mkdir(ctx, "/a"))
	require.NoError(t, Touch(ctx, "/a/x"))

	err := Rmdir(ctx, "/a")
	require.True(t, errors.Is(err, ext2.ErrNotEmpty), "expected ErrNotEmpty, got %v", err)

	require.NoError(t, Rm(ctx, "/a/x"))
	require.NoError(t, Rmdir(ctx, "/a"))
}

func TestRenameRoundTrip(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, Touch(ctx, "/p"))
	require.NoError(t, Rename(ctx, "/p", "q"))
	require.NoError(t, Rename(ctx, "/q", "p"))

	entries, err := Ls(ctx, "/")
	require.NoError(t, err)
	require.Contains(t, entryNames(entries), "p")
}

func TestCatEmitsExactByteCount(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, Touch(ctx, "/f"))

	var buf bytes.Buffer
	require.NoError(t, Cat(ctx, "/f", &buf))
	require.Equal(t, 0, buf.Len())
}

func entryNames(entries []ext2.DirEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
