package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func init() {
	// No subprocess runs in these tests, skip the handle-release pause.
	CleanupGracePeriod = 0
}

func TestCreateCopiesTree(t *testing.T) {
	source := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(source, "nested", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "index.html"), []byte("<html></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "nested", "deep", "app.js"), []byte("console.log(1)"), 0644))

	ws, err := Create(source, nil)
	require.NoError(t, err)
	defer ws.Remove()

	require.True(t, strings.HasPrefix(filepath.Base(ws.Path), "airlift-"))

	raw, err := os.ReadFile(filepath.Join(ws.Path, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(raw))

	raw, err = os.ReadFile(filepath.Join(ws.Path, "nested", "deep", "app.js"))
	require.NoError(t, err)
	require.Equal(t, "console.log(1)", string(raw))
}

func TestCreateUniquePaths(t *testing.T) {
	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "index.html"), []byte("x"), 0644))

	first, err := Create(source, nil)
	require.NoError(t, err)
	defer first.Remove()

	second, err := Create(source, nil)
	require.NoError(t, err)
	defer second.Remove()

	require.NotEqual(t, first.Path, second.Path)
}

func TestRemoveDeletesEverything(t *testing.T) {
	source := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(source, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "sub", "file.txt"), []byte("x"), 0644))

	ws, err := Create(source, nil)
	require.NoError(t, err)

	ws.Remove()

	_, err = os.Stat(ws.Path)
	require.True(t, os.IsNotExist(err))
}

func TestRemoveContinuesPastUndeletableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not restrict root")
	}

	source := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(source, "locked"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "locked", "pinned.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "free.txt"), []byte("x"), 0644))

	ws, err := Create(source, nil)
	require.NoError(t, err)

	lockedDir := filepath.Join(ws.Path, "locked")
	require.NoError(t, os.Chmod(lockedDir, 0555))
	defer os.Chmod(lockedDir, 0755)
	defer os.RemoveAll(ws.Path)

	// Must not panic or abort; the deletable file goes away even though
	// the locked directory's content cannot.
	ws.Remove()

	_, err = os.Stat(filepath.Join(ws.Path, "free.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(lockedDir, "pinned.txt"))
	require.NoError(t, err)
}

func TestListFilesCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist-yet")

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Empty(t, files)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestListFilesRecurses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "deep.txt"), []byte("x"), 0644))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a", "b", "deep.txt"),
		filepath.Join(dir, "top.txt"),
	}, files)
}
