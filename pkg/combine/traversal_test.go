package combine

import (
	"os"
	"path/filepath"
	"testing"

	"csvcombine/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestCollectFilesMatchesExtensionRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.csv"), "h\n")
	writeFile(t, filepath.Join(root, "a.csv"), "h\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "x\n")
	writeFile(t, filepath.Join(root, "UPPER.CSV"), "h\n")
	writeFile(t, filepath.Join(root, ".csv"), "h\n")
	writeFile(t, filepath.Join(root, "data.csv.bak"), "h\n")
	writeFile(t, filepath.Join(root, "sub", "deep", "c.csv"), "h\n")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.csv"), 0755))

	files, err := CollectFiles(root, "csv", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv", "sub/deep/c.csv"}, relPaths(t, root, files))
}

func TestCollectFilesOtherExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.csv"), "h\n")
	writeFile(t, filepath.Join(root, "a.tsv"), "h\n")

	files, err := CollectFiles(root, "tsv", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tsv"}, relPaths(t, root, files))
}

func TestCollectFilesAppliesIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.csv"), "h\n")
	writeFile(t, filepath.Join(root, "reports-combined.csv"), "h\n")
	writeFile(t, filepath.Join(root, "archive", "old.csv"), "h\n")

	gi := ignore.New(nil)
	gi.CompileIgnoreLines("*-combined.csv", "archive/")

	files, err := CollectFiles(root, "csv", gi, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.csv"}, relPaths(t, root, files))
}

func TestCollectFilesFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.csv")
	writeFile(t, target, "h\n")
	if err := os.Symlink(target, filepath.Join(root, "link.csv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere.csv"), filepath.Join(root, "dangling.csv")))

	logger, logs := observedLogger()
	files, err := CollectFiles(root, "csv", nil, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"link.csv"}, relPaths(t, root, files))
	assert.Equal(t, 1, logs.FilterMessage("Skipping unreadable entry").Len())
}

func TestCollectFilesSkipsUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.csv"), "h\n")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.csv"), "h\n")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	logger, logs := observedLogger()
	files, err := CollectFiles(root, "csv", nil, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, relPaths(t, root, files))
	assert.GreaterOrEqual(t, logs.FilterMessage("Skipping unreadable entry").Len(), 1)
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a.csv":     "csv",
		"a.b.csv":   "csv",
		".csv":      "",
		"noext":     "",
		"trailing.": "",
		"A.CSV":     "CSV",
	}
	for name, want := range tests {
		assert.Equal(t, want, extension(name), name)
	}
}
