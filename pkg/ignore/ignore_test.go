package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesPath(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		path    string
		ignored bool
	}{
		{"exact file name anywhere", []string{"reports-combined.csv"}, "reports-combined.csv", true},
		{"exact file name nested", []string{"old.csv"}, "2024/q1/old.csv", true},
		{"star stays in segment", []string{"*-combined.csv"}, "x-combined.csv", true},
		{"star does not cross dirs", []string{"/a*.csv"}, "archive/b.csv", false},
		{"question mark", []string{"q?.csv"}, "q1.csv", true},
		{"dot is literal", []string{"a.csv"}, "abcsv", false},
		{"rooted only at root", []string{"/old.csv"}, "sub/old.csv", false},
		{"rooted at root", []string{"/old.csv"}, "old.csv", true},
		{"dir only matches dir", []string{"archive/"}, "archive/", true},
		{"dir only matches children", []string{"archive/"}, "archive/x.csv", true},
		{"dir only skips file", []string{"archive/"}, "archive", false},
		{"double star middle", []string{"a/**/b.csv"}, "a/x/y/b.csv", true},
		{"double star middle zero dirs", []string{"a/**/b.csv"}, "a/b.csv", true},
		{"double star trailing", []string{"raw/**"}, "raw/deep/file.csv", true},
		{"negation re-includes", []string{"*.csv", "!keep.csv"}, "keep.csv", false},
		{"comment ignored", []string{"# keep.csv"}, "keep.csv", false},
		{"escaped hash", []string{`\#odd.csv`}, "#odd.csv", true},
		{"no patterns", nil, "a.csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			m.CompileIgnoreLines(tt.lines...)
			assert.Equal(t, tt.ignored, m.MatchesPath(tt.path))
		})
	}
}

func TestMatchesPathWithPatternReturnsDecidingPattern(t *testing.T) {
	m := New(nil)
	m.CompileIgnoreLines("*.csv", "!keep.csv")

	matched, p := m.MatchesPathWithPattern("keep.csv")
	assert.False(t, matched)
	require.NotNil(t, p)
	assert.Equal(t, "!keep.csv", p.Line)
	assert.Equal(t, 2, p.LineNo)
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.MatchesPath("a.csv"))
	assert.Equal(t, 0, m.Len())
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	global := filepath.Join(t.TempDir(), "global-ignore")

	require.NoError(t, os.WriteFile(global, []byte("*.bak.csv\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("# local\r\narchive/\n\n"), 0644))

	m, err := Load(root, global, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.MatchesPath("x.bak.csv"))
	assert.True(t, m.MatchesPath("archive/"))
	assert.Equal(t, global, m.Patterns[0].Source)
}

func TestLoadWithoutIgnoreFiles(t *testing.T) {
	m, err := Load(t.TempDir(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestLoadMissingGlobalIsSkipped(t *testing.T) {
	m, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}
