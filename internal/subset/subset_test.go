package subset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `#!/usr/bin/env python3
# Source: src/a.py:12 (foo)
def foo():
    bar()

# Source: ./src/util/b.py:3 (bar)
def bar():
    pass

# Source: lib/a.py:40 (foo)
def foo():
    pass

# Source: broken (nothing)
# Source: pkg/c.py:x (baz)
`

func TestParseOccurrences(t *testing.T) {
	occ := ParseOccurrences(listing)
	require.Len(t, occ, 3)
	assert.Equal(t, Occurrence{Path: "src/a.py", Line: 12, Function: "foo"}, occ[0])
	assert.Equal(t, Occurrence{Path: "src/util/b.py", Line: 3, Function: "bar"}, occ[1])
	assert.Equal(t, "lib/a.py:40", occ[2].Location())
}

func TestIndexLookups(t *testing.T) {
	idx := NewIndex(ParseOccurrences(listing))

	loc, ok := idx.Exact("src/a.py", "foo")
	require.True(t, ok)
	assert.Equal(t, "src/a.py:12", loc)

	loc, ok = idx.Exact("./src/util/b.py", "bar")
	require.True(t, ok)
	assert.Equal(t, "src/util/b.py:3", loc)

	_, ok = idx.ByBasename("a.py", "foo")
	assert.False(t, ok, "ambiguous basename must not resolve")
	assert.Equal(t, []string{"lib/a.py:40", "src/a.py:12"}, idx.Candidates("a.py", "foo"))

	loc, ok = idx.ByBasename("b.py", "bar")
	require.True(t, ok)
	assert.Equal(t, "src/util/b.py:3", loc)
}

func TestLabelExactRelativePath(t *testing.T) {
	r := NewReconciler(t.TempDir(), NewIndex(ParseOccurrences("# Source: src/a.py:12 (foo)\n")))
	assert.Equal(t, "foo (src/a.py:12)", r.Label("src/a.py", "foo"))
}

func TestLabelExactAbsolutePath(t *testing.T) {
	root := t.TempDir()
	r := NewReconciler(root, NewIndex(ParseOccurrences("# Source: src/a.py:12 (foo)\n")))
	assert.Equal(t, "foo (src/a.py:12)", r.Label(filepath.Join(root, "src", "a.py"), "foo"))
}

func TestLabelThroughSymlinkedRoot(t *testing.T) {
	real := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(real, link))
	require.NoError(t, os.MkdirAll(filepath.Join(real, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "src", "a.py"), nil, 0o644))

	r := NewReconciler(link, NewIndex(ParseOccurrences("# Source: src/a.py:7 (foo)\n")))
	assert.Equal(t, "foo (src/a.py:7)", r.Label(filepath.Join(real, "src", "a.py"), "foo"))
}

func TestLabelAmbiguousBasenameFallsBack(t *testing.T) {
	idx := NewIndex(ParseOccurrences("# Source: src/a.py:12 (foo)\n# Source: lib/a.py:40 (foo)\n"))
	r := NewReconciler(t.TempDir(), idx)
	assert.Equal(t, "foo (a.py)", r.Label("a.py", "foo"))
}

func TestLabelUniqueBasename(t *testing.T) {
	idx := NewIndex(ParseOccurrences("# Source: src/deep/a.py:5 (foo)\n"))
	r := NewReconciler(t.TempDir(), idx)
	assert.Equal(t, "foo (src/deep/a.py:5)", r.Label("a.py", "foo"))
	assert.Equal(t, "foo (src/deep/a.py:5)", r.Label("other/tree/a.py", "foo"))
}

func TestLabelFallbacks(t *testing.T) {
	root := t.TempDir()
	r := NewReconciler(root, nil)

	assert.Equal(t, "foo (src/a.py)", r.Label(filepath.Join(root, "src", "a.py"), "foo"))
	assert.Equal(t, "foo (/elsewhere/a.py)", r.Label("/elsewhere/a.py", "foo"))
	assert.Equal(t, "foo (../up/a.py)", r.Label("../up/a.py", "foo"))
	assert.Equal(t, "foo (a.py)", r.Label("a.py", "foo"))
	assert.Equal(t, "foo", r.Label("", "foo"))
}

func TestInsertHeader(t *testing.T) {
	lines := []string{"Call tree:", "main", "", "other"}

	withShebang := InsertHeader("#!/bin/sh\necho hi\n", lines, "#")
	assert.Equal(t, "#!/bin/sh\n# Call tree:\n# main\n#\n# other\n\necho hi\n", withShebang)

	plain := InsertHeader("fn main() {}\n", lines[:2], "//")
	assert.Equal(t, "// Call tree:\n// main\n\nfn main() {}\n", plain)

	onlyShebang := InsertHeader("#!/usr/bin/env ruby", lines[:1], "#")
	assert.Equal(t, "#!/usr/bin/env ruby\n# Call tree:\n\n", onlyShebang)

	assert.Equal(t, "x\n", InsertHeader("x\n", nil, "#"))
}

func TestSpliceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset.py")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env python3\ndef foo():\n    pass\n"), 0o755))

	require.NoError(t, SpliceFile(path, []string{"Call tree:", "foo"}, "#"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env python3\n# Call tree:\n# foo\n\ndef foo():\n    pass\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	assert.Error(t, SpliceFile(filepath.Join(t.TempDir(), "missing.py"), []string{"x"}, "#"))
	assert.NoError(t, SpliceFile(filepath.Join(t.TempDir(), "missing.py"), nil, "#"))
}
