package selector

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveFileFunctionRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.py"), "def foo():\n    pass\n")
	writeFile(t, filepath.Join(root, "src", "b.py"), "def foo():\n    pass\n")

	sel := Resolve("src/a.py:foo", root)
	require.True(t, sel.Qualified())
	assert.Equal(t, "src/a.py:foo", sel.Display)
	assert.Equal(t, "foo", sel.Function)

	abs := filepath.Join(root, "src", "a.py")
	assert.Equal(t, abs, sel.File)

	re := regexp.MustCompile(sel.Pattern)
	assert.True(t, re.MatchString(abs+":foo"))
	assert.False(t, re.MatchString(filepath.Join(root, "src", "b.py")+":foo"))
	assert.False(t, re.MatchString(abs+":foobar"))
	assert.False(t, re.MatchString("/prefix"+abs+":foo"))
}

func TestResolveAbsolutePathDisplaysRelative(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "pkg", "main.go")
	writeFile(t, abs, "package main\n")

	sel := Resolve(abs+":run", root)
	require.True(t, sel.Qualified())
	assert.Equal(t, "pkg/main.go:run", sel.Display)
}

func TestResolveIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.py"), "")

	assert.Equal(t, Resolve("src/a.py:foo", root), Resolve("src/a.py:foo", root))
	assert.Equal(t, Resolve("def foo(x):", root), Resolve("def foo(x):", root))
}

func TestResolveFallsThroughToBareName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Makefile"), "")
	writeFile(t, filepath.Join(root, "scripts", "Makefile"), "")

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare identifier", raw: "  main  ", want: "main"},
		{name: "missing file", raw: "src/missing.py:foo", want: "src/missing.py:foo"},
		{name: "file without extension", raw: "scripts/Makefile:build", want: "scripts/Makefile:build"},
		{name: "no separator", raw: "a.py:foo", want: "a.py:foo"},
		{name: "empty function", raw: "src/a.py:", want: "src/a.py:"},
		{name: "python definition", raw: "def compute_total(items):", want: "compute_total"},
		{name: "go method", raw: "func (s *Server) Handle(w http.ResponseWriter) {", want: "Handle"},
		{name: "rust definition", raw: "pub async fn fetch(url: &str)", want: "fetch"},
		{name: "no keyword", raw: "something else", want: "something else"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := Resolve(tc.raw, root)
			assert.False(t, sel.Qualified())
			assert.Equal(t, tc.want, sel.Pattern)
			assert.Equal(t, sel.Pattern, sel.Display)
		})
	}
}

func TestResolveNormalizesQualifiedFunction(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "x.rs"), "")

	sel := Resolve("lib/x.rs:pub fn run()", root)
	require.True(t, sel.Qualified())
	assert.Equal(t, "run", sel.Function)
	assert.Equal(t, "lib/x.rs:run", sel.Display)
}

func TestRebaseMovesSelectorIntoMirror(t *testing.T) {
	root := t.TempDir()
	mirror := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib.rs"), "")

	sel := Resolve("src/lib.rs:parse", root)
	require.True(t, sel.Qualified())

	moved := Rebase(sel, root, mirror)
	want := filepath.Join(mirror, "src", "lib.rs")
	assert.Equal(t, want, moved.File)
	assert.Equal(t, sel.Display, moved.Display)
	assert.True(t, regexp.MustCompile(moved.Pattern).MatchString(want+":parse"))

	bare := Resolve("parse", root)
	assert.Equal(t, bare, Rebase(bare, root, mirror))
}

func TestResolveKeepsFileForPastedDefinition(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.py"), "def foo(x):\n    pass\n")
	writeFile(t, filepath.Join(root, "lib", "x.rs"), "")

	cases := []struct {
		raw     string
		display string
	}{
		{raw: "src/a.py:def foo(x):", display: "src/a.py:foo"},
		{raw: "src/a.py: def foo(x, y):  ", display: "src/a.py:foo"},
		{raw: "lib/x.rs:pub fn foo(url: &str) {", display: "lib/x.rs:foo"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			sel := Resolve(tc.raw, root)
			require.True(t, sel.Qualified())
			assert.Equal(t, "foo", sel.Function)
			assert.Equal(t, tc.display, sel.Display)
		})
	}
}

func TestResolveRejectsPathQualifiedName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.rs"), "")

	sel := Resolve("src/a.rs:Parser::run", root)
	assert.False(t, sel.Qualified())
	assert.Equal(t, "src/a.rs:Parser::run", sel.Pattern)
}
