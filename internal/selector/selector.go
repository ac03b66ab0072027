// Package selector turns the start token typed by the user into the exact
// -start value handed to the external call graph tool.
package selector

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Selection is the outcome of resolving a start token.
type Selection struct {
	// Pattern is passed verbatim to the external tool.
	Pattern string
	// Display is the human-facing form of the start point.
	Display string
	// Function is the bare function name.
	Function string
	// File is the absolute file path when the token was a file:function
	// disambiguator, empty otherwise.
	File string
}

// Qualified reports whether the selection pins a single file.
func (s Selection) Qualified() bool {
	return s.File != ""
}

var definitionPattern = regexp.MustCompile(
	`\b(?:def|fn|func|function|sub|proc|fun|method)\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)`,
)

// Resolve decides whether raw names a unique file:function pair under
// scanRoot. Malformed disambiguators fall through to the bare-name path.
func Resolve(raw, scanRoot string) Selection {
	raw = strings.TrimSpace(raw)
	if sel, ok := resolveQualified(raw, scanRoot); ok {
		return sel
	}
	name := NormalizeName(raw)
	return Selection{Pattern: name, Display: name, Function: name}
}

// Rebase moves a qualified selection from one tree to a mirror of it, so a
// selector resolved against the user's tree still names exactly one node when
// the tool scans a scratch copy.
func Rebase(sel Selection, from, to string) Selection {
	if !sel.Qualified() {
		return sel
	}
	fromAbs, err := filepath.Abs(from)
	if err != nil {
		return sel
	}
	rel, err := filepath.Rel(fromAbs, sel.File)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return sel
	}
	toAbs, err := filepath.Abs(to)
	if err != nil {
		return sel
	}
	moved := filepath.Join(toAbs, rel)
	sel.File = moved
	sel.Pattern = anchoredPattern(moved, sel.Function)
	return sel
}

// NormalizeName reduces a pasted definition line to its identifier. Input
// without embedded whitespace is returned trimmed, as is input where no
// defining keyword is found.
func NormalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.ContainsAny(raw, " \t\r\n") {
		return raw
	}
	if m := definitionPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// resolveQualified tries each colon in turn, so a pasted definition after
// the file (src/a.py:def foo(x):) keeps its file.
func resolveQualified(raw, scanRoot string) (Selection, bool) {
	for i := strings.Index(raw, ":"); i >= 0; {
		if sel, ok := qualifiedAt(raw[:i], raw[i+1:], scanRoot); ok {
			return sel, true
		}
		next := strings.Index(raw[i+1:], ":")
		if next < 0 {
			break
		}
		i += next + 1
	}
	return Selection{}, false
}

func qualifiedAt(left, right, scanRoot string) (Selection, bool) {
	right = strings.TrimSpace(right)
	if left == "" || right == "" || !strings.ContainsAny(left, `/\`) {
		return Selection{}, false
	}
	if strings.ContainsAny(right, `/\`) {
		return Selection{}, false
	}

	fn := NormalizeName(right)
	if fn == "" || strings.Contains(fn, ":") {
		return Selection{}, false
	}

	candidate := left
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(scanRoot, left)
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return Selection{}, false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() || filepath.Ext(abs) == "" {
		return Selection{}, false
	}

	return Selection{
		Pattern:  anchoredPattern(abs, fn),
		Display:  displayPath(left, abs, scanRoot) + ":" + fn,
		Function: fn,
		File:     abs,
	}, true
}

func anchoredPattern(absPath, fn string) string {
	return "^" + regexp.QuoteMeta(absPath+":"+fn) + "$"
}

func displayPath(original, abs, scanRoot string) string {
	if !filepath.IsAbs(original) {
		return filepath.ToSlash(filepath.Clean(original))
	}
	rootAbs, err := filepath.Abs(scanRoot)
	if err != nil {
		return original
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return original
	}
	return filepath.ToSlash(rel)
}
