package languages

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/ignore"
)

// Spec describes one language code the call-graph tool understands.
type Spec struct {
	Code          string
	Extensions    []string
	CommentMarker string
	// SourceExtension names the subset artifact written for this language.
	SourceExtension string
}

var specs = []Spec{
	{Code: "awk", Extensions: []string{".awk"}, CommentMarker: "#", SourceExtension: ".awk"},
	{Code: "bash", Extensions: []string{".bash"}, CommentMarker: "#", SourceExtension: ".bash"},
	{Code: "basic", Extensions: []string{".bas"}, CommentMarker: "'", SourceExtension: ".bas"},
	{Code: "dart", Extensions: []string{".dart"}, CommentMarker: "//", SourceExtension: ".dart"},
	{Code: "fortran", Extensions: []string{".f", ".f90"}, CommentMarker: "!", SourceExtension: ".f90"},
	{Code: "go", Extensions: []string{".go"}, CommentMarker: "//", SourceExtension: ".go"},
	{Code: "jl", Extensions: []string{".jl"}, CommentMarker: "#", SourceExtension: ".jl"},
	{Code: "js", Extensions: []string{".js"}, CommentMarker: "//", SourceExtension: ".js"},
	{Code: "kotlin", Extensions: []string{".kt"}, CommentMarker: "//", SourceExtension: ".kt"},
	{Code: "lua", Extensions: []string{".lua"}, CommentMarker: "--", SourceExtension: ".lua"},
	{Code: "matlab", Extensions: []string{".m"}, CommentMarker: "%", SourceExtension: ".m"},
	{Code: "php", Extensions: []string{".php"}, CommentMarker: "//", SourceExtension: ".php"},
	{Code: "pl", Extensions: []string{".pl", ".pm"}, CommentMarker: "#", SourceExtension: ".pl"},
	{Code: "py", Extensions: []string{".py"}, CommentMarker: "#", SourceExtension: ".py"},
	{Code: "r", Extensions: []string{".r"}, CommentMarker: "#", SourceExtension: ".r"},
	{Code: "ruby", Extensions: []string{".rb"}, CommentMarker: "#", SourceExtension: ".rb"},
	{Code: "rust", Extensions: []string{".rs"}, CommentMarker: "//", SourceExtension: ".rs"},
	{Code: "scala", Extensions: []string{".scala"}, CommentMarker: "//", SourceExtension: ".scala"},
	{Code: "swift", Extensions: []string{".swift"}, CommentMarker: "//", SourceExtension: ".swift"},
	{Code: "tcl", Extensions: []string{".tcl"}, CommentMarker: "#", SourceExtension: ".tcl"},
}

var (
	byCode = make(map[string]Spec, len(specs))
	byExt  = make(map[string]string)
)

func init() {
	for _, s := range specs {
		byCode[s.Code] = s
		for _, ext := range s.Extensions {
			byExt[ext] = s.Code
		}
	}
}

// Lookup returns the spec for a language code.
func Lookup(code string) (Spec, bool) {
	s, ok := byCode[code]
	return s, ok
}

// Codes returns every known language code, sorted.
func Codes() []string {
	codes := make([]string, 0, len(specs))
	for _, s := range specs {
		codes = append(codes, s.Code)
	}
	sort.Strings(codes)
	return codes
}

// ForExtension maps a file extension (with dot, any case) to a language code.
func ForExtension(ext string) (string, bool) {
	code, ok := byExt[strings.ToLower(ext)]
	return code, ok
}

// CommentMarker returns the line-comment marker for code, "#" when unknown.
func CommentMarker(code string) string {
	if s, ok := byCode[code]; ok {
		return s.CommentMarker
	}
	return "#"
}

// SourceExtension returns the subset artifact extension for code. Unknown
// codes use the code itself.
func SourceExtension(code string) string {
	if s, ok := byCode[code]; ok {
		return s.SourceExtension
	}
	return "." + code
}

// Inference is the outcome of counting source files under a root.
type Inference struct {
	Code   string
	Counts map[string]int
}

// Ambiguous reports whether more than one language shares the top count.
func (i Inference) Ambiguous() bool {
	return i.Code == "" && len(i.Counts) > 0
}

// Infer walks root, counts files per language code and picks the unique most
// frequent one. A tie for first place, or no recognized files, leaves Code
// empty. Unreadable entries are skipped.
func Infer(root string, matcher *ignore.Matcher) Inference {
	if matcher == nil {
		matcher = ignore.NewMatcher(nil)
	}
	counts := make(map[string]int)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if matcher.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if code, ok := ForExtension(filepath.Ext(path)); ok {
			counts[code]++
		}
		return nil
	})

	result := Inference{Counts: counts}
	best, tied := 0, false
	for code, n := range counts {
		switch {
		case n > best:
			best, tied = n, false
			result.Code = code
		case n == best:
			tied = true
		}
	}
	if tied {
		result.Code = ""
	}
	return result
}
