package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/ignore"
)

// LanguageParser defines the interface each language must implement
type LanguageParser interface {
	// Language returns the language code (e.g., "go", "py")
	Language() string

	// Extensions returns file extensions this parser handles
	Extensions() []string

	// Definitions extracts function and method definitions from source code
	Definitions(filename string, content []byte) ([]Definition, error)
}

// Registry holds all registered language parsers
type Registry struct {
	parsers   map[string]LanguageParser // language code -> parser
	extToLang map[string]string         // extension -> language code
}

// NewRegistry creates a new parser registry
func NewRegistry() *Registry {
	return &Registry{
		parsers:   make(map[string]LanguageParser),
		extToLang: make(map[string]string),
	}
}

// Register adds a language parser to the registry
func (r *Registry) Register(p LanguageParser) {
	lang := p.Language()
	r.parsers[lang] = p
	for _, ext := range p.Extensions() {
		r.extToLang[strings.ToLower(ext)] = lang
	}
}

// ForLanguage returns the parser registered under a language code.
func (r *Registry) ForLanguage(lang string) (LanguageParser, bool) {
	p, ok := r.parsers[lang]
	return p, ok
}

// GetParserForFile returns the appropriate parser for a file
func (r *Registry) GetParserForFile(filename string) (LanguageParser, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := r.extToLang[ext]
	if !ok {
		return nil, false
	}
	parser, ok := r.parsers[lang]
	return parser, ok
}

// FileDefinitions parses a single file and returns its definitions. Unsupported
// files yield nil without error.
func (r *Registry) FileDefinitions(path string) ([]Definition, error) {
	parser, ok := r.GetParserForFile(path)
	if !ok {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Definitions(path, content)
}

// SearchResult holds the definitions matching a name under a root.
type SearchResult struct {
	RootPath    string
	Definitions []Definition
	Issues      []FileIssue
}

// Files returns the distinct relative paths that define the name, sorted.
func (s *SearchResult) Files() []string {
	seen := make(map[string]bool)
	files := make([]string, 0, len(s.Definitions))
	for _, def := range s.Definitions {
		if seen[def.RelPath] {
			continue
		}
		seen[def.RelPath] = true
		files = append(files, def.RelPath)
	}
	sort.Strings(files)
	return files
}

// FindDefinitions walks root and collects every definition named name in
// files of language lang. An empty lang searches every registered language.
// Unparseable files are recorded as issues rather than aborting the walk.
func (r *Registry) FindDefinitions(root, lang, name string, matcher *ignore.Matcher) (*SearchResult, error) {
	if matcher == nil {
		matcher = ignore.NewMatcher(nil)
	}

	result := &SearchResult{RootPath: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		relPath := path
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			relPath = filepath.ToSlash(rel)
		}
		if err != nil {
			result.Issues = append(result.Issues, FileIssue{
				File:    relPath,
				Message: fmt.Sprintf("walk error: %v", err),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if relPath == "." {
			return nil
		}

		if matcher.ShouldIgnore(relPath, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		langParser, ok := r.GetParserForFile(path)
		if !ok || (lang != "" && langParser.Language() != lang) {
			return nil
		}

		defs, err := r.FileDefinitions(path)
		if err != nil {
			result.Issues = append(result.Issues, FileIssue{
				File:     relPath,
				Language: langParser.Language(),
				Message:  err.Error(),
			})
			return nil
		}
		for _, def := range defs {
			if def.Name != name {
				continue
			}
			def.RelPath = relPath
			result.Definitions = append(result.Definitions, def)
		}
		return nil
	})

	sort.Slice(result.Definitions, func(i, j int) bool {
		if result.Definitions[i].RelPath != result.Definitions[j].RelPath {
			return result.Definitions[i].RelPath < result.Definitions[j].RelPath
		}
		return result.Definitions[i].Line < result.Definitions[j].Line
	})
	sort.Slice(result.Issues, func(i, j int) bool {
		if result.Issues[i].File == result.Issues[j].File {
			return result.Issues[i].Message < result.Issues[j].Message
		}
		return result.Issues[i].File < result.Issues[j].File
	})

	return result, err
}

// DefinesIn reports whether the file at path defines name.
func (r *Registry) DefinesIn(path, name string) (bool, error) {
	defs, err := r.FileDefinitions(path)
	if err != nil {
		return false, err
	}
	for _, def := range defs {
		if def.Name == name {
			return true, nil
		}
	}
	return false, nil
}
