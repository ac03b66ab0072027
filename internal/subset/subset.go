// Package subset reads the subset-source artifact written by the external
// tool and reconciles graph node labels against the exact source locations
// it records.
package subset

import (
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Occurrence is one `Source: <relpath>:<line> (<function>)` annotation.
type Occurrence struct {
	Path     string // slash-separated, relative to the scan root
	Line     int
	Function string
}

// Location renders the occurrence as "relpath:line".
func (o Occurrence) Location() string {
	return o.Path + ":" + strconv.Itoa(o.Line)
}

var sourcePattern = regexp.MustCompile(`Source:\s*(\S+?):(\d+)\s*\(([^()]*)\)`)

// ParseOccurrences extracts every source annotation from the subset listing,
// in file order. Malformed annotations are skipped.
func ParseOccurrences(text string) []Occurrence {
	var out []Occurrence
	for _, m := range sourcePattern.FindAllStringSubmatch(text, -1) {
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		fn := strings.TrimSpace(m[3])
		rel := cleanRel(m[1])
		if rel == "" || fn == "" {
			continue
		}
		out = append(out, Occurrence{Path: rel, Line: line, Function: fn})
	}
	return out
}

type key struct {
	path     string
	function string
}

// Index answers location lookups for (path, function) pairs.
type Index struct {
	exact    map[key]string
	basename map[key]map[string]bool
}

// NewIndex builds both lookup tables. When the same (relpath, function) pair
// occurs more than once the first occurrence is the exact answer.
func NewIndex(occurrences []Occurrence) *Index {
	idx := &Index{
		exact:    make(map[key]string),
		basename: make(map[key]map[string]bool),
	}
	for _, occ := range occurrences {
		k := key{path: occ.Path, function: occ.Function}
		if _, ok := idx.exact[k]; !ok {
			idx.exact[k] = occ.Location()
		}
		bk := key{path: path.Base(occ.Path), function: occ.Function}
		if idx.basename[bk] == nil {
			idx.basename[bk] = make(map[string]bool)
		}
		idx.basename[bk][occ.Location()] = true
	}
	return idx
}

// Exact returns the location recorded for relPath and function.
func (i *Index) Exact(relPath, function string) (string, bool) {
	loc, ok := i.exact[key{path: cleanRel(relPath), function: function}]
	return loc, ok
}

// ByBasename returns the single location whose file has the given basename
// and function. Zero or several candidates report false.
func (i *Index) ByBasename(base, function string) (string, bool) {
	candidates := i.Candidates(base, function)
	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0], true
}

// Candidates returns every location for a basename/function pair, sorted.
func (i *Index) Candidates(base, function string) []string {
	out := make([]string, 0, len(i.basename[key{path: base, function: function}]))
	for loc := range i.basename[key{path: base, function: function}] {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

func cleanRel(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	if p == "." {
		return ""
	}
	return p
}
