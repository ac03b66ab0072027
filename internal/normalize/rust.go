package normalize

import (
	"regexp"
	"strings"
)

// RustNormalizer flattens Rust function qualifiers and drops turbofish type
// arguments at call sites.
type RustNormalizer struct{}

func (RustNormalizer) Language() string { return "rust" }

func (RustNormalizer) Extensions() []string { return []string{".rs"} }

// NormalizeLine applies qualifier stripping, then generic-call stripping.
func (r RustNormalizer) NormalizeLine(line string) string {
	return StripGenericCalls(StripQualifiers(line))
}

var qualifiedFnPattern = regexp.MustCompile(
	`^(\s*)((?:(?:pub(?:\s*\([^)]*\))?|async|unsafe|const|default|extern(?:\s+"[^"]*")?)\s+)+)fn\s+([A-Za-z_][A-Za-z0-9_]*)`,
)

var qualifierTokenPattern = regexp.MustCompile(`pub(?:\s*\([^)]*\))?|async|unsafe|const|default|extern(?:\s+"[^"]*")?`)

// StripQualifiers rewrites `pub(crate) async unsafe extern "C" fn name` to the
// form `pub fn name`, keeping at most one qualifier: visibility, else async.
func StripQualifiers(line string) string {
	m := qualifiedFnPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	indent := line[m[2]:m[3]]
	qualifiers := line[m[4]:m[5]]
	name := line[m[6]:m[7]]

	keep := ""
	for _, tok := range qualifierTokenPattern.FindAllString(qualifiers, -1) {
		if strings.HasPrefix(tok, "pub") {
			keep = "pub"
			break
		}
		if tok == "async" {
			keep = "async"
		}
	}

	var b strings.Builder
	b.WriteString(indent)
	if keep != "" {
		b.WriteString(keep)
		b.WriteByte(' ')
	}
	b.WriteString("fn ")
	b.WriteString(name)
	b.WriteString(line[m[1]:])
	return b.String()
}

// StripGenericCalls removes `::<...>` segments that are immediately followed
// by an opening parenthesis. Unterminated or non-call segments are left alone.
func StripGenericCalls(line string) string {
	if !strings.Contains(line, "::<") {
		return line
	}

	var b strings.Builder
	i := 0
	for i < len(line) {
		idx := strings.Index(line[i:], "::<")
		if idx < 0 {
			b.WriteString(line[i:])
			break
		}
		start := i + idx
		end, ok := matchAngle(line, start+3)
		if ok {
			next := end + 1
			for next < len(line) && (line[next] == ' ' || line[next] == '\t') {
				next++
			}
			if next < len(line) && line[next] == '(' {
				b.WriteString(line[i:start])
				i = next
				continue
			}
		}
		b.WriteString(line[i : start+3])
		i = start + 3
	}
	return b.String()
}

// matchAngle returns the index of the '>' closing the bracket opened just
// before from. Arrows (`->`) inside the list do not close it.
func matchAngle(line string, from int) (int, bool) {
	depth := 1
	for j := from; j < len(line); j++ {
		switch line[j] {
		case '<':
			depth++
		case '>':
			if j > 0 && line[j-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return j, true
			}
		case ';', '{', '}':
			return 0, false
		}
	}
	return 0, false
}
