package cli

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/languages"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName turns a start token into a file name fragment.
func SafeName(function string) string {
	safe := strings.Trim(unsafeNameChars.ReplaceAllString(function, "_"), "_")
	if safe == "" {
		return "callgraph"
	}
	return safe
}

// DefaultOutputPath is callgraph_<safe>.png in dir.
func DefaultOutputPath(dir, function string) string {
	return filepath.Join(dir, "callgraph_"+SafeName(function)+".png")
}

func outputStem(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output))
}

// DefaultTreePath is <output-stem>.tree.txt.
func DefaultTreePath(output string) string {
	return outputStem(output) + ".tree.txt"
}

// DefaultSubsetPath is <output-stem>_subset<language extension>.
func DefaultSubsetPath(output, language string) string {
	return outputStem(output) + "_subset" + languages.SourceExtension(language)
}
