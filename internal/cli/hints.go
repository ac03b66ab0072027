package cli

import (
	"fmt"
	"log/slog"

	"github.com/callgraphtool/callgraphtool/internal/ignore"
	"github.com/callgraphtool/callgraphtool/internal/parser"
	"github.com/callgraphtool/callgraphtool/internal/selector"
)

// maxHintCandidates bounds how many disambiguators one warning lists.
const maxHintCandidates = 8

// startHints checks the start point against the definitions the grammar for
// language can see. Hints never change the selection. Languages without a
// grammar get no hints.
func startHints(registry *parser.Registry, root, language string, sel selector.Selection, matcher *ignore.Matcher, logger *slog.Logger) []string {
	if _, ok := registry.ForLanguage(language); !ok || sel.Function == "" {
		return nil
	}

	if sel.Qualified() {
		if _, ok := registry.GetParserForFile(sel.File); !ok {
			return nil
		}
		found, err := registry.DefinesIn(sel.File, sel.Function)
		if err != nil {
			logger.Debug("definition check failed", "file", sel.File, "error", err)
			return nil
		}
		if !found {
			return []string{fmt.Sprintf("no definition of %s found in %s; the call graph may be empty", sel.Function, sel.Display)}
		}
		return nil
	}

	result, err := registry.FindDefinitions(root, language, sel.Function, matcher)
	if err != nil {
		logger.Debug("definition search failed", "root", root, "error", err)
		return nil
	}
	for _, issue := range result.Issues {
		logger.Debug("skipped file while searching definitions", "file", issue.File, "language", issue.Language, "reason", issue.Message)
	}

	files := result.Files()
	if len(files) < 2 {
		return nil
	}
	selectors := make([]string, 0, len(files))
	for _, file := range files {
		selectors = append(selectors, file+":"+sel.Function)
	}
	return []string{fmt.Sprintf(
		"%s is defined in %d files; the graph will merge them. Pass one of: %s",
		sel.Function, len(files), SummarizePaths(selectors, maxHintCandidates),
	)}
}
