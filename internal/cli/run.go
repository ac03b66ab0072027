package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/callgraphtool/callgraphtool/internal/calltree"
	"github.com/callgraphtool/callgraphtool/internal/config"
	"github.com/callgraphtool/callgraphtool/internal/fileutil"
	"github.com/callgraphtool/callgraphtool/internal/ignore"
	"github.com/callgraphtool/callgraphtool/internal/languages"
	"github.com/callgraphtool/callgraphtool/internal/normalize"
	"github.com/callgraphtool/callgraphtool/internal/runner"
	"github.com/callgraphtool/callgraphtool/internal/selector"
)

// DefaultLanguage is used when neither flags, config nor the tree decide.
const DefaultLanguage = "py"

// installRoot locates third_party/ and .perl5/. Tests point it elsewhere.
var installRoot = runner.InstallRootFromExecutable

func RunCallgraph(cmd *cobra.Command, args []string) error {
	opts, err := readOptions(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return run(ctx, cmd, opts)
}

// session holds the per-run collaborators.
type session struct {
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	printer  *warningPrinter
	warnings []string
}

func (s *session) warn(msg string) {
	s.warnings = append(s.warnings, msg)
	s.printer.Warn(msg)
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	start := time.Now()
	logger, runID := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	s := &session{
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
		logger:  logger,
		printer: newWarningPrinter(cmd.ErrOrStderr()),
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	root, err := resolveFolder(opts.Folder)
	if err != nil {
		return err
	}

	install := installRoot()
	lookup := runner.Lookup{Flag: opts.CallgraphBin, InstallRoot: install}
	if cfg.BinFromEnv {
		lookup.Env = cfg.CallgraphBin
	} else {
		lookup.Config = cfg.CallgraphBin
	}
	tool, err := runner.Locate(lookup)
	if err != nil {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	}
	logger.Debug("located call-graph tool", "path", tool.Path, "source", tool.Source)

	matcher, err := ignore.ForTree(root, cfg.Ignore)
	if err != nil {
		return err
	}

	language := resolveLanguage(opts.Language, cfg, root, matcher, logger)

	sel := selector.Resolve(opts.Function, root)
	logger.Debug("resolved start function", "input", opts.Function, "selector", sel.Pattern, "display", sel.Display)
	for _, hint := range startHints(languages.NewDefaultRegistry(), root, language, sel, matcher, logger) {
		s.warn(hint)
	}

	fullPath, err := BoolFlagOr(cmd, "full-path", cfg.FullPathEnabled())
	if err != nil {
		return err
	}
	show, err := BoolFlagOr(cmd, "show", cfg.ShowEnabled())
	if err != nil {
		return err
	}

	paths, err := resolveArtifacts(opts, cfg, language)
	if err != nil {
		return err
	}

	scanRoot, toolSel := root, sel
	if n, ok := normalize.ForLanguage(language); ok {
		progress := newProgressReporter(s.stderr, "normalizing", opts.JSON)
		tree, err := normalize.NormalizeTree(root, n, matcher, progress.Update)
		if err != nil {
			return err
		}
		defer func() {
			if err := tree.Cleanup(); err != nil {
				logger.Warn("failed to remove scratch tree", "error", err)
			}
		}()
		progress.Done(tree.Files)
		logger.Debug("normalized source tree", "language", language, "scratch", tree.Root, "files", tree.Files)
		scanRoot = tree.Root
		toolSel = selector.Rebase(sel, root, tree.Root)
	}

	command := runner.Command{
		Bin:        tool.Path,
		ScanRoot:   scanRoot,
		Language:   language,
		Start:      toolSel.Pattern,
		Output:     paths.output,
		SubsetPath: paths.subset,
		FullPath:   fullPath,
		Show:       show,
		Env:        runner.WithPerlLib(os.Environ(), runner.PerlLibPath(install)),
	}
	logger.Debug("running call-graph tool", "command", command.String())

	result, err := command.Run(ctx)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return &ExitError{Code: ExitCodeUsage, Err: err}
		}
		return err
	}
	if !result.Succeeded() {
		_, _ = s.stdout.Write(result.Stdout)
		_, _ = s.stderr.Write(result.Stderr)
		return &ExitError{Code: result.ExitCode}
	}
	logger.Debug("call-graph tool finished", "duration", result.Duration.Round(time.Millisecond))

	summary := RunSummary{
		RunID:    runID,
		Root:     root,
		Language: language,
		Start:    sel.Display,
		Selector: toolSel.Pattern,
	}
	if fileutil.FileExists(paths.output) {
		summary.Output = paths.output
	}

	if paths.tree != "" {
		s.annotate(&summary, calltree.Options{
			GraphPath:      runner.GraphPath(paths.output),
			SubsetPath:     paths.subset,
			TreePath:       paths.tree,
			ScanRoot:       scanRoot,
			CommentMarker:  languages.CommentMarker(language),
			HighlightColor: cfg.HighlightColor,
			Logger:         logger,
		})
	}
	if paths.subset != "" && fileutil.FileExists(paths.subset) {
		summary.Subset = paths.subset
	}

	summary.Warnings = s.warnings
	summary.DurationMS = time.Since(start).Milliseconds()
	return PrintRunSummary(s.stdout, summary, opts.JSON)
}

func (s *session) annotate(summary *RunSummary, opts calltree.Options) {
	if !fileutil.FileExists(opts.GraphPath) {
		s.warn(fmt.Sprintf("no graph description at %s; skipping call tree", opts.GraphPath))
		return
	}

	result, err := calltree.Annotate(opts)
	if err != nil {
		s.warn(fmt.Sprintf("could not read graph description %s: %v", opts.GraphPath, err))
		return
	}
	for _, msg := range result.Warnings {
		s.warn(msg)
	}
	summary.Roots = result.Roots
	summary.TreeLines = len(result.Lines)
	if result.TreeWritten {
		summary.Tree = opts.TreePath
	}
}

func resolveFolder(folder string) (string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", usageError("folder not found: %s", folder)
		}
		return "", usageError("cannot access folder %s: %v", folder, err)
	}
	if !info.IsDir() {
		return "", usageError("not a folder: %s", folder)
	}
	root, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", folder, err)
	}
	return root, nil
}

func resolveLanguage(flagValue string, cfg *config.Config, root string, matcher *ignore.Matcher, logger *slog.Logger) string {
	if flagValue != "" {
		return flagValue
	}
	if code := ParseLanguage(cfg.Language); code != "" {
		return code
	}
	inference := languages.Infer(root, matcher)
	if inference.Code != "" {
		logger.Debug("inferred language", "language", inference.Code, "counts", inference.Counts)
		return inference.Code
	}
	if inference.Ambiguous() {
		logger.Debug("language inference tied", "counts", inference.Counts, "fallback", DefaultLanguage)
	}
	return DefaultLanguage
}

type artifactPaths struct {
	output string
	subset string
	tree   string
}

// resolveArtifacts applies flag, then config, then default for each artifact.
// Disabled artifacts have an empty path.
func resolveArtifacts(opts *options, cfg *config.Config, language string) (artifactPaths, error) {
	var paths artifactPaths

	output := opts.Output
	if output == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return paths, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		output = DefaultOutputPath(cwd, opts.Function)
	}
	var err error
	if paths.output, err = filepath.Abs(output); err != nil {
		return paths, fmt.Errorf("failed to resolve %s: %w", output, err)
	}

	if !opts.NoSubset && (opts.Subset != "" || cfg.SubsetEnabled()) {
		subset := opts.Subset
		if subset == "" {
			subset = DefaultSubsetPath(paths.output, language)
		}
		if paths.subset, err = filepath.Abs(subset); err != nil {
			return paths, fmt.Errorf("failed to resolve %s: %w", subset, err)
		}
	}

	if !opts.NoTree && (opts.Tree != "" || cfg.TreeEnabled()) {
		tree := opts.Tree
		if tree == "" {
			tree = DefaultTreePath(paths.output)
		}
		if paths.tree, err = filepath.Abs(tree); err != nil {
			return paths, fmt.Errorf("failed to resolve %s: %w", tree, err)
		}
	}
	return paths, nil
}
