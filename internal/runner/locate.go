// Package runner finds and invokes the external call-graph tool.
package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// BinaryName is the tool's executable name on PATH.
	BinaryName = "callGraph"

	// EnvVar names the environment override for the tool path.
	EnvVar = "CALLGRAPH_BIN"
)

// Source says where a tool path came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceConfig   Source = "config"
	SourceVendored Source = "vendored"
	SourcePath     Source = "path"
)

// Location is a resolved tool path.
type Location struct {
	Path   string
	Source Source
}

// Lookup carries the candidate tool paths in precedence order. InstallRoot is
// the directory holding third_party/ and .perl5/; empty disables the vendored
// candidate.
type Lookup struct {
	Flag        string
	Env         string
	Config      string
	InstallRoot string

	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NotFoundError lists every place the tool was looked for.
type NotFoundError struct {
	Vendored string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("could not find `" + BinaryName + "`.\n")
	if e.Vendored != "" {
		fmt.Fprintf(&b, "- Looked for vendored submodule at: %s\n", e.Vendored)
	}
	fmt.Fprintf(&b, "- Looked for `%s` in PATH\n", BinaryName)
	fmt.Fprintf(&b, "- You can also set %s, set callgraph_bin in the config file, or pass --callgraph-bin", EnvVar)
	return b.String()
}

// VendoredPath is where a bundled copy of the tool lives under root.
func VendoredPath(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, "third_party", BinaryName, BinaryName)
}

// PerlLibPath is the project-local Perl library directory under root.
func PerlLibPath(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, ".perl5", "lib", "perl5")
}

// InstallRootFromExecutable returns the parent of the directory holding the
// running binary, with symlinks resolved.
func InstallRootFromExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// Locate returns the first candidate that is set. Explicit candidates are
// taken as given; the vendored copy must exist.
func Locate(l Lookup) (Location, error) {
	if p := strings.TrimSpace(l.Flag); p != "" {
		return Location{Path: p, Source: SourceFlag}, nil
	}
	if p := strings.TrimSpace(l.Env); p != "" {
		return Location{Path: p, Source: SourceEnv}, nil
	}
	if p := strings.TrimSpace(l.Config); p != "" {
		return Location{Path: p, Source: SourceConfig}, nil
	}

	vendored := VendoredPath(l.InstallRoot)
	if vendored != "" {
		if info, err := os.Stat(vendored); err == nil && !info.IsDir() {
			return Location{Path: vendored, Source: SourceVendored}, nil
		}
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if p, err := lookPath(BinaryName); err == nil {
		return Location{Path: p, Source: SourcePath}, nil
	}

	return Location{}, &NotFoundError{Vendored: vendored}
}

// WithPerlLib returns env with libDir prepended to PERL5LIB when libDir
// exists. env is not modified.
func WithPerlLib(env []string, libDir string) []string {
	out := append([]string(nil), env...)
	if libDir == "" {
		return out
	}
	if info, err := os.Stat(libDir); err != nil || !info.IsDir() {
		return out
	}

	const key = "PERL5LIB="
	existing := ""
	idx := -1
	for i, kv := range out {
		if strings.HasPrefix(kv, key) {
			existing = strings.TrimPrefix(kv, key)
			idx = i
		}
	}
	value := strings.TrimRight(libDir+string(os.PathListSeparator)+existing, string(os.PathListSeparator))
	if idx >= 0 {
		out[idx] = key + value
		return out
	}
	return append(out, key+value)
}
