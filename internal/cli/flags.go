package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

// BoolFlagOr returns the flag value when the user set it, fallback otherwise.
func BoolFlagOr(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// ParseLanguage normalizes a language code. A few common names are accepted
// as aliases of the tool's codes.
func ParseLanguage(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	aliases := map[string]string{
		"python":     "py",
		"golang":     "go",
		"rb":         "ruby",
		"rs":         "rust",
		"javascript": "js",
		"perl":       "pl",
		"julia":      "jl",
		"kt":         "kotlin",
		"sh":         "bash",
		"f90":        "fortran",
	}
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// options are the resolved inputs of one run.
type options struct {
	Folder   string
	Function string

	Language     string
	Output       string
	CallgraphBin string
	FullPath     bool
	Show         bool
	Subset       string
	NoSubset     bool
	Tree         string
	NoTree       bool
	ConfigPath   string
	JSON         bool
	Verbose      bool
}

func readOptions(cmd *cobra.Command, args []string) (*options, error) {
	opts := &options{Folder: args[0], Function: args[1]}

	var err error
	strs := []struct {
		name string
		dst  *string
	}{
		{"language", &opts.Language},
		{"output", &opts.Output},
		{"callgraph-bin", &opts.CallgraphBin},
		{"subset", &opts.Subset},
		{"tree", &opts.Tree},
		{"config", &opts.ConfigPath},
	}
	for _, s := range strs {
		if *s.dst, err = OptionalStringFlag(cmd, s.name); err != nil {
			return nil, err
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"no-subset", &opts.NoSubset},
		{"no-tree", &opts.NoTree},
		{"json", &opts.JSON},
		{"verbose", &opts.Verbose},
	}
	for _, b := range bools {
		if *b.dst, err = BoolFlagOr(cmd, b.name, false); err != nil {
			return nil, err
		}
	}

	opts.Language = ParseLanguage(opts.Language)
	return opts, nil
}
