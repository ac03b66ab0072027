package parser

import "fmt"

// DefinitionKind distinguishes free functions from methods.
type DefinitionKind int

const (
	DefinitionFunction DefinitionKind = iota
	DefinitionMethod
)

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionFunction:
		return "func"
	case DefinitionMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Definition is one function or method definition found in a source file.
type Definition struct {
	Name string
	Kind DefinitionKind
	// Line is 1-based.
	Line int
	// Owner is the enclosing type, class or module, when there is one.
	Owner string
	// RelPath is relative to the scanned root. Set by the registry walk.
	RelPath string
}

// Selector returns the file:function form that picks this definition.
func (d Definition) Selector() string {
	return d.RelPath + ":" + d.Name
}

func (d Definition) String() string {
	return fmt.Sprintf("%s:%d (%s)", d.RelPath, d.Line, d.Name)
}

// FileIssue records a file the walk could not read or parse.
type FileIssue struct {
	File     string
	Language string
	Message  string
}
