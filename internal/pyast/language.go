package pyast

import (
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SourceExt is the suffix of Python source files.
const SourceExt = ".py"

// IsSourceFile reports whether name looks like a Python source file. A bare
// ".py" is a dotfile with no module name and does not count.
func IsSourceFile(name string) bool {
	return len(name) > len(SourceExt) && filepath.Ext(name) == SourceExt
}

// Language returns the tree-sitter grammar used for Python sources.
func Language() *sitter.Language {
	return python.GetLanguage()
}
