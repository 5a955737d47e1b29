package pyast

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// SyntaxError reports the first syntax error found in a source file.
type SyntaxError struct {
	Filename string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line+1, e.Column+1, e.Message)
}

// syntaxErrorAt builds a SyntaxError for the first ERROR or MISSING node under root.
func syntaxErrorAt(root *sitter.Node, filename string) *SyntaxError {
	errNode := findFirstError(root)
	if errNode == nil {
		return &SyntaxError{Filename: filename, Message: "AST contains errors"}
	}
	msg := "syntax error"
	if errNode.IsMissing() {
		msg = fmt.Sprintf("missing %s", errNode.Type())
	}
	return &SyntaxError{
		Filename: filename,
		Line:     errNode.StartPoint().Row,
		Column:   errNode.StartPoint().Column,
		Message:  msg,
	}
}

// findFirstError does a depth-first search for the first ERROR node.
func findFirstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := findFirstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// rejectInvalid reports the first construct that the grammar accepts, through
// its Python 2 rules or error recovery, but that Python 3 refuses to compile.
func rejectInvalid(root *sitter.Node, src []byte, filename string) *SyntaxError {
	n, msg := findInvalid(root, src)
	if n == nil {
		return nil
	}
	return &SyntaxError{
		Filename: filename,
		Line:     n.StartPoint().Row,
		Column:   n.StartPoint().Column,
		Message:  msg,
	}
}

func findInvalid(n *sitter.Node, src []byte) (*sitter.Node, string) {
	switch n.Type() {
	case "print_statement":
		return n, "print statement is not valid in Python 3; use print()"
	case "exec_statement":
		return n, "exec statement is not valid in Python 3; use exec()"
	case "<>":
		if !n.IsNamed() {
			return n, "'<>' is not valid in Python 3; use '!='"
		}
	case "string":
		// The scanner opens backquoted repr expressions as strings.
		if start := n.Child(0); start != nil && strings.ContainsRune(start.Content(src), '`') {
			return n, "backquotes are not valid in Python 3; use repr()"
		}
	case "block":
		// A suite that is only a newline: the body was not indented.
		if len(namedChildren(n)) == 0 {
			return n, "expected an indented block"
		}
	case "function_definition", "class_definition":
		if n.ChildByFieldName("body") == nil {
			return n, "expected an indented block"
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if found, msg := findInvalid(child, src); found != nil {
			return found, msg
		}
	}
	return nil, ""
}
