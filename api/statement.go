package api

import "fmt"

// Kind tags the shape of a Statement.
type Kind int

const (
	// KindImport exposes a submodule: "from . import <Module>".
	KindImport Kind = iota
	// KindFrom exposes an attribute of a submodule: "from .<Module> import <Attr>".
	KindFrom
)

// Statement is one re-export produced while walking a package tree.
// For KindImport only Module is set. For KindFrom both Module and Attr are set.
type Statement struct {
	Kind   Kind
	Module string
	Attr   string
}

// ImportModule exposes submodule name.
func ImportModule(name string) Statement {
	return Statement{Kind: KindImport, Module: name}
}

// FromModule exposes attr from submodule module.
func FromModule(module, attr string) Statement {
	return Statement{Kind: KindFrom, Module: module, Attr: attr}
}

// Exposed returns the name this statement makes available to the parent
// package: the module for an import, the attribute otherwise.
func (s Statement) Exposed() string {
	if s.Kind == KindFrom {
		return s.Attr
	}
	return s.Module
}

// String renders the statement as the import line it stands for.
func (s Statement) String() string {
	if s.Kind == KindFrom {
		return fmt.Sprintf("from .%s import %s", s.Module, s.Attr)
	}
	return "from . import " + s.Module
}
