// Package exposer decides which top-level names of a Python module are public.
package exposer

import (
	"strings"

	"github.com/agentic-research/initmaker/internal/pyast"
)

// AllName is the conventional public-name declaration.
const AllName = "__all__"

// ExposedNames returns the public top-level names of mod in source order.
// Functions, classes and assignment targets (bare names and the names inside
// tuple patterns) are candidates. When respectAll is set and the module
// declares __all__ as a list literal, only names listed there are kept;
// otherwise names starting with an underscore are dropped.
//
// A root that is not a *pyast.Module yields nil.
func ExposedNames(mod pyast.Mod, respectAll bool) []string {
	m, ok := mod.(*pyast.Module)
	if !ok || m == nil {
		return nil
	}

	var all map[string]struct{}
	if respectAll {
		if declared, ok := declaredAll(m.Body); ok {
			all = make(map[string]struct{}, len(declared))
			for _, name := range declared {
				all[name] = struct{}{}
			}
		}
	}
	keep := func(name string) bool {
		if all != nil {
			_, ok := all[name]
			return ok
		}
		return isNormallyExposed(name)
	}

	var names []string
	for _, name := range candidates(m.Body) {
		if keep(name) {
			names = append(names, name)
		}
	}
	return names
}

// UnboundDeclared returns the names a module lists in __all__ without
// binding them at top level, in declaration order. Such names cannot be
// re-exported.
func UnboundDeclared(mod pyast.Mod) []string {
	m, ok := mod.(*pyast.Module)
	if !ok || m == nil {
		return nil
	}
	declared, ok := declaredAll(m.Body)
	if !ok {
		return nil
	}
	bound := make(map[string]struct{})
	for _, name := range candidates(m.Body) {
		bound[name] = struct{}{}
	}
	var missing []string
	for _, name := range declared {
		if _, ok := bound[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// declaredAll returns the string literals of the first top-level
// "__all__ = [...]". ok is false when there is no such assignment or its
// value is not a list literal.
func declaredAll(body []pyast.Stmt) (names []string, ok bool) {
	for _, stmt := range body {
		assign, isAssign := stmt.(*pyast.Assign)
		if !isAssign || len(assign.Targets) == 0 {
			continue
		}
		target, isName := assign.Targets[0].(*pyast.Name)
		if !isName || target.ID != AllName {
			continue
		}
		list, isList := assign.Value.(*pyast.List)
		if !isList {
			return nil, false
		}
		names = make([]string, 0, len(list.Elts))
		for _, elt := range list.Elts {
			if s, isStr := elt.(*pyast.StringLiteral); isStr {
				names = append(names, s.Value)
			}
		}
		return names, true
	}
	return nil, false
}

// candidates lists every name bound at top level, duplicates included.
func candidates(body []pyast.Stmt) []string {
	var names []string
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *pyast.FunctionDef:
			names = append(names, s.Name)
		case *pyast.ClassDef:
			names = append(names, s.Name)
		case *pyast.Assign:
			if len(s.Targets) == 0 {
				continue
			}
			switch target := s.Targets[0].(type) {
			case *pyast.Name:
				names = append(names, target.ID)
			case *pyast.Tuple:
				for _, elt := range target.Elts {
					if n, ok := elt.(*pyast.Name); ok {
						names = append(names, n.ID)
					}
				}
			}
		}
	}
	return names
}

func isNormallyExposed(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}
