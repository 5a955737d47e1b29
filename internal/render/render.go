// Package render turns the re-export statements collected for one directory
// into the text of its __init__.py.
package render

import (
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentic-research/initmaker/api"
)

// IndexFile is the name of the generated package index.
const IndexFile = "__init__.py"

// Render formats statements and writes them to destination, replacing any
// existing file. An empty statement list writes nothing.
func Render(fs billy.Filesystem, statements []api.Statement, sortOutput bool, destination string) error {
	content := Format(statements, sortOutput)
	if content == nil {
		return nil
	}
	return WriteFile(fs, destination, content)
}

// Format returns the index text for statements, or nil when there is nothing
// to expose. The layout is:
//
//	from . import <module>         one line per submodule
//
//	from .<module> import (         one group per submodule with attributes
//	    <attr>,
//	)
//
//	__all__ = [
//	    "<name>",                   submodules first, then attributes by group
//	]
//
// With sortOutput the submodules and (module, attr) pairs are sorted bytewise
// before grouping; otherwise discovery order is kept. Repeated names are
// written once.
func Format(statements []api.Statement, sortOutput bool) []byte {
	if len(statements) == 0 {
		return nil
	}

	var (
		imports []string
		froms   []api.Statement
	)
	for _, s := range statements {
		if s.Kind == api.KindFrom {
			froms = append(froms, s)
		} else {
			imports = append(imports, s.Module)
		}
	}

	if sortOutput {
		sort.Strings(imports)
		sort.SliceStable(froms, func(i, j int) bool {
			if froms[i].Module != froms[j].Module {
				return froms[i].Module < froms[j].Module
			}
			return froms[i].Attr < froms[j].Attr
		})
	}

	groups := orderedmap.New[string, *nameList]()
	for _, f := range froms {
		attrs, ok := groups.Get(f.Module)
		if !ok {
			attrs = &nameList{}
			groups.Set(f.Module, attrs)
		}
		attrs.add(f.Attr)
	}

	var (
		b   strings.Builder
		all nameList
		mod nameList
	)
	for _, m := range imports {
		mod.add(m)
	}
	for _, m := range mod.names {
		b.WriteString("from . import ")
		b.WriteString(m)
		b.WriteByte('\n')
		all.add(m)
	}
	b.WriteByte('\n')

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		b.WriteString("from .")
		b.WriteString(pair.Key)
		b.WriteString(" import (\n")
		for _, attr := range pair.Value.names {
			b.WriteString("    ")
			b.WriteString(attr)
			b.WriteString(",\n")
			all.add(attr)
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n__all__ = [\n")
	for _, name := range all.names {
		b.WriteString("    \"")
		b.WriteString(name)
		b.WriteString("\",\n")
	}
	b.WriteString("]\n")

	return []byte(b.String())
}

// nameList is an insertion-ordered set of names.
type nameList struct {
	names []string
	seen  map[string]struct{}
}

func (l *nameList) add(name string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	if _, ok := l.seen[name]; ok {
		return
	}
	l.seen[name] = struct{}{}
	l.names = append(l.names, name)
}
