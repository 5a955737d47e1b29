package pyast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Options configures Parse.
type Options struct {
	Version  Version
	Filename string // used in error messages only
}

// Parse parses source with the tree-sitter Python grammar and lowers the
// result into the typed tree. A source containing syntax errors, or
// constructs Python 3 rejects that the grammar still accepts, yields a
// *SyntaxError.
func Parse(ctx context.Context, source []byte, opts Options) (Mod, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed for %s: %w", opts.Filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root for %s", opts.Filename)
	}
	if root.HasError() {
		return nil, syntaxErrorAt(root, opts.Filename)
	}
	if err := rejectInvalid(root, source, opts.Filename); err != nil {
		return nil, err
	}

	l := lowerer{src: source}
	mod := &Module{Version: opts.Version}
	for _, child := range namedChildren(root) {
		mod.Body = append(mod.Body, l.stmt(child))
	}
	return mod, nil
}

// ParseModule is Parse returning the *Module directly.
func ParseModule(ctx context.Context, source []byte, version Version, filename string) (*Module, error) {
	m, err := Parse(ctx, source, Options{Version: version, Filename: filename})
	if err != nil {
		return nil, err
	}
	return m.(*Module), nil
}

// lowerer converts tree-sitter nodes into the typed tree.
type lowerer struct {
	src []byte
}

func (l lowerer) stmt(n *sitter.Node) Stmt {
	switch n.Type() {
	case "function_definition":
		return &FunctionDef{Name: l.text(n.ChildByFieldName("name"))}
	case "class_definition":
		return &ClassDef{Name: l.text(n.ChildByFieldName("name"))}
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return l.stmt(def)
		}
	case "expression_statement":
		inner := namedChildren(n)
		if len(inner) == 1 {
			switch inner[0].Type() {
			case "assignment":
				return l.assignment(inner[0])
			case "augmented_assignment":
				return &OtherStmt{Kind: "AugAssign"}
			}
		}
		return &OtherStmt{Kind: "Expr"}
	}
	return &OtherStmt{Kind: n.Type()}
}

// assignment flattens "a = b = v" into one Assign with targets [a, b].
// An annotated assignment is not an Assign.
func (l lowerer) assignment(n *sitter.Node) Stmt {
	if n.ChildByFieldName("type") != nil {
		return &OtherStmt{Kind: "AnnAssign"}
	}
	var targets []Expr
	cur := n
	for {
		targets = append(targets, l.expr(cur.ChildByFieldName("left")))
		right := cur.ChildByFieldName("right")
		if right != nil && right.Type() == "assignment" && right.ChildByFieldName("type") == nil {
			cur = right
			continue
		}
		return &Assign{Targets: targets, Value: l.expr(right)}
	}
}

func (l lowerer) expr(n *sitter.Node) Expr {
	if n == nil {
		return &OtherExpr{}
	}
	switch n.Type() {
	case "identifier", "keyword_identifier":
		return &Name{ID: l.text(n)}
	case "pattern_list", "tuple_pattern", "tuple", "expression_list":
		return &Tuple{Elts: l.exprs(n)}
	case "list", "list_pattern":
		return &List{Elts: l.exprs(n)}
	case "string":
		return l.str(n)
	case "concatenated_string":
		var b strings.Builder
		for _, part := range namedChildren(n) {
			s, ok := l.str(part).(*StringLiteral)
			if !ok {
				return &OtherExpr{Kind: n.Type()}
			}
			b.WriteString(s.Value)
		}
		return &StringLiteral{Value: b.String()}
	case "parenthesized_expression":
		if inner := namedChildren(n); len(inner) == 1 {
			return l.expr(inner[0])
		}
	}
	return &OtherExpr{Kind: n.Type()}
}

func (l lowerer) exprs(n *sitter.Node) []Expr {
	children := namedChildren(n)
	out := make([]Expr, 0, len(children))
	for _, c := range children {
		out = append(out, l.expr(c))
	}
	return out
}

// str lowers a string node. f-strings, t-strings and bytes are not string
// literals.
func (l lowerer) str(n *sitter.Node) Expr {
	if n.Type() != "string" {
		return &OtherExpr{Kind: n.Type()}
	}
	text := l.text(n)
	start := strings.IndexAny(text, `'"`)
	if start < 0 {
		return &OtherExpr{Kind: n.Type()}
	}
	prefix := strings.ToLower(text[:start])
	switch {
	case strings.ContainsRune(prefix, 'f'):
		return &OtherExpr{Kind: "FString"}
	case strings.ContainsRune(prefix, 't'):
		return &OtherExpr{Kind: "TString"}
	case strings.ContainsRune(prefix, 'b'):
		return &OtherExpr{Kind: "Bytes"}
	}

	body := text[start:]
	quote := body[:1]
	if triple := strings.Repeat(quote, 3); len(body) >= 6 && strings.HasPrefix(body, triple) {
		quote = triple
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return &OtherExpr{Kind: n.Type()}
	}
	inner := body[len(quote) : len(body)-len(quote)]
	if strings.ContainsRune(prefix, 'r') {
		return &StringLiteral{Value: inner}
	}
	return &StringLiteral{Value: decodeEscapes(inner)}
}

func (l lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}
