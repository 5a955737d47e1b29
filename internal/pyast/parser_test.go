package pyast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseModule(t *testing.T, code string) *Module {
	t.Helper()
	mod, err := ParseModule(context.Background(), []byte(code), DefaultVersion, "test.py")
	require.NoError(t, err)
	return mod
}

func TestParse_Definitions(t *testing.T) {
	mod := parseModule(t, `
import os
from typing import Any

def hello():
    pass

async def fetch():
    pass

@decorator
def wrapped():
    pass

class Greeter:
    def inner(self):
        pass

@dataclass
class Point:
    x: int
`)
	assert.Equal(t, DefaultVersion, mod.Version)
	assert.Equal(t, []Stmt{
		&OtherStmt{Kind: "import_statement"},
		&OtherStmt{Kind: "import_from_statement"},
		&FunctionDef{Name: "hello"},
		&FunctionDef{Name: "fetch"},
		&FunctionDef{Name: "wrapped"},
		&ClassDef{Name: "Greeter"},
		&ClassDef{Name: "Point"},
	}, mod.Body)
}

func TestParse_Assignments(t *testing.T) {
	mod := parseModule(t, `
X = 1
A, B = 1, 2
(C, D) = 3, 4
a = b = 5
obj.attr, E = 6, 7
y: int = 8
z += 1
`)
	require.Len(t, mod.Body, 7)

	assert.Equal(t, &Assign{
		Targets: []Expr{&Name{ID: "X"}},
		Value:   &OtherExpr{Kind: "integer"},
	}, mod.Body[0])

	tuple, ok := mod.Body[1].(*Assign)
	require.True(t, ok)
	assert.Equal(t, &Tuple{Elts: []Expr{&Name{ID: "A"}, &Name{ID: "B"}}}, tuple.Targets[0])
	assert.IsType(t, &Tuple{}, tuple.Value)

	paren, ok := mod.Body[2].(*Assign)
	require.True(t, ok)
	assert.Equal(t, &Tuple{Elts: []Expr{&Name{ID: "C"}, &Name{ID: "D"}}}, paren.Targets[0])

	chained, ok := mod.Body[3].(*Assign)
	require.True(t, ok)
	assert.Equal(t, []Expr{&Name{ID: "a"}, &Name{ID: "b"}}, chained.Targets)

	mixed, ok := mod.Body[4].(*Assign)
	require.True(t, ok)
	elts := mixed.Targets[0].(*Tuple).Elts
	require.Len(t, elts, 2)
	assert.IsType(t, &OtherExpr{}, elts[0])
	assert.Equal(t, &Name{ID: "E"}, elts[1])

	assert.Equal(t, &OtherStmt{Kind: "AnnAssign"}, mod.Body[5])
	assert.Equal(t, &OtherStmt{Kind: "AugAssign"}, mod.Body[6])
}

func TestParse_AllDeclaration(t *testing.T) {
	mod := parseModule(t, `__all__ = ["a", 'b', r"c\d", "e" "f", f"g", b"h", name, "\x41"]`)
	require.Len(t, mod.Body, 1)
	assign := mod.Body[0].(*Assign)
	assert.Equal(t, &Name{ID: "__all__"}, assign.Targets[0])

	list, ok := assign.Value.(*List)
	require.True(t, ok)
	assert.Equal(t, []Expr{
		&StringLiteral{Value: "a"},
		&StringLiteral{Value: "b"},
		&StringLiteral{Value: `c\d`},
		&StringLiteral{Value: "ef"},
		&OtherExpr{Kind: "FString"},
		&OtherExpr{Kind: "Bytes"},
		&Name{ID: "name"},
		&StringLiteral{Value: "A"},
	}, list.Elts)
}

func TestParse_TripleQuotedString(t *testing.T) {
	mod := parseModule(t, `X = """doc"""`)
	assign := mod.Body[0].(*Assign)
	assert.Equal(t, &StringLiteral{Value: "doc"}, assign.Value)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseModule(context.Background(), []byte("def hello(\n    return 1\n"), DefaultVersion, "broken.py")
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "broken.py", se.Filename)
	assert.Contains(t, se.Error(), "broken.py:")
}

func TestParse_RejectsWhatPython3Rejects(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
	}{
		{"unindented body", "def f():\npass\n", "expected an indented block"},
		{"unindented class body", "class A:\nx = 1\n", "expected an indented block"},
		{"print statement", "print \"hello\"\n", "print statement"},
		{"exec statement", "exec \"x=1\"\n", "exec statement"},
		{"backquotes", "X = `1`\n", "backquotes"},
		{"diamond operator", "if 1 <> 2: pass\n", "'<>'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModule(context.Background(), []byte(tt.code), DefaultVersion, "old.py")
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "old.py", se.Filename)
			assert.Contains(t, se.Message, tt.message)
		})
	}
}

func TestParse_AcceptsPython3Equivalents(t *testing.T) {
	for _, code := range []string{
		"def f():\n    pass\n",
		"def f(): pass\n",
		"class A:\n    # comment\n    x = 1\n",
		"print(\"hello\")\n",
		"exec(\"x=1\")\n",
		"X = repr(1)\n",
		"if 1 != 2: pass\n",
		"X = \"`1`\"\n",
	} {
		_, err := ParseModule(context.Background(), []byte(code), DefaultVersion, "new.py")
		assert.NoError(t, err, code)
	}
}

func TestParse_Empty(t *testing.T) {
	mod := parseModule(t, "")
	assert.Empty(t, mod.Body)
}

func TestDecodeEscapes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`a\nb`, "a\nb"},
		{`\'q\"`, `'q"`},
		{`\d`, `\d`},
		{"line\\\ncont", "linecont"},
		{`é`, "é"},
		{`\0`, "\x00"},
		{`\12x`, "\nx"},
		{`\101\1012`, "AA2"},
		{`\8`, `\8`},
		{`\N{LATIN SMALL LETTER A}`, "a"},
		{`\N{bullet}`, "\u2022"},
		{`\N{NOT A REAL NAME}`, `\N{NOT A REAL NAME}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decodeEscapes(tt.in), tt.in)
	}
}
