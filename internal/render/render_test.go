package render

import (
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/initmaker/api"
)

func TestFormat_DiscoveryOrder(t *testing.T) {
	stmts := []api.Statement{
		api.ImportModule("a"),
		api.FromModule("a", "foo"),
		api.FromModule("a", "X"),
	}
	want := `from . import a

from .a import (
    foo,
    X,
)

__all__ = [
    "a",
    "foo",
    "X",
]
`
	assert.Equal(t, want, string(Format(stmts, false)))
}

func TestFormat_Sorted(t *testing.T) {
	stmts := []api.Statement{
		api.ImportModule("z"),
		api.FromModule("z", "zeta"),
		api.ImportModule("a"),
		api.FromModule("a", "foo"),
		api.FromModule("a", "X"),
	}
	want := `from . import a
from . import z

from .a import (
    X,
    foo,
)
from .z import (
    zeta,
)

__all__ = [
    "a",
    "z",
    "X",
    "foo",
    "zeta",
]
`
	assert.Equal(t, want, string(Format(stmts, true)))
}

func TestFormat_UnsortedGroupsFollowFirstAppearance(t *testing.T) {
	stmts := []api.Statement{
		api.ImportModule("z"),
		api.FromModule("z", "b"),
		api.ImportModule("a"),
		api.FromModule("a", "c"),
	}
	got := string(Format(stmts, false))
	assert.Less(t, strings.Index(got, "from .z import ("), strings.Index(got, "from .a import ("))
	assert.Less(t, strings.Index(got, "from . import z"), strings.Index(got, "from . import a"))
}

func TestFormat_ModuleWithoutAttributes(t *testing.T) {
	got := string(Format([]api.Statement{api.ImportModule("empty")}, true))
	assert.Equal(t, "from . import empty\n\n\n__all__ = [\n    \"empty\",\n]\n", got)
}

func TestFormat_Deduplicates(t *testing.T) {
	stmts := []api.Statement{
		api.ImportModule("a"),
		api.FromModule("a", "X"),
		api.FromModule("a", "X"),
		api.ImportModule("a"),
		api.ImportModule("b"),
		api.FromModule("b", "a"),
	}
	want := `from . import a
from . import b

from .a import (
    X,
)
from .b import (
    a,
)

__all__ = [
    "a",
    "b",
    "X",
]
`
	assert.Equal(t, want, string(Format(stmts, false)))
}

func TestFormat_Empty(t *testing.T) {
	assert.Nil(t, Format(nil, true))
}

func TestFormat_Deterministic(t *testing.T) {
	stmts := []api.Statement{
		api.ImportModule("m"),
		api.FromModule("m", "b"),
		api.FromModule("m", "a"),
	}
	assert.Equal(t, Format(stmts, false), Format(stmts, false))
	assert.Equal(t, Format(stmts, true), Format(stmts, true))
}

func TestRender_OverwritesExisting(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "pkg/__init__.py", []byte("# hand written\n"), 0o644))

	stmts := []api.Statement{api.ImportModule("a")}
	require.NoError(t, Render(fs, stmts, true, "pkg/__init__.py"))

	got, err := util.ReadFile(fs, "pkg/__init__.py")
	require.NoError(t, err)
	assert.Equal(t, Format(stmts, true), got)
	assert.NotContains(t, string(got), "hand written")

	// No temp files left behind.
	entries, err := fs.ReadDir("pkg")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, IndexFile, entries[0].Name())
}

func TestRender_EmptyWritesNothing(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("pkg", 0o755))
	require.NoError(t, Render(fs, nil, true, "pkg/__init__.py"))

	_, err := fs.Stat("pkg/__init__.py")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsCurrent(t *testing.T) {
	fs := memfs.New()
	content := []byte("from . import a\n")

	ok, err := IsCurrent(fs, "pkg/__init__.py", content)
	require.NoError(t, err)
	assert.False(t, ok, "missing file is stale")

	require.NoError(t, WriteFile(fs, "pkg/__init__.py", content))
	ok, err = IsCurrent(fs, "pkg/__init__.py", content)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCurrent(fs, "pkg/__init__.py", []byte("other\n"))
	require.NoError(t, err)
	assert.False(t, ok)
}
