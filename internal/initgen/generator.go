// Package initgen walks a directory tree of Python sources and writes an
// __init__.py into every directory that has something to expose.
package initgen

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/agentic-research/initmaker/api"
	"github.com/agentic-research/initmaker/internal/exposer"
	"github.com/agentic-research/initmaker/internal/pyast"
	"github.com/agentic-research/initmaker/internal/render"
)

// Config controls one generation run. Recursive calls share it with only
// Root changed.
type Config struct {
	// Root is the directory or .py file to start from, relative to the
	// generator's filesystem.
	Root string
	// PythonVersion is handed to the parser.
	PythonVersion pyast.Version
	// RespectAll honors a module's __all__ declaration.
	RespectAll bool
	// Sort emits imports and __all__ entries in lexicographic order.
	Sort bool
	// Verbose is informational; it never changes the output.
	Verbose bool
}

// DefaultConfig returns the configuration the command line uses by default.
func DefaultConfig(root string) Config {
	return Config{
		Root:          root,
		PythonVersion: pyast.DefaultVersion,
		RespectAll:    true,
		Sort:          true,
	}
}

// WithRoot returns a copy of c rooted at root.
func (c Config) WithRoot(root string) Config {
	c.Root = root
	return c
}

// Generator drives a run over a billy filesystem.
type Generator struct {
	fs        billy.Filesystem
	cfg       Config
	logger    *zap.Logger
	checkOnly bool
	stale     []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithCheckOnly disables writing. Indices that would change are collected
// instead and reported by Stale.
func WithCheckOnly() Option {
	return func(g *Generator) {
		g.checkOnly = true
	}
}

// New returns a Generator rooted at cfg.Root on fs. Without WithLogger it
// logs nothing.
func New(fs billy.Filesystem, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		fs:     fs,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate walks the configured root and returns the statements it exposes.
// For a directory, indices are written bottom-up as each subtree completes;
// for a single .py file nothing is written. The first error aborts the run
// and indices already written stay in place.
func (g *Generator) Generate(ctx context.Context) ([]api.Statement, error) {
	g.stale = nil
	g.logger.Debug("generating package indices",
		zap.String("root", g.display(g.cfg.Root)),
		zap.Stringer("python_version", g.cfg.PythonVersion),
		zap.Bool("respect_all", g.cfg.RespectAll),
		zap.Bool("sort", g.cfg.Sort),
		zap.Bool("check", g.checkOnly),
	)
	return g.generate(ctx, g.cfg)
}

// Stale returns the indices found out of date by the last check-only run,
// in traversal order.
func (g *Generator) Stale() []string {
	return g.stale
}

func (g *Generator) generate(ctx context.Context, cfg Config) ([]api.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := g.fs.Stat(cfg.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, g.fail(ErrPathMissing, cfg.Root, nil)
		}
		return nil, g.fail(ErrReadFailed, cfg.Root, err)
	}

	switch {
	case info.IsDir():
		return g.generateDir(ctx, cfg)
	case info.Mode().IsRegular() && pyast.IsSourceFile(info.Name()):
		return g.generateFile(ctx, cfg)
	default:
		return nil, g.fail(ErrUnsupportedEntry, cfg.Root, nil)
	}
}

func (g *Generator) generateFile(ctx context.Context, cfg Config) ([]api.Statement, error) {
	src, err := util.ReadFile(g.fs, cfg.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, g.fail(ErrPathMissing, cfg.Root, nil)
		}
		return nil, g.fail(ErrReadFailed, cfg.Root, err)
	}

	mod, err := pyast.ParseModule(ctx, src, cfg.PythonVersion, g.display(cfg.Root))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, g.fail(ErrParseFailed, cfg.Root, err)
	}

	names := exposer.ExposedNames(mod, cfg.RespectAll)
	if cfg.RespectAll {
		if missing := exposer.UnboundDeclared(mod); len(missing) > 0 {
			g.logger.Warn("__all__ lists names the module does not define",
				zap.String("path", g.display(cfg.Root)), zap.Strings("names", missing))
		}
	}
	g.logger.Debug("exposing module", zap.String("path", g.display(cfg.Root)), zap.Int("names", len(names)))

	statements := make([]api.Statement, 0, len(names))
	for _, name := range names {
		statements = append(statements, api.ImportModule(name))
	}
	return statements, nil
}

func (g *Generator) generateDir(ctx context.Context, cfg Config) ([]api.Statement, error) {
	g.logger.Debug("scanning directory", zap.String("path", g.display(cfg.Root)))

	entries, err := g.fs.ReadDir(cfg.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, g.fail(ErrPathMissing, cfg.Root, nil)
		}
		return nil, g.fail(ErrReadFailed, cfg.Root, err)
	}

	var result []api.Statement
	for _, entry := range entries {
		name := entry.Name()
		childPath := g.fs.Join(cfg.Root, name)

		info, ok := g.resolve(entry, childPath)
		if !ok {
			continue
		}
		isDir := info.IsDir()
		if !isDir && !pyast.IsSourceFile(name) {
			continue
		}
		// Indices are emitted, never consumed as modules.
		if name == render.IndexFile {
			continue
		}

		stem := name
		if !isDir {
			stem = strings.TrimSuffix(name, pyast.SourceExt)
		}

		sub, err := g.generate(ctx, cfg.WithRoot(childPath))
		if err != nil {
			return nil, err
		}
		if isDir && len(sub) == 0 {
			g.logger.Debug("skipping package with nothing to expose", zap.String("path", g.display(childPath)))
			continue
		}

		result = append(result, api.ImportModule(stem))
		for _, s := range sub {
			result = append(result, api.FromModule(stem, s.Exposed()))
		}
	}

	if len(result) > 0 {
		if err := g.emit(cfg, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolve follows symlinks and reports whether the entry is a directory or
// regular file. Anything else, including dangling links, is skipped.
func (g *Generator) resolve(entry os.FileInfo, path string) (os.FileInfo, bool) {
	info := entry
	if entry.Mode()&os.ModeSymlink != 0 {
		target, err := g.fs.Stat(path)
		if err != nil {
			g.logger.Debug("skipping unreadable link", zap.String("path", g.display(path)), zap.Error(err))
			return nil, false
		}
		info = target
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

func (g *Generator) emit(cfg Config, statements []api.Statement) error {
	dest := g.fs.Join(cfg.Root, render.IndexFile)

	if g.checkOnly {
		current, err := render.IsCurrent(g.fs, dest, render.Format(statements, cfg.Sort))
		if err != nil {
			return g.fail(ErrReadFailed, dest, err)
		}
		if !current {
			g.logger.Debug("index is stale", zap.String("path", g.display(dest)))
			g.stale = append(g.stale, g.display(dest))
		}
		return nil
	}

	if err := render.Render(g.fs, statements, cfg.Sort, dest); err != nil {
		return g.fail(ErrWriteFailed, dest, err)
	}
	g.logger.Debug("wrote index", zap.String("path", g.display(dest)), zap.Stringers("statements", statements))
	return nil
}

func (g *Generator) fail(kind error, path string, cause error) error {
	return &Error{Kind: kind, Path: g.display(path), Err: cause}
}

// display maps a filesystem-relative path to the path users see.
func (g *Generator) display(path string) string {
	return g.fs.Join(g.fs.Root(), path)
}
