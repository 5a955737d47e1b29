package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentic-research/initmaker/internal/initgen"
	"github.com/agentic-research/initmaker/internal/logging"
	"github.com/agentic-research/initmaker/internal/pyast"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var errStale = errors.New("package indices are stale")

var (
	pythonVersion string
	respectAll    bool
	sortImports   bool
	verbose       bool
	check         bool
)

func init() {
	rootCmd.Flags().StringVarP(&pythonVersion, "python-version", "p", pyast.DefaultVersion.String(), "target Python version")
	rootCmd.Flags().BoolVar(&respectAll, "respect-all", true, "only expose names listed in a module's __all__, when present")
	rootCmd.Flags().BoolVarP(&sortImports, "sort-imports", "s", true, "sort imports and __all__ entries")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print details to stderr")
	rootCmd.Flags().BoolVar(&check, "check", false, "write nothing; fail if any __init__.py is out of date")
}

var rootCmd = &cobra.Command{
	Use:           "initmaker [dir]",
	Short:         "Generate __init__.py files that re-export a Python package tree",
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
	},
}

func run(ctx context.Context, stdout, stderr io.Writer, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	v, err := pyast.ParseVersion(pythonVersion)
	if err != nil {
		return err
	}
	cfg := initgen.Config{
		Root:          filepath.Base(abs),
		PythonVersion: v,
		RespectAll:    respectAll,
		Sort:          sortImports,
		Verbose:       verbose,
	}

	logger := logging.New(stderr, verbose)
	defer func() { _ = logger.Sync() }()

	genOpts := []initgen.Option{initgen.WithLogger(logger)}
	if check {
		genOpts = append(genOpts, initgen.WithCheckOnly())
	}

	// ChrootOS stats through the OS, so symlinks resolve against the real
	// filesystem and may point outside the parent directory.
	fs := osfs.New(filepath.Dir(abs))
	gen := initgen.New(fs, cfg, genOpts...)

	start := time.Now()
	stmts, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	logger.Debug("done", zap.Int("statements", len(stmts)), zap.Duration("elapsed", time.Since(start)))

	if check {
		stale := gen.Stale()
		if len(stale) == 0 {
			fmt.Fprintln(stdout, "Package indices are up to date")
			return nil
		}
		for _, path := range stale {
			fmt.Fprintln(stdout, path)
		}
		return errStale
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
