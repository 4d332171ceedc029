package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
	"go.jacobcolvin.com/jsdocfmt/jsparse"
	"go.jacobcolvin.com/jsdocfmt/log"
	"go.jacobcolvin.com/jsdocfmt/profile"
	"go.jacobcolvin.com/jsdocfmt/version"
	"go.jacobcolvin.com/jsdocfmt/watch"
)

const stdinName = "<stdin>"

var (
	errWouldChange = errors.New("some files are not formatted")
	errNoInput     = errors.New("no input files")
)

type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	logOutput io.Writer

	fmtCfg   *jsdoc.Config
	logCfg   *log.Config
	profCfg  *profile.Config
	profiler *profile.Profiler

	// Formatters by config file path; "" is the no-file formatter.
	formatters map[string]*jsdoc.Formatter

	configPath    string
	stdinFilepath string
	color         string

	diff  bool
	list  bool
	check bool

	mu sync.Mutex
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logOutput:  stderr,
		fmtCfg:     jsdoc.NewConfig(),
		logCfg:     log.NewConfig(),
		profCfg:    profile.NewConfig(),
		formatters: map[string]*jsdoc.Formatter{},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsdocfmt [flags] <file|directory|-> ...",
		Short: "Format JSDoc comments in JavaScript and TypeScript",
		Long: `jsdocfmt normalizes and re-renders JSDoc comment blocks: tags are
renamed to their canonical form, sorted into groups, and their types,
names, and descriptions are re-wrapped to the print width.`,
		Args:              cobra.ArbitraryArgs,
		Version:           version.String(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoInput
			}

			return a.format(cmd.Context(), args)
		},
	}

	pflags := root.PersistentFlags()
	a.logCfg.RegisterFlags(pflags)
	a.profCfg.RegisterFlags(pflags)
	a.fmtCfg.RegisterFlags(pflags)
	pflags.StringVar(&a.configPath, "config", "",
		"config file path; by default the nearest .jsdocfmt.{yaml,yml,toml} is used")

	flags := root.Flags()
	flags.BoolVarP(&a.diff, "diff", "d", false, "show changes as a diff without writing")
	flags.BoolVarP(&a.list, "list", "l", false, "only list files that would change")
	flags.BoolVar(&a.check, "check", false, "exit with an error when any file would change; implies -l")
	flags.StringVar(&a.stdinFilepath, "stdin-filepath", "",
		"path used to pick the language and config file for stdin input")
	flags.StringVar(&a.color, "color", colorAuto, "colorize diffs, one of: "+strings.Join(colorModes, ", "))

	root.AddCommand(a.watchCmd(), a.schemaCmd())

	err := errors.Join(
		a.logCfg.RegisterCompletions(root),
		a.profCfg.RegisterCompletions(root),
		a.fmtCfg.RegisterCompletions(root),
		root.RegisterFlagCompletionFunc("color",
			cobra.FixedCompletions(colorModes, cobra.ShellCompDirectiveNoFileComp)),
		root.MarkPersistentFlagFilename("config", "yaml", "yml", "toml"),
	)
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return root
}

func (a *app) watchCmd() *cobra.Command {
	debounce := watch.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch [flags] <file|directory> ...",
		Short: "Format files, then format them again whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before changed files are formatted")

	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := jsdoc.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding schema: %w", err)
			}

			_, err = fmt.Fprintf(a.stdout, "%s\n", out)
			if err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}

			return nil
		},
	}
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	handler, err := a.logCfg.NewHandler(a.logOutput)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	a.profiler = a.profCfg.NewProfiler()

	return a.profiler.Start()
}

func (a *app) stopProfiler() error {
	if a.profiler == nil {
		return nil
	}

	return a.profiler.Stop()
}

// formatterFor returns the formatter for files in dir, built from the
// applicable config file and flags.
func (a *app) formatterFor(dir string) (*jsdoc.Formatter, error) {
	path := a.configPath
	if path == "" {
		var err error

		path, err = jsdoc.FindConfigFile(dir)
		if err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if f, ok := a.formatters[path]; ok {
		return f, nil
	}

	base := jsdoc.DefaultOptions()

	var extra []jsdoc.Option

	if path != "" {
		fc, err := jsdoc.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}

		slog.Debug("using config file", slog.String("path", path))

		base = fc.Apply(base)
		extra = fc.FormatterOptions(filepath.Dir(path))
	}

	f, err := a.fmtCfg.NewFormatter(base, extra...)
	if err != nil {
		return nil, err
	}

	a.formatters[path] = f

	return f, nil
}

func (a *app) format(ctx context.Context, args []string) error {
	if a.check {
		a.list = true
	}

	var (
		errs    []error
		changed bool
	)

	for _, arg := range args {
		if arg == "-" {
			c, err := a.formatStdin(ctx)
			changed = changed || c

			errs = append(errs, err)

			continue
		}

		files, err := collectFiles(arg)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		for _, path := range files {
			c, err := a.formatFile(ctx, path)
			if err != nil {
				err = fmt.Errorf("%s: %w", path, err)
			}

			changed = changed || c

			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		return err
	}

	if a.check && changed {
		return errWouldChange
	}

	return nil
}

// collectFiles expands arg to the supported source files below it. A file
// named explicitly must have a supported extension.
func collectFiles(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		_, ok := jsparse.LanguageFor(arg)
		if !ok {
			return nil, fmt.Errorf("%s: %w", arg, jsparse.ErrUnsupported)
		}

		return []string{arg}, nil
	}

	var files []string

	err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != arg && skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if _, ok := jsparse.LanguageFor(path); ok {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", arg, err)
	}

	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func (a *app) formatFile(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	src, err := os.ReadFile(path) //nolint:gosec // Paths come from CLI arguments.
	if err != nil {
		return false, err
	}

	out, err := a.formatBytes(ctx, path, path, src)
	if err != nil {
		return false, err
	}

	if bytes.Equal(src, out) {
		return false, nil
	}

	switch {
	case a.diff:
		err = writeDiff(a.stdout, path, string(src), string(out), a.colorize())
	case a.list:
		_, err = fmt.Fprintln(a.stdout, path)
	default:
		err = os.WriteFile(path, out, info.Mode().Perm())
	}

	return true, err
}

func (a *app) formatStdin(ctx context.Context) (bool, error) {
	src, err := io.ReadAll(a.stdin)
	if err != nil {
		return false, fmt.Errorf("reading stdin: %w", err)
	}

	path := a.stdinFilepath
	if path == "" {
		path = "stdin.js"
	}

	out, err := a.formatBytes(ctx, stdinName, path, src)
	if err != nil {
		return false, fmt.Errorf("%s: %w", stdinName, err)
	}

	changed := !bytes.Equal(src, out)

	switch {
	case a.diff:
		if changed {
			err = writeDiff(a.stdout, stdinName, string(src), string(out), a.colorize())
		}
	case a.list:
		if changed {
			_, err = fmt.Fprintln(a.stdout, stdinName)
		}
	default:
		_, err = a.stdout.Write(out)
	}

	return changed, err
}

// formatBytes formats src, choosing the language and config file by path.
// Diagnostics are reported against name.
func (a *app) formatBytes(ctx context.Context, name, path string, src []byte) ([]byte, error) {
	parser, err := jsparse.NewParserFor(path)
	if err != nil {
		return nil, err
	}

	f, err := a.formatterFor(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	out, diags, err := f.FormatSource(ctx, src, parser)
	if err != nil {
		return nil, err
	}

	for _, d := range diags {
		fmt.Fprintf(a.stderr, "%s:%d: %v\n", name, d.Line, d)
	}

	return out, nil
}

func (a *app) watch(ctx context.Context, paths []string, debounce time.Duration) error {
	w, err := watch.New(
		watch.WithDebounce(debounce),
		watch.WithFilter(func(path string) bool {
			_, ok := jsparse.LanguageFor(path)
			return ok
		}),
	)
	if err != nil {
		return err
	}

	defer func() {
		err := w.Close()
		if err != nil {
			slog.Warn("closing watcher", slog.Any("error", err))
		}
	}()

	err = w.Add(paths...)
	if err != nil {
		return err
	}

	err = a.format(ctx, paths)
	if err != nil {
		slog.Error("formatting", slog.Any("error", err))
	}

	slog.Info("watching for changes", slog.Any("paths", paths))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		for _, path := range changed {
			c, err := a.formatFile(ctx, path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				slog.Debug("file removed", slog.String("path", path))
			case err != nil:
				slog.Error("formatting", slog.String("path", path), slog.Any("error", err))
			case c:
				slog.Info("formatted", slog.String("path", path))
			}
		}
	})
}
