package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/config"
	"github.com/Makepad-fr/todo/internal/logging"
	"github.com/Makepad-fr/todo/internal/store/linestore"
	"github.com/Makepad-fr/todo/internal/ui"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1 // i/o, malformed file, config
	ExitUsage = 2 // bad arguments or an id out of range
)

// usageError is a command invoked without (or with malformed) arguments.
// No file access happens before it is returned.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// app carries state resolved once per invocation.
type app struct {
	stdout, stderr io.Writer

	// root flags
	pathFlag   string
	configFlag string
	themeFlag  string
	colorFlag  string
	verbose    bool

	// list flags
	group bool
	plain bool

	cfg    config.Config
	path   string
	logger *log.Logger
	closer io.Closer
}

// Run executes one command and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: log.New(io.Discard)}
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	if a.closer != nil {
		_ = a.closer.Close()
	}
	if err == nil {
		return ExitOK
	}

	ui.Fail(stderr, err.Error())
	code := exitCode(err)
	switch {
	case errors.Is(err, linestore.ErrInvalidID):
		ui.Hint(stderr, "Hint: run `todo` to see valid ids")
	case code == ExitUsage:
		ui.Hint(stderr, "Run `todo --help` for usage.")
	}
	a.logger.Debug("command failed", "err", err, "exit", code)
	return code
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue), errors.Is(err, linestore.ErrInvalidID):
		return ExitUsage
	}
	return ExitError
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A tiny todo list kept in a plain text file",
		Long: `todo keeps a list of tasks in a single text file (default ~/.todo),
one task per line. Without a subcommand it lists the tasks.

Ids are positions in the file, starting at 0. Removing a task shifts the
ids of every task after it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q", args[0])
			}
			return nil
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runList,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&a.pathFlag, "path", "p", "", "todo file to read and modify (default $HOME/.todo)")
	pf.StringVar(&a.configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.toml)")
	pf.StringVar(&a.themeFlag, "theme", "", "color theme: classic|neon|mono")
	pf.StringVar(&a.colorFlag, "color", "", "color output: auto|always|never")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	addListFlags(root, a)

	root.AddCommand(
		newAddCmd(a),
		newIDCmd(a, "remove", []string{"rm"}, "Removes entry with id from todo list", linestore.Remove, "removed"),
		newClearCmd(a),
		newIDCmd(a, "done", nil, "Toggles done on entry with id", linestore.ToggleDone, "updated"),
		newIDCmd(a, "urgent", nil, "Toggles urgent on entry with id", linestore.ToggleUrgent, "updated"),
		newListCmd(a),
		newTUICmd(a),
	)
	return root
}

func addListFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().BoolVar(&a.group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&a.plain, "plain", false, "one line per entry, no panel")
}

// setup loads config, builds the logger and resolves the todo path once.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFlag, a.configFlag != "")
	if err != nil {
		return err
	}
	if a.themeFlag != "" {
		cfg.Theme = a.themeFlag
	}
	if a.colorFlag != "" {
		cfg.Color = a.colorFlag
	}
	cfg.Color = colorFor(cfg)
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return usagef("%v", err)
	}
	if err := ui.SetColorMode(cfg.Color, a.stdout); err != nil {
		return usagef("%v", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: a.verbose,
		File:    cfg.LogFile,
		Stderr:  a.stderr,
	})
	if err != nil {
		return err
	}
	a.logger, a.closer = logger, closer

	path, err := config.ResolvePath(a.pathFlag, cmd.Flags().Changed("path"), cfg)
	if err != nil {
		return usagef("%v", err)
	}
	a.cfg, a.path = cfg, path
	a.logger.Debug("resolved todo file", "path", path)
	return nil
}

// colorFor turns color off for the mono theme unless a mode was chosen.
func colorFor(cfg config.Config) string {
	if cfg.Theme == "mono" && (cfg.Color == "" || cfg.Color == "auto") {
		return "never"
	}
	return cfg.Color
}

func (a *app) openStore() (*linestore.Store, error) {
	mode, err := linestore.ParseWriteMode(a.cfg.WriteMode)
	if err != nil {
		return nil, err
	}
	return linestore.Open(a.path,
		linestore.WithWriteMode(mode),
		linestore.WithSkipMalformed(a.cfg.SkipMalformed),
		linestore.WithLogger(a.logger),
	)
}

// mutate runs op through one store cycle and reports success.
func (a *app) mutate(op linestore.Op, okMsg string) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if _, err := s.Apply(op); err != nil {
		return fmt.Errorf("%s: %w", op.Kind, err)
	}
	ui.OK(a.stdout, okMsg)
	return nil
}

// -------------- subcommands ----------------

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Adds entry to todo list",
		Example: `  todo add "Buy milk"
  todo add call the plumber`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: todo add <text...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if !linestore.ValidText(text) {
				return usagef("add: text must be non-empty and on a single line")
			}
			return a.mutate(linestore.Add(text), "added")
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Removes all entries from todo list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("usage: todo clear")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(linestore.Clear(), "cleared")
		},
	}
}

func newIDCmd(a *app, name string, aliases []string, short string, op func(int) linestore.Op, okMsg string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <id>",
		Aliases: aliases,
		Short:   short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: todo %s <id>", name)
			}
			_, err := parseID(name, args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(name, args[0])
			if err != nil {
				return err
			}
			return a.mutate(op(id), okMsg)
		},
	}
}

func parseID(cmd, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, usagef("%s: id must be a non-negative number: %s", cmd, s)
	}
	return n, nil
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lists entries with their ids (default command)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("usage: todo list [--group] [--plain]")
			}
			return nil
		},
		RunE: a.runList,
	}
	addListFlags(cmd, a)
	return cmd
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	records, err := s.List()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	fmt.Fprint(a.stdout, ui.RenderList(records, ui.ListOptions{
		Group: a.group || a.cfg.Group,
		Plain: a.plain,
	}))
	return nil
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list (space done, u urgent, d remove, a add, c clear, q quit)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("usage: todo tui")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.RunInteractive(a.path, a.openStore, a.logger)
		},
	}
}
