package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/config"
	"github.com/balkashynov/tudu/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "tudu",
	Short: "A terminal client for your task server",
	Long: `tudu talks to a remote task API. List and filter tasks, toggle their
status, and create new ones from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app holds what a command needs for one invocation
type app struct {
	cfg     *config.Config
	client  *api.Client
	journal *db.Journal
	logger  *slog.Logger
	closers []io.Closer
}

// setup loads config, builds the logger and client and opens the journal.
// Interactive commands log to the log file or nowhere, since the alt
// screen owns the terminal.
func setup(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	out := cmd.ErrOrStderr()
	if interactive {
		out = io.Discard
	}
	if path := firstNonEmpty(logFile, cfg.Log.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		out = f
	}
	a.logger = newLogger(out, cfg.Log.Level, verbose)

	a.client = api.NewClient(api.Credentials{
		Endpoint: cfg.APIURL,
		Email:    cfg.Email,
		Password: cfg.Password,
	}, api.WithLogger(a.logger))

	if cfg.Journal.Enabled {
		j, err := db.Open(cfg.Journal.Path)
		if err != nil {
			// the journal is optional; a broken one must not block the command
			a.logger.Warn("journal unavailable", "path", cfg.Journal.Path, "err", err)
		} else {
			a.journal = j
			a.closers = append(a.closers, j)
		}
	}

	a.logger.Debug("configured", "api_url", cfg.APIURL, "journal", a.journal != nil)
	return a, nil
}

// recorder returns the journal as a board.Recorder, or nil when disabled
func (a *app) recorder() board.Recorder {
	if a.journal == nil {
		return nil
	}
	return loggedRecorder{rec: a.journal, logger: a.logger}
}

// loggedRecorder reports journal write failures without failing the action
type loggedRecorder struct {
	rec    board.Recorder
	logger *slog.Logger
}

func (r loggedRecorder) Record(ctx context.Context, ev board.Event) error {
	err := r.rec.Record(ctx, ev)
	if err != nil {
		r.logger.Warn("journal write failed", "kind", ev.Kind, "task", ev.TaskID, "err", err)
	}
	return err
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tudu %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.tudu/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
