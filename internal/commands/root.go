// Package commands wires the cobra command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/auditlog"
	"github.com/fintrail-dev/fintrail/internal/buildinfo"
	"github.com/fintrail-dev/fintrail/internal/config"
	"github.com/fintrail-dev/fintrail/internal/session"
)

// app holds the shared dependencies the subcommands use. Built once in the
// root command's PersistentPreRunE.
type app struct {
	cfg     *config.Config
	dataDir string
	client  *api.Client
	store   *session.Store
	log     zerolog.Logger
	out     io.Writer
	in      io.Reader
}

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	a := &app{out: os.Stdout, in: os.Stdin}
	var verbose bool
	var dataDir string
	var serverURL string

	rootCmd := &cobra.Command{
		Use:     "fintrail",
		Short:   "Personal finance tracking client",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(verbose)
			a.out = cmd.OutOrStdout()
			a.in = cmd.InOrStdin()

			dir := dataDir
			if dir == "" {
				var err error
				dir, err = config.DataDir()
				if err != nil {
					return err
				}
			}
			a.dataDir = dir
			a.store = session.NewStore(dir, a.log)

			// init creates the config; everything else reads it.
			if cmd.Name() == "init" {
				return nil
			}

			cfg, err := config.Load(filepath.Join(dir, config.FileName))
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("no configuration found, run `fintrail init --server <url>` first")
				}
				return err
			}
			if serverURL != "" {
				cfg.Server.URL = serverURL
			}
			if cfg.Server.URL == "" {
				return fmt.Errorf("no server URL configured")
			}

			a.cfg = cfg
			a.client = api.NewClient(cfg.Server.URL, api.WithLogger(a.log))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "override the configured server URL")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newLoginCommand(a))
	rootCmd.AddCommand(newRegisterCommand(a))
	rootCmd.AddCommand(newLogoutCommand(a))
	rootCmd.AddCommand(newWhoamiCommand(a))
	rootCmd.AddCommand(newAccountsCommand(a))
	rootCmd.AddCommand(newTxCommand(a))
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newDashboardCommand(a))
	rootCmd.AddCommand(newFireCommand(a))
	rootCmd.AddCommand(newTaxCommand(a))
	rootCmd.AddCommand(newExportCommand(a))

	return rootCmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// requireSession restores the persisted session and fails when the user is
// not (or no longer) logged in.
func (a *app) requireSession(ctx context.Context) error {
	ok, err := a.store.Restore(ctx, a.client)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not logged in, run `fintrail login` first")
	}
	return nil
}

// audit records a mutation in the local audit log. Best-effort: failures
// only warn.
func (a *app) audit(action, entity, entityID string, opErr error) {
	outcome := "ok"
	if opErr != nil {
		outcome = opErr.Error()
	}
	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Outcome:   outcome,
	}
	if err := auditlog.Append(a.dataDir, []auditlog.Entry{entry}); err != nil {
		a.log.Warn().Err(err).Msg("failed to write audit log")
	}
}
