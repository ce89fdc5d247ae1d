package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmfb/entitylogger/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
}

// InitResult reports the database that was prepared.
type InitResult struct {
	Database string `json:"database"`
}

func (r InitResult) String() string {
	return fmt.Sprintf("Database ready: %s", r.Database)
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the snapshot database",
		Long: `Open the snapshot database, creating the file, its directory and
tables if needed, then close it again.

Example:
  entitylogger init
  entitylogger init --db /tmp/snap.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initDatabase(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func initDatabase(opts *InitOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := store.Open(cfg.Database)
	if err != nil {
		_ = formatter.Error("STORE_UNAVAILABLE", err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	if err := st.Close(); err != nil {
		return WrapExitError(ExitFailure, "failed to close database", err)
	}

	logger.Debug("database initialized", "path", cfg.Database)
	return formatter.Success(InitResult{Database: cfg.Database})
}
