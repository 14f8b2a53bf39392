package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Dezmoral/Askar/internal/config"
	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/Dezmoral/Askar/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	dbPath     string
	storage    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin

	// storeOptions are appended when the store is opened.
	storeOptions []db.Option
)

// errReported means the failure was already printed as a JSON result.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "askar",
	Short: "Askar - personal notebook in the terminal",
	Long: `Askar keeps accounts, folders and notes in a single local store
(a JSON file or an embedded SQLite database).

Run without arguments to open the interactive notebook. The subcommands
expose the same operations headlessly and print JSON results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		i18n.SetLanguage(i18n.Language(cfg.Language))

		logger, err = logging.New(cfg, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Store path (overrides config and ASKAR_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "Store backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(notesCmd)
}

// loadConfig layers the config file, .env and ASKAR_* variables, then the
// command line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(".env"); err != nil {
		return nil, err
	}
	if storage != "" {
		if dbPath == "" && c.DBPath == config.DefaultDBPath(c.Storage) {
			c.DBPath = config.DefaultDBPath(storage)
		}
		c.Storage = storage
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func openStore() (*db.DB, error) {
	opts := append([]db.Option{db.WithLogger(logger)}, storeOptions...)
	store, err := db.Open(cfg.Storage, cfg.DBPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
