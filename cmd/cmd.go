package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "LEDGER"

var (
	dbPath     string
	configPath string
	cfg        *internal.Config
)

var rootCmd = &cobra.Command{
	Use:               "ledger",
	Short:             "Personal finance ledger",
	Long:              `Records income and expense entries against categories and reports monthly spending.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	c, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		c.Database.Path = dbPath
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(c.App.Env, c.Logging.Level, c.Logging.Format)
	cfg = c
	return nil
}

// loadConfig layers defaults, an optional config file and LEDGER_* environment
// variables, in increasing precedence.
func loadConfig(path string) (*internal.Config, error) {
	defaults := internal.DefaultConfig()

	v := viper.New()
	v.SetDefault("app.env", defaults.App.Env)
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var c internal.Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &c, nil
}

// withStore opens the configured ledger for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, mgr *store.Manager, s *store.Store) error) error {
	log := logger.LoggerWrapper()
	ctx := logger.Into(cmd.Context(), log)

	mgr := store.NewManager(cfg.Database.Path, log)
	if err := mgr.Initialize(ctx); err != nil {
		return err
	}
	defer mgr.Close()

	s, err := mgr.Store()
	if err != nil {
		return err
	}
	return fn(ctx, mgr, s)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", internal.DefaultDatabasePath, "path to the ledger database file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yml when present)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(exportCmd)
}
