package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trokit/aerotro/internal/config"
)

const appName = "aerotro"

var (
	// Global flags
	configDir    string
	logLevel     string
	locale       string
	catalogPath  string
	messagesPath string

	application *app
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Technical Readout generator for aerospace units",
	Long: `aerotro turns aerospace fighter and small craft unit files (YAML or JSON)
into Technical Readouts: plain text, HTML or markdown.

Every generated readout is archived in the configured storage backend
(JSON export files, SQLite or Postgres) and its build statistics can be
sent to InfluxDB.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		application, err = newApp()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.close(context.Background())
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&locale, "locale", "", "readout language, e.g. en or de")
	flags.StringVar(&catalogPath, "catalog", "", "extra equipment catalog (YAML)")
	flags.StringVar(&messagesPath, "messages", "", "YAML file overriding readout messages")

	_ = viper.BindPFlag("logLevel", flags.Lookup("log-level"))
	_ = viper.BindPFlag("locale", flags.Lookup("locale"))
	_ = viper.BindPFlag("equipment.catalog", flags.Lookup("catalog"))
	_ = viper.BindPFlag("messages.file", flags.Lookup("messages"))

	rootCmd.AddCommand(renderCmd, watchCmd, catalogCmd, historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
