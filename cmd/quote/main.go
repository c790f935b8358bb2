package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-quote-must-flow/internal/cli"
	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// interrupts reports SIGINT/SIGTERM for every command.
var interrupts = cli.NewInterruptHandler(os.Stderr)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "quote",
		Short: "📐 Quotation builder for interior and architecture work",
		Long: `quote: build a quotation from line items, review the totals with GST,
and export a printable PDF.

Run "quote form" for the interactive form, or "quote export items.csv" to
turn a sheet of line items into a PDF.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/quote/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("settings", "", "settings file (default: $HOME/.config/quote/settings.json)")
	rootCmd.PersistentFlags().String("database", "", "export journal (default: $HOME/.config/quote/quote.db)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("settings.path", rootCmd.PersistentFlags().Lookup("settings"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.AddCommand(formCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("QUOTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

// logFilePath is where the form writes logs while it owns the terminal.
func logFilePath() string {
	return filepath.Join(config.Dir(), "quote.log")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "quote version "+version)
		},
	}
}
