// Package main provides the studybuddy CLI entry point.
package main

import (
	"fmt"
	"os"

	"studybuddy/internal/config"
	"studybuddy/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgPath    string
	memoryPath string
	verbose    bool
	theme      string
	noColor    bool

	cfg       *config.Config
	logger    *zap.Logger
	sessionID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "buddy",
	Short: "Study Buddy - a terminal study assistant",
	Long: `Study Buddy is a single-user chat assistant for the terminal.

It answers business-studies FAQs, evaluates arithmetic, opens support
tickets, summarizes CSV files, and remembers your name between sessions.

Run without arguments to start chatting. Type /help inside the chat for commands.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runChat,
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the studybuddy config file",
	// Config helpers must work even when the existing file does not validate.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var forceInit bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := writeDefaultConfig(cfgPath, forceInit); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&memoryPath, "memory", "", "Memory file path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging (requires logging.debug_mode)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Color theme: light or dark (remembered)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads config, applies flag overrides, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("memory") {
		loaded.Memory.Path = memoryPath
	}
	if flags.Changed("theme") {
		loaded.UI.Theme = theme
	}
	if noColor {
		loaded.UI.Color = false
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger, err = logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	sessionID = uuid.NewString()
	logging.For(logger, logging.CategoryBoot).Info("studybuddy starting",
		zap.String("session", sessionID),
		zap.String("config", cfgPath),
		zap.String("memory", cfg.Memory.Path))
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return config.DefaultConfig().Save(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
