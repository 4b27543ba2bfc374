/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cleanfiles",
	Short: "cleanfiles - interactive cleanup of directory trees",
	Long: `cleanfiles indexes a primary directory X and any number of secondary
directories Y by file content, finds problem files (duplicates, empty files,
temp files, clashing names, bad permissions, bad characters, or Y files that
are missing from X) and walks you through fixing them one group at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		file, _ := cmd.Flags().GetString("log-file")
		if err := logger.Init(level, file); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// configPath returns the --config flag or the default location
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Disable progress bars and reduce output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (default is $HOME/.clean_files.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also append diagnostic logs to this file")
}
