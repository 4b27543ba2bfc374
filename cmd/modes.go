/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/ui"
)

// modesCmd represents the modes command
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the cleanup modes and the actions each one offers",
	Long: `List every cleanup mode with its number, name and action menu.

Either the number or the name can be passed to "cleanfiles run --mode".
Action labels reflect the current configuration, for example the permission
that "fix permission" applies.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		} else if path, err := config.DefaultPath(); err == nil && fileExists(path) {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.ModesTable(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
