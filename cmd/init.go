package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"homeseed/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default homeseed.config.json in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}
		color.Green("✅ Wrote %s", config.ConfigFileName)
		color.Cyan("Set DATABASE_URL (or the Back4App credential variables), then run: homeseed populate")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
