package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new journal session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		return runSession(v, journal.Start{})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
