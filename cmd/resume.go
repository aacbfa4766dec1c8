package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [session-id]",
	Short: "Resume the given or most recent active session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}

		var initial journal.Action = journal.Start{}
		if len(args) == 1 {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}
			initial = journal.Resume{SessionID: id}
		} else if id, ok, err := v.ActiveSession(); err == nil && ok {
			initial = journal.Resume{SessionID: id}
		}
		// No pointer (or an unreadable one) falls back to a new session.

		return runSession(v, initial)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
