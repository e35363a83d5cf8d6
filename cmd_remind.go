package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenbloom/jobs"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the watering reminder sweep once",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.close()

		reminders, err := jobs.NewReminders(svc.store, svc.mailer, nil)
		if err != nil {
			return err
		}
		sent := jobs.RunReminders(cmd.Context(), reminders)
		fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminder(s)\n", sent)
		return nil
	},
}
