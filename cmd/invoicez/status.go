package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/invoicez/file"
	"github.com/guilherme-santos/invoicez/internal"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the selected calendar and its last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, opts)

			calID, err := a.selection.Read()
			if errors.Is(err, file.ErrNoSelection) {
				fmt.Fprintln(a.output, "No selected calendar, run select-calendar.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.output, "Selected calendar: %s\n", calID)

			storage, err := a.storage()
			if err != nil {
				return err
			}
			defer storage.Close()

			last, err := storage.LastSync(cmd.Context(), calID)
			if err != nil {
				return fmt.Errorf("unable to read last sync: %w", err)
			}
			if last == nil {
				fmt.Fprintln(a.output, "Never synced.")
				return nil
			}
			fmt.Fprintf(a.output, "Last sync: %s, %d event(s), sync token %s\n",
				internal.FormatDateTime(last.SyncedAt), last.Events, last.SyncToken)
			return nil
		},
	}
}
