package main

import (
	"github.com/spf13/cobra"
)

func newSelectCalendarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "select-calendar",
		Short: "Select the calendar to synchronize with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, opts)
			ctx := cmd.Context()

			provider, err := a.provider(ctx)
			if err != nil {
				return err
			}
			_, err = a.selector(provider).ListAndSelect(ctx)
			return err
		},
	}
}
