package main

import (
	"github.com/spf13/cobra"

	"github.com/guilherme-santos/invoicez/internal"
	"github.com/guilherme-santos/invoicez/internal/syncer"
)

func newSyncCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize with Google Calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, opts)
			ctx := cmd.Context()

			provider, err := a.provider(ctx)
			if err != nil {
				return err
			}

			var storage syncer.Storage
			if s, err := a.storage(); err != nil {
				a.logger.Warn("Sync history disabled", internal.Err(err))
			} else {
				defer s.Close()
				storage = s
			}

			_, err = syncer.New(a.output, a.logger, a.selector(provider), provider, storage).Sync(ctx)
			return err
		},
	}
}
