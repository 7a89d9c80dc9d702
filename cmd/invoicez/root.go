package main

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

type options struct {
	dir     string
	secrets string
	port    int
	verbose bool
}

func defaultDir() string {
	return filepath.Join(xdg.DataHome, "invoicez")
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "invoicez",
		Short: "Reads your Google Calendar events",
		Long: `invoicez authenticates against Google Calendar, lets you pick one of the
calendars of your account and retrieves its events.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", defaultDir(), "working directory holding the local state")
	flags.StringVar(&opts.secrets, "secrets", "", "OAuth client file (default <dir>/gcalendar-secrets.json)")
	flags.IntVar(&opts.port, "port", 0, "port of the local OAuth callback listener, 0 picks a free one")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs")

	cmd.AddCommand(newSelectCalendarCmd(opts))
	cmd.AddCommand(newSyncCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	return cmd
}
