package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"notesweb/internal/notesweb/adapters/remote"
	"notesweb/internal/notesweb/domain/entities"
	"notesweb/internal/notesweb/widgets"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print active notes from the remote service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer syncLogger(log)

		client, err := remote.NewClient(ctx, &cfg.Remote, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrCreateRemoteClient, err)
		}

		notes, err := client.List(ctx)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}

		loc, err := cfg.Display.Location()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, n := range entities.Active(notes) {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, widgets.FormatLongDate(n.CreatedAt.In(loc)), n.Title); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return w.Flush()
	},
}
