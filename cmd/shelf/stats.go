// Stats command for the shelf CLI.
package main

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			st := s.Stats()
			if a.flagJSON {
				return printJSON(a.out, st)
			}
			return a.renderer.Stats(a.out, st)
		},
	}
}
