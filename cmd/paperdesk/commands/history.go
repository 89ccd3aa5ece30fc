package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent submissions from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ledger == nil {
				return fmt.Errorf("submission ledger unavailable. set PAPERDESK_POSTGRES_URL")
			}
			n := limit
			if n <= 0 {
				n = cfg.HistoryDefaultEntries
			}
			subs, err := ledger.ListRecent(cmd.Context(), n)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), subs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of submissions (default $PAPERDESK_HISTORY_ENTRIES or 20)")
	return cmd
}
