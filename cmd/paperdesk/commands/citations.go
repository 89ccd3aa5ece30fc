package commands

import (
	"fmt"

	"paperdesk/internal/models"

	"github.com/spf13/cobra"
)

func citationsCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "citations <paperId>",
		Short: "Print formatted citations for a processed paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := models.ParseCitationStyle(style)
			if !ok {
				return fmt.Errorf("unsupported citation style %q (use ieee, apa or mla)", style)
			}
			cites, err := client.GetCitations(cmd.Context(), args[0], st)
			if err != nil {
				return requestError(err)
			}
			if len(cites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no citations returned")
			}
			for _, c := range cites {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", string(models.CitationIEEE), "citation style: ieee, apa or mla")
	return cmd
}
