package commands

import (
	"github.com/spf13/cobra"
)

func papersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "papers",
		Short: "List processed papers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			papers, err := client.ListPapers(cmd.Context())
			if err != nil {
				return requestError(err)
			}
			printPapers(cmd.OutOrStdout(), papers)
			return nil
		},
	}
}
