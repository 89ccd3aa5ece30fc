package commands

import (
	"github.com/spf13/cobra"
)

// review <paperId>: ask the backend for a literature review.
func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <paperId>",
		Short: "Generate a literature review for a processed paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client.GenerateReview(cmd.Context(), args[0])
			if err != nil {
				return requestError(err)
			}
			printReview(cmd.OutOrStdout(), r)
			return nil
		},
	}
}
