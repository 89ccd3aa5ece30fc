package commands

import (
	"fmt"

	"paperdesk/internal/upload"

	"github.com/spf13/cobra"
)

// upload <files...>: validate local files and submit the accepted ones.
func uploadCmd() *cobra.Command {
	var asDrop bool
	cmd := &cobra.Command{
		Use:   "upload <file.pdf>...",
		Short: "Validate and submit PDF files in a single batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			files, errs := upload.FromPaths(args)
			for _, err := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "skip: %v\n", err)
			}

			s := newSession(client)
			var res upload.Result
			if asDrop {
				s.Handle(upload.Event{Kind: upload.DragEnter})
				res = s.Drop(files...)
			} else {
				res = s.Pick(files...)
			}
			printResult(out, res)

			outcome, err := s.Submit(cmd.Context())
			if err != nil {
				return err
			}
			printOutcome(out, outcome)
			if !outcome.Succeeded() {
				return fmt.Errorf("upload failed: %s", outcome.Failure.Classification)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asDrop, "drop", false, "treat the files as dropped instead of picked")
	return cmd
}
