package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"paperdesk/internal/upload"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  pick <path>...   add files as if chosen in a file dialog
  drop <path>...   add files as if dragged onto the drop zone
  ls               list the selection
  rm <n>           remove entry n (as numbered by ls)
  clear            remove every entry
  submit           upload the selection as one batch
  status           show the last message
  quit             leave the shell`

// shell: a line-oriented upload view over one session.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive upload view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "paperdesk shell (backend %s). type help for commands.\n", client.BaseURL())
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), newSession(client))
		},
	}
}

var errQuit = errors.New("quit")

func runShell(ctx context.Context, in io.Reader, out io.Writer, s *upload.Session) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		err := shellExec(ctx, out, s, fields[0], fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func shellExec(ctx context.Context, out io.Writer, s *upload.Session, verb string, args []string) error {
	switch verb {
	case "help", "?":
		fmt.Fprintln(out, shellHelp)
	case "pick", "drop":
		if len(args) == 0 {
			return fmt.Errorf("%s needs at least one path", verb)
		}
		files, errs := upload.FromPaths(args)
		for _, err := range errs {
			fmt.Fprintf(out, "skip: %v\n", err)
		}
		var res upload.Result
		if verb == "drop" {
			s.Handle(upload.Event{Kind: upload.DragEnter})
			res = s.Drop(files...)
		} else {
			res = s.Pick(files...)
		}
		printResult(out, res)
	case "ls":
		printSelection(out, s.Selection().Snapshot())
	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rm: %q is not a number", args[0])
		}
		if !s.RemoveAt(n - 1) {
			fmt.Fprintln(out, "nothing removed")
		}
	case "clear":
		s.RemoveAll()
	case "submit":
		outcome, err := s.Submit(ctx)
		if err != nil {
			return err
		}
		printOutcome(out, outcome)
	case "status":
		if msg := s.Status(); msg != "" {
			fmt.Fprintln(out, msg)
		}
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
	return nil
}
