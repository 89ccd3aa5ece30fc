package commands

import (
	"context"
	"io"
	"log"
	"time"

	"paperdesk/internal/backend"
	"paperdesk/internal/config"
	"paperdesk/internal/storage"
	"paperdesk/internal/upload"

	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	client  *backend.Client
	db      *storage.DB
	ledger  *storage.SubmissionRepo
	apiBase string
	verbose bool
)

func Execute() error {
	root := &cobra.Command{
		Use:          "paperdesk",
		Short:        "Submit research papers and fetch reviews and citations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadConfig()
			if !verbose {
				log.SetOutput(io.Discard)
			}
			client = backend.NewClient(cfg.APIBase, cfg.RequestTimeout())
			openLedger(cmd.Context())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			db.Close()
		},
	}

	root.PersistentFlags().StringVar(&apiBase, "api", "", "backend base URL (default $PAPERDESK_API_BASE or http://localhost:8000)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and outcomes to stderr")

	root.AddCommand(uploadCmd(), shellCmd(), papersCmd(), reviewCmd(), citationsCmd(), historyCmd(), stubCmd())
	return root.Execute()
}

func loadConfig() {
	cfg = config.Load()
	if apiBase != "" {
		cfg.APIBase = apiBase
	}
}

// openLedger connects the submission ledger when configured. Uploads still
// work without it.
func openLedger(ctx context.Context) {
	if cfg.PostgresURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	conn, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Printf("submission ledger disabled err=%v", err)
		return
	}
	repo := storage.NewSubmissionRepo(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Printf("submission ledger disabled err=%v", err)
		conn.Close()
		return
	}
	db, ledger = conn, repo
}

func newSession(p upload.Processor) *upload.Session {
	s := upload.NewSession(p, cfg.UploadTimeout())
	if ledger != nil {
		s.WithRecorder(ledger)
	}
	return s
}
