package commands

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paperdesk/internal/stubserver"

	"github.com/spf13/cobra"
)

// stub runs the stand-in backend. It replaces the root pre-run since it needs
// neither the client nor the ledger.
func stubCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stand-in for the research assistant backend",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.StubAddr
			}
			srv, err := stubserver.New(stubserver.Options{
				MaxUploadBytes: int64(cfg.StubMaxUploadMB) << 20,
				DataDir:        cfg.StubDataDir,
				Quiet:          !verbose,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Printf("stub server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $PAPERDESK_STUB_ADDR or :8000)")
	return cmd
}
