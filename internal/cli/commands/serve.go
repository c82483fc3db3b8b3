package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front-end",
		Long: `Serve a browser-based paste-and-convert page backed by the same
conversion pipeline as the convert command.`,
		Example: `  # Serve on the default port
  sqf2tcl serve

  # Serve on a specific port
  sqf2tcl serve --port 9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)

			convOpts, err := buildConvertOptions(cfg)
			if err != nil {
				return err
			}

			if port == 0 {
				port = cfg.ServePort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := ui.NewServer(ui.Config{
				ConvertOptions: convOpts,
				Port:           port,
				Logger:         slog.Default(),
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on")

	return cmd
}
