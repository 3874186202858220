package cli

import (
	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/internal/api"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve resolved AUR metadata over a JSON REST API",
		Long:  `Serve runs an HTTP server exposing package records, dependency sets, update summaries and search over JSON. Several tools on a network can share one resolver and one cache this way instead of each hitting the AUR directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			server := api.NewServer(client, c.Logger)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr from config)")
	return cmd
}
