package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// indexCommand creates the "index" command.
func (c *CLI) indexCommand() *cobra.Command {
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "List known AUR package names",
		Long:  `Index reads the locally persisted package name index when present, falling back to downloading the bulk listing from the AUR. Used for search pre-indexing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			spin := newSpinner(ctx, "Loading package index...")
			spin.Start()
			names := client.Index(ctx)
			spin.Stop()

			if len(names) == 0 {
				printWarning("Package index unavailable")
				return nil
			}

			if countOnly {
				printSuccess("%d packages indexed", len(names))
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of indexed packages")
	return cmd
}
