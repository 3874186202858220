package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// updateCommand creates the "update" command.
func (c *CLI) updateCommand() *cobra.Command {
	var versionHint string

	cmd := &cobra.Command{
		Use:   "update <package>",
		Short: "Build the update-check summary for an AUR package",
		Long:  `Update resolves a package's metadata and emits the summary consumed by update checkers: provided names, dependency set, conflicts and package base. When no metadata can be fetched, a minimal summary is built from the name and --latest version hint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			data := client.UpdateData(ctx, args[0], versionHint, nil)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}

	cmd.Flags().StringVar(&versionHint, "latest", "", "latest known version hint used when metadata is unavailable")
	return cmd
}
