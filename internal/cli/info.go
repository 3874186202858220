package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// fieldOrder lists the record fields shown first, in display order.
// Remaining fields follow alphabetically.
var fieldOrder = []string{
	"pkgbase", "pkgname", "pkgver", "pkgrel", "epoch", "pkgdesc", "url",
	"arch", "license", "depends", "makedepends", "checkdepends",
	"optdepends", "provides", "conflicts", "source",
}

// infoCommand creates the "info" command.
func (c *CLI) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show the resolved metadata record for an AUR package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			p := newProgress(loggerFromContext(ctx))
			rec := client.SrcInfo(ctx, name)
			if len(rec) == 0 {
				printWarning("No metadata available for %s", name)
				return nil
			}
			p.done(fmt.Sprintf("Resolved %s", name))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}

			printRecord(name, rec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the record as JSON")
	return cmd
}

// printRecord renders a record with well-known fields first.
func printRecord(name string, rec srcinfo.Record) {
	fmt.Println(StyleTitle.Render(name))

	shown := make(map[string]bool)
	for _, key := range fieldOrder {
		if !rec.Has(key) {
			continue
		}
		if key == "url" {
			printLink(key, rec.Str(key))
		} else {
			printField(key, formatValue(rec[key]))
		}
		shown[key] = true
	}

	rest := make([]string, 0, len(rec))
	for key := range rec {
		if !shown[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		printField(key, formatValue(rec[key]))
	}
}

func formatValue(v srcinfo.Value) string {
	if v.Multi() {
		return strings.Join(v.Strings(), "  ")
	}
	return v.Str()
}
