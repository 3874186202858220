package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/pkg/aur"
)

// searchCommand creates the "search" command.
func (c *CLI) searchCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the AUR by name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			term := args[0]

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			spin := newSpinner(ctx, fmt.Sprintf("Searching for %q...", term))
			spin.Start()
			results, err := client.Search(ctx, term)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if len(results) == 0 {
				printInfo("No packages matching %q", term)
				return nil
			}

			if interactive {
				return pickAndShow(ctx, client, results)
			}

			for _, pkg := range results {
				printPackageLine(pkg)
			}
			printDetail("%d packages", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a result and show its record")
	return cmd
}

// printPackageLine renders one search result.
func printPackageLine(pkg aur.Package) {
	line := StyleHighlight.Render(pkg.Name) + " " + StyleDim.Render(pkg.Version)
	if pkg.OutOfDate != nil {
		line += " " + StyleWarning.Render("[out of date]")
	}
	fmt.Println(line)
	if pkg.Description != "" {
		printDetail("%s", pkg.Description)
	}
}

// pickAndShow runs the interactive picker over results and prints the
// full record of the selected package.
func pickAndShow(ctx context.Context, client *aur.Client, results []aur.Package) error {
	model := newPackageListModel(results)
	prog := tea.NewProgram(model, tea.WithContext(ctx))

	final, err := prog.Run()
	if err != nil {
		return err
	}

	m, ok := final.(packageListModel)
	if !ok || m.selected == nil {
		return nil
	}

	rec := client.SrcInfo(ctx, m.selected.Name)
	if len(rec) == 0 {
		printWarning("No metadata available for %s", m.selected.Name)
		return nil
	}
	printRecord(m.selected.Name, rec)
	return nil
}
