package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/pkg/aur"
	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// depsCommand creates the "deps" command.
func (c *CLI) depsCommand() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "deps <package>",
		Short: "List the build and runtime dependencies of an AUR package",
		Long:  `Deps resolves a package's metadata and prints the union of its depends, makedepends and checkdepends fields for the configured architecture. Version constraints are kept unless --names-only is set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			client, closeCache, err := c.openClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			deps, err := client.RequiredDeps(ctx, name)
			if errors.Is(err, aur.ErrPackageNotFound) {
				return fmt.Errorf("no metadata available for %s", name)
			}
			if err != nil {
				return err
			}

			if namesOnly {
				seen := make(map[string]bool)
				var names []string
				for _, dep := range deps {
					n := srcinfo.DepName(dep)
					if !seen[n] {
						seen[n] = true
						names = append(names, n)
					}
				}
				deps = names
			}

			slices.Sort(deps)
			for _, dep := range deps {
				fmt.Println(dep)
			}
			printDetail("%d dependencies (%s)", len(deps), client.Arch())
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names-only", false, "strip version constraints")
	return cmd
}
