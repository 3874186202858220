package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/aurtools/aurinfo/pkg/aur"
	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// graphCommand creates the "graph" command.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph <package>",
		Short: "Render a package's direct dependencies as an SVG diagram",
		Long:  `Graph renders the package and its direct build/runtime dependencies as a node-link diagram. Only direct dependencies are drawn; transitive resolution is out of scope.`,
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

			svg, err := renderDepsSVG(ctx, name, deps)
			if err != nil {
				return err
			}

			if output == "" {
				output = name + ".svg"
			}
			if err := os.WriteFile(output, svg, 0644); err != nil {
				return err
			}
			printSuccess("Rendered %d dependencies", len(deps))
			printDetail("Output: %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <package>.svg)")
	return cmd
}

// depsToDOT converts a package and its direct dependency set to Graphviz
// DOT format. Version constraints become edge labels.
func depsToDOT(name string, deps []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	fmt.Fprintf(&buf, "  %q [fillcolor=lightblue];\n", name)

	for _, dep := range deps {
		target := srcinfo.DepName(dep)
		if constraint := strings.TrimPrefix(dep, target); constraint != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", name, target, constraint)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderDepsSVG renders the dependency diagram to SVG using Graphviz.
func renderDepsSVG(ctx context.Context, name string, deps []string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(depsToDOT(name, deps)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
