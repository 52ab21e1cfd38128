package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/pkg/render"
)

// vizCommand creates the "viz" command.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		object   string
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "viz <scene.json>",
		Short: "Render a shapekey diagram",
		Long: `Viz draws an object's shapekey list as a diagram: keys as an ordered
chain from the base entry down, mask edges to vertex groups, and .old
keys dashed. Formats: dot, svg, png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.loadScene(args[0])
			if err != nil {
				return err
			}

			name := object
			if name == "" && len(sc.Objects) == 1 {
				name = sc.Objects[0].Name
			}
			o := sc.Object(name)
			if o == nil {
				return fmt.Errorf("no object named %q in scene", name)
			}

			p := newProgress(c.Logger)
			dot := render.ToDOT(o, render.Options{Detailed: detailed})

			var out []byte
			switch strings.ToLower(format) {
			case "dot":
				out = []byte(dot)
			case "svg":
				out, err = render.RenderSVG(dot)
			case "png":
				out, err = render.RenderPNG(dot)
			default:
				return fmt.Errorf("unknown format %q: want dot, svg, or png", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				if format != "dot" {
					return fmt.Errorf("--output is required for %s", format)
				}
				fmt.Print(dot)
				return nil
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			p.done(fmt.Sprintf("Rendered %d shapekeys", len(o.Keys)))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&object, "object", "o", "", "target object (default: the scene's only object)")
	cmd.Flags().StringVar(&output, "output", "", "output file (stdout for dot)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include positions and blend values in labels")

	return cmd
}
