package cli

import (
	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/pkg/ops"
)

// tidyCommand creates the "tidy" command.
func (c *CLI) tidyCommand() *cobra.Command {
	var object string

	cmd := &cobra.Command{
		Use:   "tidy <scene.json>",
		Short: "Move .old shapekeys to the bottom of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.loadScene(args[0])
			if err != nil {
				return err
			}

			res, err := ops.TidyRequest{Object: object}.Apply(sc)
			if err != nil {
				return err
			}
			if res.Moved == 0 {
				printInfo("%s", res.Message)
				return nil
			}
			if err := c.saveScene(args[0], sc); err != nil {
				return err
			}
			printSuccess("%s", res.Message)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&object, "object", "o", "", "target object (default: the scene's only object)")

	return cmd
}

// pruneCommand creates the "prune" command.
func (c *CLI) pruneCommand() *cobra.Command {
	var object string

	cmd := &cobra.Command{
		Use:   "prune <scene.json>",
		Short: "Delete .old shapekeys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.loadScene(args[0])
			if err != nil {
				return err
			}

			res, err := ops.PruneRequest{Object: object}.Apply(sc)
			if err != nil {
				return err
			}
			if res.Deleted == 0 {
				printInfo("%s", res.Message)
				return nil
			}
			if err := c.saveScene(args[0], sc); err != nil {
				return err
			}
			printSuccess("%s", res.Message)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&object, "object", "o", "", "target object (default: the scene's only object)")

	return cmd
}
