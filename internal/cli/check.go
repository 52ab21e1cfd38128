package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// checkCommand creates the "check" command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		object string
		list   string
	)

	cmd := &cobra.Command{
		Use:   "check <scene.json>",
		Short: "Compare an object's shapekeys against an expected list",
		Long: `Check compares the shapekeys of a scene object against a configured
expected list and records what is missing. A follow-up "fill" creates the
recorded keys. Re-running check always replaces the previous record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			sc, err := c.loadScene(args[0])
			if err != nil {
				return err
			}
			if list == "" {
				names := runner.Rosters().ListNames()
				if len(names) > 0 {
					list = names[0]
				}
			}

			sceneID, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			res, err := runner.Check(cmd.Context(), sceneID, sc, object, list)
			if err != nil {
				return err
			}

			if len(res.Missing) == 0 {
				printSuccess("%s", res.Message)
				return nil
			}
			printWarning("%s", res.Message)
			for _, name := range res.Missing {
				printDetail("%s", name)
			}
			printDetail("run 'shapekit fill %s' to create them", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&object, "object", "o", "", "target object (default: the scene's only object)")
	cmd.Flags().StringVarP(&list, "list", "l", "", "expected list name (default: first configured list)")

	return cmd
}
