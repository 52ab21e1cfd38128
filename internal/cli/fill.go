package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// fillCommand creates the "fill" command.
func (c *CLI) fillCommand() *cobra.Command {
	var object string

	cmd := &cobra.Command{
		Use:   "fill <scene.json>",
		Short: "Create the shapekeys the last check reported missing",
		Long: `Fill creates the shapekeys recorded by the most recent check of the
same scene and object, at zero weight with no offsets, and clears the
record. Without a prior check there is nothing to create.`,
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

			sceneID, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			res, err := runner.Fill(cmd.Context(), sceneID, sc, object)
			if err != nil {
				return err
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
