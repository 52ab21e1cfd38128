package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/roster"
)

// splitCommand creates the "split" command.
func (c *CLI) splitCommand() *cobra.Command {
	var (
		object string
		key    string
		pair   string
		groups string
	)

	cmd := &cobra.Command{
		Use:   "split <scene.json>",
		Short: "Split a shapekey in two using a vertex-group pair",
		Long: `Split derives two shapekeys from one, each masked by a vertex group of
the chosen pair (for example Left/Right). The derived keys are named
source+group and land directly after the source, which is reset to zero
weight with no mask.`,
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

			p, err := resolvePair(runner.Rosters(), pair, groups)
			if err != nil {
				return err
			}

			res, err := ops.SplitRequest{
				Object: object,
				Key:    key,
				GroupA: p.A,
				GroupB: p.B,
			}.Apply(sc)
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
	cmd.Flags().StringVarP(&key, "key", "k", "", "shapekey to split (default: the object's active key)")
	cmd.Flags().StringVarP(&pair, "pair", "p", "", `configured pair to split by, e.g. "Left/Right"`)
	cmd.Flags().StringVarP(&groups, "groups", "g", "", `explicit vertex group pair, e.g. "L_side,R_side"`)

	return cmd
}

// resolvePair picks the vertex-group pair for a split: an explicit
// --groups value wins, then a configured --pair, then the first configured
// pair.
func resolvePair(rs *roster.Set, pair, groups string) (roster.Pair, error) {
	if groups != "" {
		parts := strings.Split(groups, ",")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return roster.Pair{}, fmt.Errorf("invalid --groups %q: want two comma-separated names", groups)
		}
		return roster.Pair{A: strings.TrimSpace(parts[0]), B: strings.TrimSpace(parts[1])}, nil
	}
	if pair != "" {
		for _, p := range rs.Pairs {
			if p.String() == pair {
				return p, nil
			}
		}
		return roster.Pair{}, fmt.Errorf("no configured pair %q", pair)
	}
	if len(rs.Pairs) > 0 {
		return rs.Pairs[0], nil
	}
	return roster.Pair{}, fmt.Errorf("no split pairs configured: pass --groups or add a [[pair]] to the roster file")
}
