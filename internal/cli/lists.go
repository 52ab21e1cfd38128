package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// listsCommand creates the "lists" command.
func (c *CLI) listsCommand() *cobra.Command {
	var showKeys bool

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the configured expected lists and split pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters, err := c.loadRosters()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Expected lists"))
			for _, l := range rosters.Lists {
				printKeyValue(l.Name, fmt.Sprintf("%d keys", len(l.Keys)))
				if showKeys {
					printDetail("%s", strings.Join(l.Keys, ", "))
				}
			}

			fmt.Println()
			fmt.Println(StyleTitle.Render("Split pairs"))
			for _, p := range rosters.Pairs {
				printDetail("%s", p.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showKeys, "keys", false, "show each list's key names")

	return cmd
}
