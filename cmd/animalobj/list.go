package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/animalobj/internal/catalogue"
	"github.com/Faultbox/animalobj/internal/creature"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list [ID|pattern...]",
		Aliases: []string{"ls"},
		Short:   "List catalogue templates",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalogue()
			if err != nil {
				return err
			}
			ids, _, err := catalogue.Select(cat, args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBODY\tHEAD\tTAIL\tDECO\tLEGS\tOBJECTS")
			for _, id := range ids {
				t, err := cat.Lookup(id)
				if err != nil {
					fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t%v\n", id, err)
					continue
				}
				legs := "-"
				if t.Legs != nil {
					legs = fmt.Sprintf("%dx4", len(t.Legs.Blocks))
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%d\n",
					t.ID, t.DisplayName(),
					len(t.Blocks(creature.GroupBody)),
					len(t.Blocks(creature.GroupHead)),
					len(t.Blocks(creature.GroupTail)),
					len(t.Blocks(creature.GroupDecoration)),
					legs, t.InstanceCount())
			}
			return w.Flush()
		},
	}
}
