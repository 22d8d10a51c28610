package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/helengibson/graphTPP-sub002/internal/property"
	"github.com/spf13/cobra"
)

// newPropertiesCmd lists the residue properties available for encoding
func newPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "properties",
		Short:   "List the residue properties an alignment can be encoded with",
		Aliases: []string{"props"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.TabIndent)
			fmt.Fprintf(w, "name\tkind\twidth\n")
			for _, p := range property.Default.Properties() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", p.Name(), p.Kind(), p.Width())
			}
			return w.Flush()
		},
	}
}
