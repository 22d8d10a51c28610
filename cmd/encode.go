package cmd

import (
	"fmt"
	"os"

	"github.com/helengibson/graphTPP-sub002/config"
	"github.com/spf13/cobra"
)

// newEncodeCmd is for turning an alignment into a feature table
func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [alignment]",
		Short: "Encode an alignment as a table of numeric features (CSV)",
		Long: `Encode every aligned sequence as numbers, one block of values per position.

A scalar property gives one column per position, 'identity' gives twenty,
and 'all' concatenates every scalar property (all positions of the first
property, then all positions of the next). Gaps are filled from the nearest
residues on either side ('neighbour') or with the property's mean ('global').`,
		Example:                    "  graphtpp encode kinases.fa -p hydropathy -d '|' -c 1 -o kinases.csv",
		Args:                       cobra.MaximumNArgs(1),
		SuggestionsMinimumDistance: 4,
		PreRunE:                    bindFlags,
		RunE:                       runEncode,
	}

	addEncodeFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "output CSV file (default stdout)")
	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	in, err := inputPath(cmd, args)
	if err != nil {
		return err
	}

	c := config.New()
	t, err := loadTable(c, in)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return t.WriteCSV(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write the output: %w", err)
	}
	return f.Close()
}
