package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/helengibson/graphTPP-sub002/config"
	"github.com/helengibson/graphTPP-sub002/internal/alignment"
	"github.com/helengibson/graphTPP-sub002/internal/encode"
	"github.com/helengibson/graphTPP-sub002/internal/pursuit"
	"github.com/helengibson/graphTPP-sub002/internal/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	propertyHelp = "residue property to encode with (see 'graphtpp properties')"
	gapHelp      = "gap strategy: 'neighbour' (mean of the nearest residues) or 'global' (property mean)"
)

// addEncodeFlags adds the flags shared by every command that builds a feature table.
func addEncodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("in", "i", "", "input alignment (FASTA or CLUSTAL)")
	cmd.Flags().StringP("property", "p", "hydropathy", propertyHelp)
	cmd.Flags().StringP("gap", "g", encode.NeighbourMean.String(), gapHelp)
	cmd.Flags().StringP("class-delimiter", "d", "", "split labels on this to find the class (no class if empty)")
	cmd.Flags().IntP("class-piece", "c", 0, "0-based index of the class token in a split label")
	cmd.Flags().Bool("strict", false, "fail when records differ in length instead of dropping values")
}

// addRankFlags adds the ranking and optimizer flags.
func addRankFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("preselect", "n", 0, "keep this many attributes by information gain before optimizing (0 is off)")
	cmd.Flags().Int("dims", 2, "projection output dimensions")
	cmd.Flags().Float64("convergence", 0.001, "relative projection change under which the optimizer has converged")
	cmd.Flags().IntP("epochs", "e", 100, "maximum optimizer epochs")
	cmd.Flags().IntP("select", "s", 0, "number of attributes to report (0 reports all)")
	cmd.Flags().Bool("live", false, "log the 2-D projection as it changes")
	cmd.Flags().String("objective", pursuit.Separation, "class separation index: separation or centroid")
	cmd.Flags().Float64("learning-rate", pursuit.DefaultLearningRate, "optimizer step size")
	cmd.Flags().Int64("seed", 1, "seed for the starting projection")
}

// flagKeys maps flag names to their settings keys
var flagKeys = map[string]string{
	"property":        "encode.property",
	"gap":             "encode.gap",
	"class-delimiter": "encode.class-delimiter",
	"class-piece":     "encode.class-piece",
	"strict":          "encode.strict",
	"preselect":       "rank.preselect",
	"dims":            "rank.dims",
	"convergence":     "rank.convergence",
	"epochs":          "rank.epochs",
	"select":          "rank.select",
	"live":            "rank.live",
	"objective":       "rank.objective",
	"learning-rate":   "optimizer.learning-rate",
	"seed":            "optimizer.seed",
}

// bindFlags binds the flags of the command being run to viper. It happens at
// run time since several commands share flag names.
func bindFlags(cmd *cobra.Command, args []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// inputPath is the first argument, else --in, else the first alignment file
// in the current directory.
func inputPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if in, err := cmd.Flags().GetString("in"); err == nil && in != "" {
		return in, nil
	}
	return guessInput()
}

// guessInput returns the first alignment file in the current directory. Is used
// if the user hasn't specified an input file.
func guessInput() (string, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".fa", ".fasta", ".aln", ".clustal":
			return entry.Name(), nil
		}
	}
	return "", fmt.Errorf("no input alignment given and none found in the current directory")
}

// loadTable reads the alignment at in and builds its feature table.
func loadTable(c *config.Config, in string) (*table.Table, error) {
	records, err := alignment.Read(in)
	if err != nil {
		return nil, err
	}
	if c.Encode.Strict {
		if err := alignment.CheckLengths(records); err != nil {
			return nil, err
		}
	}

	p, err := c.Property()
	if err != nil {
		return nil, err
	}
	gap, err := c.GapStrategy()
	if err != nil {
		return nil, err
	}

	return table.Build(records, p, gap, c.BuildOptions())
}
