package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/helengibson/graphTPP-sub002/config"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
	"github.com/spf13/cobra"
)

// newRankCmd is for ranking an alignment's encoded attributes
func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [alignment]",
		Short: "Rank the encoded attributes of an alignment by class separation",
		Long: `Encode an alignment, optionally keep the attributes with the highest
information gain, then search for the projection that best separates the
sequences' classes. Attributes are ranked by the norm of their row in the
final projection.

Labels must carry a class: set --class-delimiter and --class-piece so that
">K1|kinase" splits into the class "kinase". Interrupting a run (Ctrl-C)
stops the optimizer and ranks with the projection reached so far.`,
		Example:                    "  graphtpp rank kinases.fa -d '|' -c 1 -n 20 -s 10 -o ranking.json",
		Args:                       cobra.MaximumNArgs(1),
		SuggestionsMinimumDistance: 4,
		PreRunE:                    bindFlags,
		RunE:                       runRank,
	}

	addEncodeFlags(cmd)
	addRankFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "output JSON report")
	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	start := time.Now()

	in, err := inputPath(cmd, args)
	if err != nil {
		return err
	}

	c := config.New()
	t, err := loadTable(c, in)
	if err != nil {
		return err
	}

	opts := c.RankOptions()
	if c.Rank.Live {
		opts.LiveView = &liveLog{out: stderr}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := rank.New(c.Optimizer.LearningRate).Rank(ctx, t, opts)
	if err != nil {
		return err
	}

	report, err := newReport(in, c.Encode.Property, t, res, time.Since(start).Seconds())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintf(w, "rank\tattribute\tscore\n")
	for i, a := range report.Attributes {
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", i+1, a.Name, a.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stderr.Printf("%s after %d epochs", report.Termination, report.Epochs)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if _, err := writeJSON(out, report); err != nil {
			return err
		}
	}
	return nil
}
