package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
	"github.com/helengibson/graphTPP-sub002/internal/table"
)

// RankedAttribute is a single attribute in the ranking report.
type RankedAttribute struct {
	// Index of the column in the encoded table
	Index int `json:"index"`

	// Name of the column, ex: "hydropathy_12"
	Name string `json:"name"`

	// Score is the attribute's weight in the final projection
	Score float64 `json:"score"`
}

// Report is the result of a ranking run.
type Report struct {
	// Run identifies this run
	Run string `json:"run"`

	// Input alignment's path
	Input string `json:"input"`

	// Property the alignment was encoded with
	Property string `json:"property"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Epochs the optimizer ran for
	Epochs int `json:"epochs"`

	// Termination is why the optimizer stopped
	Termination string `json:"termination"`

	// Attributes, best first
	Attributes []RankedAttribute `json:"attributes"`
}

// newReport names the ranked attributes of res after t's columns.
func newReport(in, property string, t *table.Table, res *rank.Result, seconds float64) (Report, error) {
	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	now := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(),
	)

	attrs := make([]RankedAttribute, len(res.Attributes))
	for i, a := range res.Attributes {
		score, err := strconv.ParseFloat(fmt.Sprintf("%.6f", a.Score), 64)
		if err != nil {
			return Report{}, err
		}
		attrs[i] = RankedAttribute{
			Index: a.Index,
			Name:  t.Attribute(a.Index).Name,
			Score: score,
		}
	}

	return Report{
		Run:         uuid.NewString(),
		Input:       in,
		Property:    property,
		Time:        stamp,
		Execution:   seconds,
		Epochs:      res.Epochs,
		Termination: res.Termination.String(),
		Attributes:  attrs,
	}, nil
}

// writeJSON serializes the report to filename.
func writeJSON(filename string, r Report) (output []byte, err error) {
	output, err = json.MarshalIndent(r, "", "  ")
	if err != nil {
		return output, fmt.Errorf("failed to serialize output: %v", err)
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return output, fmt.Errorf("failed to write the output: %v", err)
	}

	return output, nil
}
