package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/helengibson/graphTPP-sub002/internal/property"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kinases = filepath.Join("..", "test", "input", "kinases.fa")

// run executes a fresh command tree with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func Test_properties(t *testing.T) {
	out, err := run(t, "properties")
	require.NoError(t, err)

	for _, p := range property.Default.Properties() {
		assert.Contains(t, out, p.Name())
	}
	assert.Contains(t, out, property.Identity)
	assert.Contains(t, out, property.All)
}

func Test_encode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		first    string
		last     string
		colCount int
	}{
		{
			"hydropathy with classes",
			[]string{"-p", "hydropathy", "-d", "|", "-c", "1"},
			"label,hydropathy_1,",
			",class",
			1 + 19 + 1,
		},
		{
			"identity without classes",
			[]string{"-p", "identity", "-g", "global"},
			"label,identity_1_",
			"",
			1 + 19*20,
		},
		{
			"clustal input",
			[]string{"-p", "weight", "-d", "|", "-c", "1", "-i", filepath.Join("..", "test", "input", "kinases.aln")},
			"label,weight_1,",
			",class",
			1 + 19 + 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.csv")
			args := append([]string{"encode", "-o", out}, tt.args...)
			if !strings.Contains(strings.Join(tt.args, " "), "-i ") {
				args = append(args, kinases)
			}

			_, err := run(t, args...)
			require.NoError(t, err)

			contents, err := os.ReadFile(out)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
			require.Len(t, lines, 9)

			header := lines[0]
			assert.True(t, strings.HasPrefix(header, tt.first), header)
			if tt.last != "" {
				assert.True(t, strings.HasSuffix(header, tt.last), header)
			}
			assert.Len(t, strings.Split(header, ","), tt.colCount)
			assert.True(t, strings.HasPrefix(lines[1], "K1|kinase,"))
		})
	}
}

func Test_encode_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown property", []string{"encode", "-p", "sweetness", kinases}, property.ErrUnknownProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("bad gap strategy", func(t *testing.T) {
		_, err := run(t, "encode", "-g", "nearest", kinases)
		assert.Error(t, err)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := run(t, "encode", filepath.Join(t.TempDir(), "absent.fa"))
		assert.Error(t, err)
	})
}

func Test_rank(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ranking.json")
	stdout, err := run(t, "rank", kinases, "-d", "|", "-c", "1", "-s", "5", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "hydropathy_")

	contents, err := os.ReadFile(out)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(contents, &report))

	_, err = uuid.Parse(report.Run)
	assert.NoError(t, err)
	assert.Equal(t, kinases, report.Input)
	assert.Equal(t, "hydropathy", report.Property)
	assert.Contains(t, []string{rank.Converged.String(), rank.EpochLimitReached.String()}, report.Termination)
	require.Len(t, report.Attributes, 5)

	for i, a := range report.Attributes {
		assert.True(t, strings.HasPrefix(a.Name, "hydropathy_"), a.Name)
		assert.GreaterOrEqual(t, a.Index, 1)
		assert.LessOrEqual(t, a.Index, 19)
		if i > 0 {
			assert.GreaterOrEqual(t, report.Attributes[i-1].Score, a.Score)
		}
	}
}

func Test_rank_preselect_live(t *testing.T) {
	stdout, err := run(t, "rank", kinases, "-d", "|", "-c", "1", "-n", "4", "--live", "--objective", "centroid")
	require.NoError(t, err)

	// header plus one line per retained attribute
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 1+4)
}

func Test_rank_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no classes", []string{"rank", kinases}},
		{"unknown objective", []string{"rank", kinases, "-d", "|", "-c", "1", "--objective", "variance"}},
		{"too many dimensions", []string{"rank", kinases, "-d", "|", "-c", "1", "-n", "2", "--dims", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, rank.ErrConfiguration)
		})
	}
}

func Test_docs(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "docs", dir)
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "graphtpp_rank.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "---\nlayout: default\ntitle: rank\nparent: graphtpp\n"))
}

func Test_linkHandler(t *testing.T) {
	assert.Equal(t, "/", linkHandler("graphtpp.md"))
	assert.Equal(t, "graphtpp_encode", linkHandler("graphtpp_encode.md"))
	assert.Equal(t, "", filePrepender("graphtpp_unknown.md"))
}
