package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/nitro/config"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const topPlan = `
op: top
column: 1
n: 3
input:
  op: generate
  rows: 20
  batch_size: 6
  columns:
    - sequence: 0
    - range: [0, 7]
`

func execute(t *testing.T, conf config.Config, planText string) (string, error) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(planText), 0644))
	var out bytes.Buffer
	err := Execute(context.Background(), Options{
		Config: conf,
		Logger: zaptest.NewLogger(t),
		Plan:   path,
		Format: output.TSV,
		Out:    &out,
	})
	return out.String(), err
}

func TestExecute(t *testing.T) {
	out, err := execute(t, config.Default(), topPlan)
	require.NoError(t, err)
	assert.Equal(t, "6\t6\n13\t6\n5\t5\n", out)
}

func TestExecuteMetrics(t *testing.T) {
	conf := config.Default()
	conf.Metrics = true
	out, err := execute(t, conf, topPlan)
	require.NoError(t, err)
	assert.Contains(t, out, `nitro_alloc_bytes_total{context="generator#1"}`)
	assert.Contains(t, out, `nitro_alloc_peak_bytes{context="top#1"} 54`)
}

func TestExecuteMemoryLimit(t *testing.T) {
	conf := config.Default()
	conf.MemoryLimit = 100
	_, err := execute(t, conf, topPlan)
	assert.True(t, errors.Is(err, errors.Overflow))
}

func TestExecuteBadPlan(t *testing.T) {
	_, err := execute(t, config.Default(), "op: nope\n")
	assert.ErrorContains(t, err, `unknown operator "nope"`)
}
