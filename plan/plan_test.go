package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, s string) (op.Operator, []vector.Kind, error) {
	n, err := ParseString(s)
	require.NoError(t, err)
	b, err := NewBuilder(op.DefaultContext(), 0, 0)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b.Build(n)
}

func run(t *testing.T, s string) []nitro.Row {
	o, _, err := build(t, s)
	require.NoError(t, err)
	rows, err := runtime.Rows(o)
	require.NoError(t, err)
	return rows
}

const complexPlan = `
op: aggregate
aggs:
  - {name: min, column: 0}
  - {name: max, column: 0}
  - {name: sum, column: 0}
  - {name: count_all}
input:
  op: limit
  n: 5
  input:
    op: project
    exprs:
      - {fn: mul_const, inputs: [c1], arg: 2}
    outputs: [e0]
    input:
      op: filter
      column: 0
      cmp: lt
      value: 20
      input:
        op: generate
        rows: 50
        batch_size: 10
        columns:
          - sequence: 0
          - sequence: 100
`

func TestComplexPlan(t *testing.T) {
	assert.Equal(t, []nitro.Row{nitro.Ints(200, 208, 1020, 5)}, run(t, complexPlan))
}

func TestExplain(t *testing.T) {
	n, err := ParseString(complexPlan)
	require.NoError(t, err)
	expected := "" +
		"aggregate min(c0) max(c0) sum(c0) count_all(c0)\n" +
		"    limit n=5\n" +
		"        project e0=mul_const(c1, 2) outputs=[e0]\n" +
		"            filter c0 lt 20\n" +
		"                generate rows=50 columns=[sequence 0, sequence 100] batch_size=10\n"
	assert.Equal(t, expected, Explain(n))
}

func TestGroupedTopJoin(t *testing.T) {
	rows := run(t, `
op: top
column: 2
n: 2
input:
  op: grouped_aggregate
  column: 0
  aggs:
    - {name: first, column: 1}
    - {name: count_all}
    - {name: sum, column: 2}
  input:
    op: group
    column: 0
    input:
      op: join
      input:
        op: values
        values: [[1], [2], [null]]
      right:
        op: generate
        rows: 4
        columns:
          - sequence: 10
`)
	// Each key pairs with 10..13, so the sums are 46 for both 1 and 2.
	// The null key forms no group.
	assert.Equal(t, []nitro.Row{nitro.Ints(1, 4, 46), nitro.Ints(2, 4, 46)}, rows)
}

func TestFloatProject(t *testing.T) {
	o, kinds, err := build(t, `
op: project
exprs:
  - {fn: to_float, inputs: [c0]}
  - {fn: mul, inputs: [e0, e0]}
outputs: [c0, e1]
input:
  op: generate
  rows: 3
  columns:
    - sequence: 1
`)
	require.NoError(t, err)
	assert.Equal(t, []vector.Kind{vector.Int64, vector.Float64}, kinds)
	require.True(t, o.HasNext())
	o.Next()
	assert.Equal(t, []float64{1, 4, 9}, vector.AsFloat(o.Column(1)).Values[:3])
	require.NoError(t, o.Close())
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		plan string
		msg  string
	}{
		{"unknown op", "op: limt\n", `unknown operator "limt" (did you mean "limit"?)`},
		{"missing input", "op: limit\nn: 1\n", "missing input"},
		{"bad column", "op: top\ncolumn: 3\ninput: {op: generate, columns: [{sequence: 0}]}\n", "out of range"},
		{"bad accumulator", "op: aggregate\naggs: [{name: summ}]\ninput: {op: generate, columns: [{sequence: 0}]}\n", `(did you mean "sum"?)`},
		{"bad cmp", "op: filter\ncmp: lte\ninput: {op: generate, columns: [{sequence: 0}]}\n", `(did you mean "le"?)`},
		{"cycle", "op: project\nexprs: [{fn: neg, inputs: [e1]}, {fn: neg, inputs: [e0]}]\noutputs: [e0]\ninput: {op: generate, columns: [{sequence: 0}]}\n", "depends on itself"},
		{"bad ref", "op: project\nexprs: [{fn: neg, inputs: [x0]}]\noutputs: [e0]\ninput: {op: generate, columns: [{sequence: 0}]}\n", "bad reference"},
		{"bad range", "op: generate\ncolumns: [{range: [5, 1]}]\n", "range must be"},
		{"negative top", "op: top\nn: -1\ninput: {op: generate, columns: [{sequence: 0}]}\n", "overflow"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := build(t, c.plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseString("")
	assert.True(t, errors.Is(err, errors.Invalid))
	_, err = ParseString("op: limit\nbogus: 1\n")
	assert.True(t, errors.Is(err, errors.Invalid))
}

func TestArrowPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.arrow")
	f, err := os.Create(path)
	require.NoError(t, err)
	schema := arrow.NewSchema([]arrow.Field{{Name: "x", Type: arrow.PrimitiveTypes.Int64}}, nil)
	w := ipc.NewWriter(f, ipc.WithSchema(schema))
	rb := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	rb.Field(0).(*array.Int64Builder).AppendValues([]int64{5, 3, 9, 1}, nil)
	rec := rb.NewRecord()
	require.NoError(t, w.Write(rec))
	rec.Release()
	rb.Release()
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	n, err := ParseString("op: top\nn: 2\ninput: {op: arrow, path: " + path + "}\n")
	require.NoError(t, err)
	b, err := NewBuilder(op.DefaultContext(), 0, 0)
	require.NoError(t, err)
	defer b.Close()
	for k := 0; k < 2; k++ {
		o, _, err := b.Build(n)
		require.NoError(t, err)
		rows, err := runtime.Rows(o)
		require.NoError(t, err)
		assert.Equal(t, []nitro.Row{nitro.Ints(9), nitro.Ints(5)}, rows)
	}
	require.NoError(t, os.Remove(path))
	// The decoded stream is cached by path.
	o, _, err := b.Build(n)
	require.NoError(t, err)
	require.NoError(t, o.Close())
}
