// Package plan describes operator pipelines in YAML and builds them into
// operator trees.
//
// A plan is a tree of Nodes.  Each node names its operator in the op field
// and reads its rows from input (and, for a join, also from right).
//
//	op: top
//	column: 1
//	n: 3
//	input:
//	  op: generate
//	  rows: 100
//	  columns:
//	    - sequence: 0
//	    - range: [0, 7]
package plan

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/op/project"
	"gopkg.in/yaml.v3"
)

const (
	OpGenerate         = "generate"
	OpValues           = "values"
	OpArrow            = "arrow"
	OpFilter           = "filter"
	OpLimit            = "limit"
	OpProject          = "project"
	OpGroup            = "group"
	OpAggregate        = "aggregate"
	OpGroupedAggregate = "grouped_aggregate"
	OpJoin             = "join"
	OpTop              = "top"
)

var ops = []string{
	OpGenerate, OpValues, OpArrow, OpFilter, OpLimit, OpProject, OpGroup,
	OpAggregate, OpGroupedAggregate, OpJoin, OpTop,
}

type Node struct {
	Op    string `yaml:"op"`
	Input *Node  `yaml:"input,omitempty"`
	// Right is the inner side of a join.
	Right *Node `yaml:"right,omitempty"`

	// generate, arrow
	Rows      int64       `yaml:"rows,omitempty"`
	BatchSize int         `yaml:"batch_size,omitempty"`
	Columns   []Generator `yaml:"columns,omitempty"`
	Path      string      `yaml:"path,omitempty"`

	// values
	Width  int        `yaml:"width,omitempty"`
	Values [][]*int64 `yaml:"values,omitempty"`

	// filter, group, grouped_aggregate, top
	Column int `yaml:"column,omitempty"`
	// filter compares column to Value with Cmp.
	Cmp   string  `yaml:"cmp,omitempty"`
	Value float64 `yaml:"value,omitempty"`

	// limit, top
	N int64 `yaml:"n,omitempty"`

	// project
	Exprs   []Expr `yaml:"exprs,omitempty"`
	Outputs []Ref  `yaml:"outputs,omitempty"`

	// aggregate, grouped_aggregate
	Aggs []Agg `yaml:"aggs,omitempty"`
}

// Generator describes one generated column.  Exactly one field is set;
// when none is, the column is all nulls.
type Generator struct {
	Sequence *int64  `yaml:"sequence,omitempty"`
	Range    []int64 `yaml:"range,omitempty"`
	Constant *int64  `yaml:"constant,omitempty"`
}

// Expr is one function invocation of a projection.
type Expr struct {
	Fn     string  `yaml:"fn"`
	Inputs []Ref   `yaml:"inputs"`
	Arg    float64 `yaml:"arg,omitempty"`
}

type Agg struct {
	Name   string `yaml:"name"`
	Column int    `yaml:"column,omitempty"`
}

// Ref names a value in a projection: "cN" is input column N and "eN" is
// the output of expression N.
type Ref string

func (r Ref) Resolve() (int, error) {
	s := string(r)
	if len(s) >= 2 {
		n, err := strconv.Atoi(s[1:])
		if err == nil && n >= 0 {
			switch s[0] {
			case 'c':
				return project.Source(n), nil
			case 'e':
				return n, nil
			}
		}
	}
	return 0, errors.E(errors.Invalid, "bad reference %q (must be cN or eN)", s)
}

func Parse(r io.Reader) (*Node, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var n Node
	if err := dec.Decode(&n); err != nil {
		if err == io.EOF {
			return nil, errors.E(errors.Invalid, "empty plan")
		}
		return nil, errors.E(errors.Invalid, err)
	}
	return &n, nil
}

func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func Load(path string) (*Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(b))
}

// Walk calls visit for n and its inputs, depth first, stopping at the first
// error.
func (n *Node) Walk(visit func(*Node, int) error) error {
	return n.walk(visit, 0)
}

func (n *Node) walk(visit func(*Node, int) error, depth int) error {
	if err := visit(n, depth); err != nil {
		return err
	}
	for _, child := range []*Node{n.Input, n.Right} {
		if child != nil {
			if err := child.walk(visit, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
