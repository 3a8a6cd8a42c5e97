package plan

import (
	"fmt"
	"strings"

	"github.com/kr/text"
)

// Explain renders n as an indented tree, one operator per line, with the
// inputs of each operator indented beneath it.
func Explain(n *Node) string {
	var b strings.Builder
	b.WriteString(describe(n))
	b.WriteByte('\n')
	for _, child := range []*Node{n.Input, n.Right} {
		if child != nil {
			b.WriteString(text.Indent(Explain(child), "    "))
		}
	}
	return b.String()
}

func describe(n *Node) string {
	args := []string{n.Op}
	switch n.Op {
	case OpGenerate:
		var cols []string
		for _, g := range n.Columns {
			cols = append(cols, g.String())
		}
		args = append(args, fmt.Sprintf("rows=%d", n.Rows), "columns=["+strings.Join(cols, ", ")+"]")
	case OpValues:
		args = append(args, fmt.Sprintf("rows=%d", len(n.Values)))
	case OpArrow:
		args = append(args, fmt.Sprintf("path=%q", n.Path))
	case OpFilter:
		args = append(args, fmt.Sprintf("c%d %s %v", n.Column, n.Cmp, n.Value))
	case OpLimit:
		args = append(args, fmt.Sprintf("n=%d", n.N))
	case OpTop:
		args = append(args, fmt.Sprintf("column=%d n=%d", n.Column, n.N))
	case OpProject:
		var exprs []string
		for k, e := range n.Exprs {
			exprs = append(exprs, fmt.Sprintf("e%d=%s", k, e))
		}
		var outs []string
		for _, r := range n.Outputs {
			outs = append(outs, string(r))
		}
		args = append(args, strings.Join(exprs, " "), "outputs=["+strings.Join(outs, ", ")+"]")
	case OpGroup:
		args = append(args, fmt.Sprintf("column=%d", n.Column))
	case OpAggregate, OpGroupedAggregate:
		if n.Op == OpGroupedAggregate {
			args = append(args, fmt.Sprintf("column=%d", n.Column))
		}
		var aggs []string
		for _, a := range n.Aggs {
			aggs = append(aggs, fmt.Sprintf("%s(c%d)", a.Name, a.Column))
		}
		args = append(args, strings.Join(aggs, " "))
	}
	if n.BatchSize > 0 {
		args = append(args, fmt.Sprintf("batch_size=%d", n.BatchSize))
	}
	return strings.Join(args, " ")
}

func (g Generator) String() string {
	switch {
	case g.Sequence != nil:
		return fmt.Sprintf("sequence %d", *g.Sequence)
	case g.Range != nil:
		return fmt.Sprintf("range %v", g.Range)
	case g.Constant != nil:
		return fmt.Sprintf("constant %d", *g.Constant)
	}
	return "null"
}

func (e Expr) String() string {
	var in []string
	for _, r := range e.Inputs {
		in = append(in, string(r))
	}
	s := e.Fn + "(" + strings.Join(in, ", ")
	if strings.HasSuffix(e.Fn, "_const") {
		s += fmt.Sprintf(", %v", e.Arg)
	}
	return s + ")"
}
