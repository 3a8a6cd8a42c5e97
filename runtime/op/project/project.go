// Package project implements an operator that computes its columns from the
// columns of its parent by evaluating a graph of function invocations.
//
// A reference to a value is an int.  A non-negative reference r names the
// output of invocation r.  A negative reference r names column -(r+1) of the
// parent, so -1 is the parent's first column.  Invocations are evaluated on
// demand when an output that depends on them is requested, and each is
// evaluated at most once per batch.
package project

import (
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/expr/function"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

// Source returns the reference to column col of the parent.
func Source(col int) int {
	return -(col + 1)
}

type Invocation struct {
	Function function.Function
	Inputs   []int
	// Kind is the kind of the vector Function writes.
	Kind vector.Kind
}

type Execution struct {
	Invocations []Invocation
	// Outputs lists the reference of each output column.
	Outputs []int
}

// Direct returns the execution that applies fns[i] to parent column
// inputs[i] to compute output column i.
func Direct(kind vector.Kind, inputs []int, fns ...function.Function) Execution {
	var exec Execution
	for i, fn := range fns {
		exec.Invocations = append(exec.Invocations, Invocation{
			Function: fn,
			Inputs:   []int{Source(inputs[i])},
			Kind:     kind,
		})
		exec.Outputs = append(exec.Outputs, i)
	}
	return exec
}

type Op struct {
	octx    *op.Context
	actx    alloc.Context
	parent  op.Operator
	exec    Execution
	results []vector.Any
	filled  []bool
	args    [][]vector.Any
	mask    *vector.Mask
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, parent op.Operator, exec Execution) (*Op, error) {
	if err := validate(exec, parent.ColumnCount()); err != nil {
		return nil, err
	}
	args := make([][]vector.Any, len(exec.Invocations))
	for i, inv := range exec.Invocations {
		args[i] = make([]vector.Any, len(inv.Inputs))
	}
	octx.Logger.Debug("project",
		zap.Int("invocations", len(exec.Invocations)),
		zap.Int("outputs", len(exec.Outputs)))
	return &Op{
		octx:    octx,
		actx:    octx.AllocContext("project"),
		parent:  parent,
		exec:    exec,
		results: make([]vector.Any, len(exec.Invocations)),
		filled:  make([]bool, len(exec.Invocations)),
		args:    args,
	}, nil
}

func validate(exec Execution, width int) error {
	check := func(where string, ref int) error {
		if ref >= len(exec.Invocations) {
			return errors.E(errors.Invalid, "project: %s refers to invocation %d of %d", where, ref, len(exec.Invocations))
		}
		if ref < 0 && -(ref+1) >= width {
			return errors.E(errors.Invalid, "project: %s refers to column %d of %d", where, -(ref + 1), width)
		}
		return nil
	}
	for i, inv := range exec.Invocations {
		if inv.Function == nil {
			return errors.E(errors.Invalid, "project: invocation %d has no function", i)
		}
		for _, ref := range inv.Inputs {
			if err := check("invocation", ref); err != nil {
				return err
			}
		}
	}
	for _, ref := range exec.Outputs {
		if err := check("output", ref); err != nil {
			return err
		}
	}
	// Depth-first search for a back edge.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(exec.Invocations))
	var visit func(int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return errors.E(errors.Invalid, "project: invocation %d depends on itself", i)
		case done:
			return nil
		}
		state[i] = visiting
		for _, ref := range exec.Invocations[i].Inputs {
			if ref >= 0 {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		state[i] = done
		return nil
	}
	for i := range exec.Invocations {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

func (o *Op) ColumnCount() int {
	return len(o.exec.Outputs)
}

func (o *Op) HasNext() bool {
	return o.parent.HasNext()
}

func (o *Op) Next() *vector.Mask {
	if !o.parent.HasNext() {
		op.Exhausted("project")
	}
	for i := range o.filled {
		o.filled[i] = false
	}
	o.mask = o.parent.Next()
	return o.mask
}

func (o *Op) Constrain(mask *vector.Mask) {
	o.mask = mask
	o.parent.Constrain(mask)
}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("project", o, i)
	return o.eval(o.exec.Outputs[i])
}

func (o *Op) eval(ref int) vector.Any {
	if ref < 0 {
		return o.parent.Column(-(ref + 1))
	}
	if o.filled[ref] {
		return o.results[ref]
	}
	inv := o.exec.Invocations[ref]
	size := o.mask.MaxPosition() + 1
	o.results[ref] = o.octx.Alloc.Reallocate(o.actx, o.results[ref], inv.Kind, size)
	if size > 0 {
		args := o.args[ref]
		for k, in := range inv.Inputs {
			args[k] = o.eval(in)
		}
		inv.Function(o.results[ref], args, o.mask)
	}
	o.filled[ref] = true
	return o.results[ref]
}

func (o *Op) Close() error {
	err := o.parent.Close()
	o.octx.Alloc.Release(o.actx)
	return err
}
