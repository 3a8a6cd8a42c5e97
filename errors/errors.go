// Package errors classifies the faults raised while executing a pipeline.
//
// Operators run on a hot path that does not return errors.  When an operator
// detects a condition that makes the rest of the query meaningless (a call to
// Next past exhaustion, a vector of the wrong physical type, a count that no
// longer fits in an int) it calls Panic with an *Error.  The execution
// boundary (see runtime.Query) uses Recover to turn that panic back into an
// ordinary error.  Panics that do not carry an *Error are not engine faults
// and are re-raised.
package errors

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
)

// A Kind represents a class of fault.
type Kind int

const (
	Other Kind = iota
	Invalid
	IllegalState
	TypeMismatch
	Overflow
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case Invalid:
		return "invalid argument"
	case IllegalState:
		return "illegal state"
	case TypeMismatch:
		return "type mismatch"
	case Overflow:
		return "overflow"
	case Unimplemented:
		return "not implemented"
	}
	return "unknown error kind"
}

type Error struct {
	Kind Kind
	Err  error
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

func (e *Error) Error() string {
	b := &bytes.Buffer{}
	if e.Kind != Other {
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an error from any mix of a Kind, an existing error, and a format
// string with optional arguments (including %w).  The format string must be
// the last of these when present.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args to errors.E")
	}
	e := &Error{}
	for i, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.Err = arg
		case string:
			e.Err = fmt.Errorf(arg, args[i+1:]...)
			return e
		default:
			_, file, line, _ := runtime.Caller(1)
			return fmt.Errorf("unknown type %T value %v in errors.E call at %v:%v", arg, arg, file, line)
		}
	}
	return e
}

// Panic raises the fault described by args.  See E.
func Panic(args ...interface{}) {
	panic(E(args...))
}

// Recover converts a fault raised by Panic into an error stored in *errp.
// It must be called directly by a deferred statement.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*Error); ok {
		*errp = err
		return
	}
	panic(r)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
