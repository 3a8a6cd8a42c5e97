// Package output formats query results as text.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
)

type Format string

const (
	TSV   Format = "tsv"
	Table Format = "table"
)

const Null = "null"

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case TSV, Table:
		return f, nil
	}
	return "", errors.E(errors.Invalid, "unknown output format %q", s)
}

// Writer is a runtime.Sink that prints one line per row.  Table output is
// aligned in groups of limit rows, each preceded by a header.
type Writer struct {
	writer io.Writer
	table  *tabwriter.Writer
	names  []string
	limit  int
	nline  int
	rows   int64
	fields []string
}

// NewWriter returns a Writer for format.  names supplies column headers for
// the table format and may be nil, in which case columns are numbered.
func NewWriter(w io.Writer, format Format, names []string) *Writer {
	out := &Writer{writer: w, names: names, limit: 1000}
	if format == Table {
		out.table = tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
		out.writer = out.table
	}
	return out
}

func (w *Writer) Rows() int64 {
	return w.rows
}

func (w *Writer) writeHeader(ncol int) error {
	w.fields = w.fields[:0]
	for i := 0; i < ncol; i++ {
		if i < len(w.names) {
			w.fields = append(w.fields, strings.ToUpper(w.names[i]))
		} else {
			w.fields = append(w.fields, "C"+strconv.Itoa(i))
		}
	}
	_, err := fmt.Fprintln(w.writer, strings.Join(w.fields, "\t"))
	return err
}

func (w *Writer) Write(cols []vector.Any, mask *vector.Mask) error {
	for k := 0; k < mask.Count(); k++ {
		if w.table != nil && w.nline%w.limit == 0 {
			if w.nline > 0 {
				if err := w.table.Flush(); err != nil {
					return err
				}
			}
			if err := w.writeHeader(len(cols)); err != nil {
				return err
			}
		}
		pos := mask.Position(k)
		w.fields = w.fields[:0]
		for _, col := range cols {
			w.fields = append(w.fields, Value(col, pos))
		}
		if _, err := fmt.Fprintln(w.writer, strings.Join(w.fields, "\t")); err != nil {
			return err
		}
		w.nline++
		w.rows++
	}
	return nil
}

// Flush writes any buffered table output.
func (w *Writer) Flush() error {
	if w.table != nil {
		return w.table.Flush()
	}
	return nil
}

// Value renders the value at pos of vec.
func Value(vec vector.Any, pos int) string {
	switch vec := vec.(type) {
	case *vector.Int:
		if vec.Nulls[pos] {
			return Null
		}
		return strconv.FormatInt(vec.Values[pos], 10)
	case *vector.Float:
		if vec.Nulls[pos] {
			return Null
		}
		return strconv.FormatFloat(vec.Values[pos], 'g', -1, 64)
	}
	errors.Panic(errors.Unimplemented, "format of %T", vec)
	return ""
}
