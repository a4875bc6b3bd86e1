package timeframe

import (
	"fmt"
	"time"
)

// Frame is a time-indexed table of named numeric columns. Rows are ordered
// by timestamp and columns keep a stable order, so iteration over a frame
// is deterministic. All transforming methods return derived copies and
// leave the receiver untouched.
type Frame struct {
	index   []time.Time
	columns []string
	data    map[string][]float64
}

// New creates a frame from a timestamp index and parallel column slices.
// names[i] labels values[i]; every column must have the same length as the
// index.
func New(index []time.Time, names []string, values [][]float64) (*Frame, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("timeframe: %d column names for %d value slices", len(names), len(values))
	}
	f := &Frame{
		index:   append([]time.Time(nil), index...),
		columns: make([]string, 0, len(names)),
		data:    make(map[string][]float64, len(names)),
	}
	for i, name := range names {
		if _, ok := f.data[name]; ok {
			return nil, fmt.Errorf("timeframe: duplicate column %q", name)
		}
		if len(values[i]) != len(index) {
			return nil, fmt.Errorf("timeframe: column %q has %d values for %d timestamps", name, len(values[i]), len(index))
		}
		f.columns = append(f.columns, name)
		f.data[name] = append([]float64(nil), values[i]...)
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the timestamp index. The returned slice must not be modified.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Columns returns the column names in their stable order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// HasColumn reports whether the frame contains a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the values of the named column. The returned slice must
// not be modified. The second return value is false if the column does not
// exist.
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.data[name]
	return vals, ok
}

// Select returns a new frame restricted to the given columns, in the given
// order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	values := make([][]float64, len(names))
	for i, name := range names {
		vals, ok := f.data[name]
		if !ok {
			return nil, fmt.Errorf("timeframe: no column %q", name)
		}
		values[i] = vals
	}
	return New(f.index, names, values)
}

// DropRow returns a new frame with row i removed.
func (f *Frame) DropRow(i int) (*Frame, error) {
	if i < 0 || i >= len(f.index) {
		return nil, fmt.Errorf("timeframe: row %d out of range [0,%d)", i, len(f.index))
	}
	index := make([]time.Time, 0, len(f.index)-1)
	index = append(index, f.index[:i]...)
	index = append(index, f.index[i+1:]...)

	values := make([][]float64, len(f.columns))
	for c, name := range f.columns {
		src := f.data[name]
		col := make([]float64, 0, len(src)-1)
		col = append(col, src[:i]...)
		col = append(col, src[i+1:]...)
		values[c] = col
	}
	return New(index, f.columns, values)
}

// WithColumn returns a new frame with the named column set to vals. An
// existing column is replaced in place; a new column is appended.
func (f *Frame) WithColumn(name string, vals []float64) (*Frame, error) {
	if len(vals) != len(f.index) {
		return nil, fmt.Errorf("timeframe: column %q has %d values for %d timestamps", name, len(vals), len(f.index))
	}
	out := f.Copy()
	if _, ok := out.data[name]; !ok {
		out.columns = append(out.columns, name)
	}
	out.data[name] = append([]float64(nil), vals...)
	return out, nil
}

// Copy creates a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		index:   append([]time.Time(nil), f.index...),
		columns: append([]string(nil), f.columns...),
		data:    make(map[string][]float64, len(f.data)),
	}
	for name, vals := range f.data {
		out.data[name] = append([]float64(nil), vals...)
	}
	return out
}
