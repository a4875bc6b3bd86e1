package timeframe

import (
	"fmt"
	"time"
)

// Aggregation names a per-column aggregation method used when resampling.
type Aggregation string

// Supported aggregation methods.
const (
	AggSum  Aggregation = "sum"
	AggMean Aggregation = "mean"
	AggMin  Aggregation = "min"
	AggMax  Aggregation = "max"
	AggLast Aggregation = "last"
)

// Resample aggregates the frame into buckets of the given granularity.
// Rows are grouped by the bucket start of their timestamp, preserving row
// order. Every column is summed by default; aggs overrides the method for
// individual columns.
func Resample(f *Frame, g Granularity, aggs map[string]Aggregation) (*Frame, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("timeframe: unsupported granularity %q", g)
	}
	for name, agg := range aggs {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("timeframe: aggregation for unknown column %q", name)
		}
		switch agg {
		case AggSum, AggMean, AggMin, AggMax, AggLast:
		default:
			return nil, fmt.Errorf("timeframe: unsupported aggregation %q for column %q", agg, name)
		}
	}

	// Group row indices per bucket, in first-seen order.
	var buckets []time.Time
	groups := make(map[time.Time][]int)
	for i, t := range f.index {
		b := g.BucketStart(t)
		if _, ok := groups[b]; !ok {
			buckets = append(buckets, b)
		}
		groups[b] = append(groups[b], i)
	}

	values := make([][]float64, len(f.columns))
	for c, name := range f.columns {
		agg := AggSum
		if a, ok := aggs[name]; ok {
			agg = a
		}
		src := f.data[name]
		col := make([]float64, len(buckets))
		for bi, b := range buckets {
			col[bi] = aggregate(src, groups[b], agg)
		}
		values[c] = col
	}
	return New(buckets, f.columns, values)
}

func aggregate(src []float64, rows []int, agg Aggregation) float64 {
	switch agg {
	case AggMean:
		sum := 0.0
		for _, i := range rows {
			sum += src[i]
		}
		return sum / float64(len(rows))
	case AggMin:
		v := src[rows[0]]
		for _, i := range rows[1:] {
			if src[i] < v {
				v = src[i]
			}
		}
		return v
	case AggMax:
		v := src[rows[0]]
		for _, i := range rows[1:] {
			if src[i] > v {
				v = src[i]
			}
		}
		return v
	case AggLast:
		return src[rows[len(rows)-1]]
	default: // AggSum
		sum := 0.0
		for _, i := range rows {
			sum += src[i]
		}
		return sum
	}
}
