// Package timeframe provides time-indexed data frames for energy analysis.
//
// A Frame is a table of named numeric columns sharing a timestamp index,
// ordered by time. Frames are the unit of exchange between data loaders
// and the regression engine: loaders produce a frame at the measurement
// resolution, and the engine resamples it to the granularity under trial.
//
// # Building Frames
//
// Create a frame from parallel column slices:
//
//	frame, err := timeframe.New(index,
//	    []string{"use", "temperatureEquivalent"},
//	    [][]float64{use, temperature})
//
// Derive restricted or modified frames; the source is never mutated:
//
//	subset, _ := frame.Select("use", "HDD_16.5")
//	without, _ := frame.DropRow(3)
//	extended, _ := frame.WithColumn("weekend", weekend)
//
// # Resampling
//
// Aggregate a frame to a coarser granularity. Columns are summed by
// default; pass per-column overrides for intensive quantities:
//
//	monthly, err := timeframe.Resample(frame, timeframe.P1M,
//	    map[string]timeframe.Aggregation{"temperatureEquivalent": timeframe.AggMean})
//
// Weekly buckets start on Monday, monthly buckets on the first of the
// month. Sub-daily granularities truncate timestamps.
package timeframe
