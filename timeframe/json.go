package timeframe

import (
	"encoding/json"
	"time"
)

// frameJSON is the wire form of a Frame: the timestamp index, the column
// order, and the values per column.
type frameJSON struct {
	Index   []time.Time          `json:"index"`
	Columns []string             `json:"columns"`
	Data    map[string][]float64 `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (f *Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameJSON{
		Index:   f.index,
		Columns: f.columns,
		Data:    f.data,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Frame) UnmarshalJSON(b []byte) error {
	var raw frameJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	values := make([][]float64, len(raw.Columns))
	for i, name := range raw.Columns {
		values[i] = raw.Data[name]
	}
	parsed, err := New(raw.Index, raw.Columns, values)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
