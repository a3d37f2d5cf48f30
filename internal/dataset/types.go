// Package dataset defines the progress dataset, its JSON form, and the
// schema checks every loaded document must pass.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DateLayout is the wire format for row dates.
const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	// time.Parse is lenient about digit widths and normalizes overflow,
	// so require the round trip to reproduce the input exactly.
	if t.Format(DateLayout) != s {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t.UTC()}, nil
}

// Today returns the current date truncated to midnight UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// AddMonths returns the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{d.Time.AddDate(0, n, 0)}
}

// String renders the date in wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a strict YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Row is one dated observation: a multiplier per header, plus a hidden
// flag that excludes the row from chart rendering without discarding it.
type Row struct {
	Date   Date               `json:"date"`
	Values map[string]float64 `json:"values"`
	Hidden bool               `json:"hidden,omitempty"`
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	values := make(map[string]float64, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Row{Date: r.Date, Values: values, Hidden: r.Hidden}
}

// Dataset is the canonical tabular model: an ordered list of unique
// series names and date-ascending rows keyed by those names.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Headers: append([]string(nil), d.Headers...),
		Rows:    make([]Row, 0, len(d.Rows)),
	}
	for _, row := range d.Rows {
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

// Visible returns the rows not marked hidden, in order.
func (d *Dataset) Visible() []Row {
	var rows []Row
	for _, row := range d.Rows {
		if !row.Hidden {
			rows = append(rows, row)
		}
	}
	return rows
}

// HasHeader reports whether name is a declared header.
func (d *Dataset) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Marshal renders the dataset as indented JSON with a trailing newline.
func (d *Dataset) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the dataset to path.
func (d *Dataset) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}

// Load reads and validates a dataset file. On validation failure the
// returned error lists every violated field path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	d, result := Validate(data)
	if !result.Valid {
		return nil, fmt.Errorf("invalid dataset file %s: %w", path, result.Err())
	}
	return d, nil
}

// Default returns the built-in starter dataset used when no saved data
// exists yet.
func Default() *Dataset {
	return &Dataset{
		Headers: []string{"Frontier lab"},
		Rows: []Row{
			{Date: NewDate(2026, time.January, 1), Values: map[string]float64{"Frontier lab": 1}},
			{Date: NewDate(2026, time.April, 1), Values: map[string]float64{"Frontier lab": 1.1}},
			{Date: NewDate(2026, time.July, 1), Values: map[string]float64{"Frontier lab": 1.3}},
			{Date: NewDate(2026, time.October, 1), Values: map[string]float64{"Frontier lab": 1.6}},
			{Date: NewDate(2027, time.January, 1), Values: map[string]float64{"Frontier lab": 2}},
			{Date: NewDate(2027, time.April, 1), Values: map[string]float64{"Frontier lab": 3}},
			{Date: NewDate(2027, time.July, 1), Values: map[string]float64{"Frontier lab": 10}, Hidden: true},
		},
	}
}
