package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Mutation operations. Every operation validates its inputs first and
// leaves the dataset untouched when it returns an error.

// AddRow appends a row dated three months after the last row, with the
// last row's values and hidden set. On an empty dataset the row is dated
// today with every header at 1.0 and stays visible.
func (d *Dataset) AddRow() {
	if len(d.Rows) == 0 {
		values := make(map[string]float64, len(d.Headers))
		for _, h := range d.Headers {
			values[h] = 1.0
		}
		d.Rows = append(d.Rows, Row{Date: Today(), Values: values})
		return
	}

	last := d.Rows[len(d.Rows)-1]
	row := last.Clone()
	row.Date = last.Date.AddMonths(3)
	row.Hidden = true
	d.Rows = append(d.Rows, row)
}

// AddColumn appends a new header and sets its value to 1.0 on every row.
func (d *Dataset) AddColumn(name string) error {
	if name == "" {
		return fmt.Errorf("header name must not be empty")
	}
	if d.HasHeader(name) {
		return fmt.Errorf("header %q already exists", name)
	}
	d.Headers = append(d.Headers, name)
	for i := range d.Rows {
		d.Rows[i].Values[name] = 1.0
	}
	return nil
}

// NextColumnName returns a series name not yet in use, for newly added
// columns.
func (d *Dataset) NextColumnName() string {
	for i := len(d.Headers) + 1; ; i++ {
		name := fmt.Sprintf("Series %d", i)
		if !d.HasHeader(name) {
			return name
		}
	}
}

// RemoveColumn deletes a header and its key from every row. The last
// remaining header cannot be removed.
func (d *Dataset) RemoveColumn(name string) error {
	if !d.HasHeader(name) {
		return fmt.Errorf("no header %q", name)
	}
	if len(d.Headers) == 1 {
		return fmt.Errorf("cannot remove the last header")
	}
	headers := d.Headers[:0]
	for _, h := range d.Headers {
		if h != name {
			headers = append(headers, h)
		}
	}
	d.Headers = headers
	for i := range d.Rows {
		delete(d.Rows[i].Values, name)
	}
	return nil
}

// RenameHeader renames a series and re-keys every row's values map.
// Renaming a header to itself is a no-op.
func (d *Dataset) RenameHeader(oldName, newName string) error {
	if !d.HasHeader(oldName) {
		return fmt.Errorf("no header %q", oldName)
	}
	if newName == "" {
		return fmt.Errorf("header name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if d.HasHeader(newName) {
		return fmt.Errorf("header %q already exists", newName)
	}
	for i, h := range d.Headers {
		if h == oldName {
			d.Headers[i] = newName
		}
	}
	for i := range d.Rows {
		if v, ok := d.Rows[i].Values[oldName]; ok {
			delete(d.Rows[i].Values, oldName)
			d.Rows[i].Values[newName] = v
		}
	}
	return nil
}

// UpdateValue parses a user-entered string and stores it as the value
// for header on row i. Rejects unparseable, non-finite, and negative
// input without mutating.
func (d *Dataset) UpdateValue(i int, header, text string) error {
	if err := d.checkRowIndex(i); err != nil {
		return err
	}
	if !d.HasHeader(header) {
		return fmt.Errorf("no header %q", header)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("value must be finite")
	}
	if v < 0 {
		return fmt.Errorf("value must be non-negative")
	}
	d.Rows[i].Values[header] = v
	return nil
}

// ShiftDate moves row i's date by months (positive or negative). The
// shift is rejected if the new date would collide with or cross an
// adjacent row's date.
func (d *Dataset) ShiftDate(i, months int) error {
	if err := d.checkRowIndex(i); err != nil {
		return err
	}
	shifted := d.Rows[i].Date.AddMonths(months)
	if i > 0 && !shifted.After(d.Rows[i-1].Date.Time) {
		return fmt.Errorf("date %s would not stay after previous row (%s)", shifted, d.Rows[i-1].Date)
	}
	if i < len(d.Rows)-1 && !shifted.Before(d.Rows[i+1].Date.Time) {
		return fmt.Errorf("date %s would not stay before next row (%s)", shifted, d.Rows[i+1].Date)
	}
	d.Rows[i].Date = shifted
	return nil
}

// RemoveRow deletes the row at position i.
func (d *Dataset) RemoveRow(i int) error {
	if err := d.checkRowIndex(i); err != nil {
		return err
	}
	d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
	return nil
}

// ToggleHidden flips a row's hidden flag.
func (d *Dataset) ToggleHidden(i int) error {
	if err := d.checkRowIndex(i); err != nil {
		return err
	}
	d.Rows[i].Hidden = !d.Rows[i].Hidden
	return nil
}

func (d *Dataset) checkRowIndex(i int) error {
	if i < 0 || i >= len(d.Rows) {
		return fmt.Errorf("no row %d", i)
	}
	return nil
}
