package dataset

import (
	"testing"
	"time"
)

func singleHeaderDataset() *Dataset {
	return &Dataset{
		Headers: []string{"A"},
		Rows: []Row{
			{Date: NewDate(2027, time.October, 14), Values: map[string]float64{"A": 1}},
		},
	}
}

func TestAddRow(t *testing.T) {
	d := singleHeaderDataset()
	d.AddRow()

	if len(d.Rows) != 2 {
		t.Fatalf("Rows: got %d, want 2", len(d.Rows))
	}
	added := d.Rows[1]
	if added.Date.String() != "2028-01-14" {
		t.Errorf("date: got %s, want 2028-01-14", added.Date)
	}
	if added.Values["A"] != 1 {
		t.Errorf("values: got %v, want copy of last row", added.Values)
	}
	if !added.Hidden {
		t.Error("appended row should be hidden by default")
	}

	// The copied values map must not alias the source row.
	added.Values["A"] = 50
	if d.Rows[0].Values["A"] != 1 {
		t.Error("AddRow shares the values map with the last row")
	}
}

func TestAddRowEmptyDataset(t *testing.T) {
	d := &Dataset{Headers: []string{"A", "B"}}
	d.AddRow()

	if len(d.Rows) != 1 {
		t.Fatalf("Rows: got %d, want 1", len(d.Rows))
	}
	row := d.Rows[0]
	if row.Hidden {
		t.Error("first row should stay visible")
	}
	if row.Values["A"] != 1.0 || row.Values["B"] != 1.0 {
		t.Errorf("values: got %v, want 1.0 per header", row.Values)
	}
	if row.Date.String() != Today().String() {
		t.Errorf("date: got %s, want today", row.Date)
	}
}

func TestAddColumn(t *testing.T) {
	d := singleHeaderDataset()

	if err := d.AddColumn("B"); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if d.Rows[0].Values["B"] != 1.0 {
		t.Errorf("new column value: got %v, want 1.0", d.Rows[0].Values["B"])
	}

	if err := d.AddColumn("A"); err == nil {
		t.Error("AddColumn accepted a duplicate header")
	}
	if err := d.AddColumn(""); err == nil {
		t.Error("AddColumn accepted an empty header")
	}
}

func TestRemoveColumn(t *testing.T) {
	d := &Dataset{
		Headers: []string{"A", "B"},
		Rows: []Row{
			{Date: NewDate(2027, time.January, 1), Values: map[string]float64{"A": 1, "B": 2}},
		},
	}

	if err := d.RemoveColumn("B"); err != nil {
		t.Fatalf("RemoveColumn failed: %v", err)
	}
	if len(d.Headers) != 1 || d.Headers[0] != "A" {
		t.Errorf("Headers: got %v, want [A]", d.Headers)
	}
	if _, ok := d.Rows[0].Values["B"]; ok {
		t.Error("RemoveColumn left the key in a row")
	}

	if err := d.RemoveColumn("A"); err == nil {
		t.Error("RemoveColumn removed the last header")
	}
	if len(d.Headers) != 1 {
		t.Error("failed RemoveColumn mutated the dataset")
	}

	if err := d.RemoveColumn("Z"); err == nil {
		t.Error("RemoveColumn accepted an unknown header")
	}
}

func TestRenameHeader(t *testing.T) {
	d := &Dataset{
		Headers: []string{"OpenAI", "Anthropic"},
		Rows: []Row{
			{Date: NewDate(2027, time.January, 1), Values: map[string]float64{"OpenAI": 3, "Anthropic": 2}},
		},
	}

	// Renaming to itself is a no-op that succeeds.
	if err := d.RenameHeader("OpenAI", "OpenAI"); err != nil {
		t.Fatalf("self-rename failed: %v", err)
	}

	// Renaming onto another existing header fails and changes nothing.
	if err := d.RenameHeader("OpenAI", "Anthropic"); err == nil {
		t.Fatal("rename accepted a colliding name")
	}
	if d.Headers[0] != "OpenAI" || d.Rows[0].Values["OpenAI"] != 3 {
		t.Error("failed rename mutated the dataset")
	}

	if err := d.RenameHeader("OpenAI", ""); err == nil {
		t.Error("rename accepted an empty name")
	}

	if err := d.RenameHeader("OpenAI", "DeepMind"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if d.Headers[0] != "DeepMind" {
		t.Errorf("Headers: got %v", d.Headers)
	}
	if d.Rows[0].Values["DeepMind"] != 3 {
		t.Errorf("values not re-keyed: %v", d.Rows[0].Values)
	}
	if _, ok := d.Rows[0].Values["OpenAI"]; ok {
		t.Error("old key still present after rename")
	}
}

func TestUpdateValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    float64
	}{
		{"integer", "5", false, 5},
		{"decimal", "1.25", false, 1.25},
		{"zero", "0", false, 0},
		{"scientific", "1e3", false, 1000},
		{"negative", "-1", true, 0},
		{"not a number", "fast", true, 0},
		{"empty", "", true, 0},
		{"infinity", "Inf", true, 0},
		{"nan", "NaN", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := singleHeaderDataset()
			err := d.UpdateValue(0, "A", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateValue(%q) error = %v, want error %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if d.Rows[0].Values["A"] != 1 {
					t.Error("failed update mutated the dataset")
				}
				return
			}
			if got := d.Rows[0].Values["A"]; got != tt.want {
				t.Errorf("value: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateValueBounds(t *testing.T) {
	d := singleHeaderDataset()
	if err := d.UpdateValue(5, "A", "1"); err == nil {
		t.Error("UpdateValue accepted an out-of-range row")
	}
	if err := d.UpdateValue(0, "Z", "1"); err == nil {
		t.Error("UpdateValue accepted an unknown header")
	}
}

func TestShiftDate(t *testing.T) {
	d := &Dataset{
		Headers: []string{"A"},
		Rows: []Row{
			{Date: NewDate(2027, time.January, 1), Values: map[string]float64{"A": 1}},
			{Date: NewDate(2027, time.February, 1), Values: map[string]float64{"A": 1}},
			{Date: NewDate(2027, time.June, 1), Values: map[string]float64{"A": 1}},
		},
	}

	// Shifting the middle row forward stays clear of the next row.
	if err := d.ShiftDate(1, 1); err != nil {
		t.Fatalf("ShiftDate failed: %v", err)
	}
	if d.Rows[1].Date.String() != "2027-03-01" {
		t.Errorf("date: got %s, want 2027-03-01", d.Rows[1].Date)
	}

	// Shifting back would collide with the previous row.
	if err := d.ShiftDate(1, -2); err == nil {
		t.Error("ShiftDate crossed the previous row")
	}
	if d.Rows[1].Date.String() != "2027-03-01" {
		t.Error("failed shift mutated the date")
	}

	// Shifting forward onto the next row is rejected too.
	d.Rows[1].Date = NewDate(2027, time.May, 1)
	if err := d.ShiftDate(1, 1); err == nil {
		t.Error("ShiftDate collided with the next row")
	}

	// Boundary rows only check the one neighbor they have.
	if err := d.ShiftDate(0, -1); err != nil {
		t.Errorf("first row shift failed: %v", err)
	}
	if err := d.ShiftDate(2, 1); err != nil {
		t.Errorf("last row shift failed: %v", err)
	}
}

func TestRemoveRow(t *testing.T) {
	d := &Dataset{
		Headers: []string{"A"},
		Rows: []Row{
			{Date: NewDate(2027, time.January, 1), Values: map[string]float64{"A": 1}},
			{Date: NewDate(2027, time.April, 1), Values: map[string]float64{"A": 2}},
		},
	}

	if err := d.RemoveRow(0); err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	if len(d.Rows) != 1 || d.Rows[0].Values["A"] != 2 {
		t.Errorf("Rows after removal: %+v", d.Rows)
	}

	if err := d.RemoveRow(7); err == nil {
		t.Error("RemoveRow accepted an out-of-range index")
	}
}

func TestToggleHidden(t *testing.T) {
	d := singleHeaderDataset()

	if err := d.ToggleHidden(0); err != nil {
		t.Fatalf("ToggleHidden failed: %v", err)
	}
	if !d.Rows[0].Hidden {
		t.Error("row should be hidden after toggle")
	}
	if err := d.ToggleHidden(0); err != nil {
		t.Fatalf("ToggleHidden failed: %v", err)
	}
	if d.Rows[0].Hidden {
		t.Error("row should be visible after second toggle")
	}

	if err := d.ToggleHidden(-1); err == nil {
		t.Error("ToggleHidden accepted a negative index")
	}
}

func TestNextColumnName(t *testing.T) {
	d := &Dataset{Headers: []string{"A", "Series 3"}}
	name := d.NextColumnName()
	if d.HasHeader(name) {
		t.Errorf("NextColumnName returned an existing header %q", name)
	}
}
