package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/paceview/paceview/internal/dataset"
)

func TestWrite(t *testing.T) {
	d := &dataset.Dataset{
		Headers: []string{"OpenAI", "Anthropic"},
		Rows: []dataset.Row{
			{Date: dataset.NewDate(2027, time.January, 1), Values: map[string]float64{"OpenAI": 1, "Anthropic": 1.5}},
			{Date: dataset.NewDate(2027, time.April, 1), Values: map[string]float64{"OpenAI": 3, "Anthropic": 2}, Hidden: true},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(d, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "date"},
		{"B1", "OpenAI"},
		{"C1", "Anthropic"},
		{"D1", "hidden"},
		{"A2", "2027-01-01"},
		{"B2", "1"},
		{"C3", "2"},
		{"D3", "TRUE"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(sheetName, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("cell %s: got %q, want %q", tt.cell, got, tt.want)
		}
	}
}
