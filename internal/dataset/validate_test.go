package dataset

import (
	"os"
	"strings"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string // substring of the joined error, empty means valid
	}{
		{
			name:  "valid document",
			input: `{"headers": ["A", "B"], "rows": [{"date": "2027-01-01", "values": {"A": 1, "B": 2.5}}]}`,
		},
		{
			name:  "hidden flag accepted",
			input: `{"headers": ["A"], "rows": [{"date": "2027-01-01", "values": {"A": 0}, "hidden": true}]}`,
		},
		{
			name:  "empty headers and rows",
			input: `{"headers": [], "rows": []}`,
		},
		{
			name:    "not json",
			input:   `{"headers": [`,
			wantErr: "not valid JSON",
		},
		{
			name:    "missing rows",
			input:   `{"headers": ["A"]}`,
			wantErr: "rows",
		},
		{
			name:    "extra row key",
			input:   `{"headers": ["A"], "rows": [{"date": "2027-01-01", "values": {"A": 1, "B": 1}}]}`,
			wantErr: "rows[0].values: row keys must match headers",
		},
		{
			name:    "missing row key",
			input:   `{"headers": ["A", "B"], "rows": [{"date": "2027-01-01", "values": {"A": 1}}]}`,
			wantErr: "rows[0].values: row keys must match headers",
		},
		{
			name:    "negative value",
			input:   `{"headers": ["A"], "rows": [{"date": "2027-01-01", "values": {"A": -1}}]}`,
			wantErr: "rows[0].values.A",
		},
		{
			name:    "non-numeric value",
			input:   `{"headers": ["A"], "rows": [{"date": "2027-01-01", "values": {"A": "fast"}}]}`,
			wantErr: "rows[0].values.A",
		},
		{
			name:    "malformed date",
			input:   `{"headers": ["A"], "rows": [{"date": "01/01/2027", "values": {"A": 1}}]}`,
			wantErr: "rows[0].date",
		},
		{
			name:    "normalized but impossible date",
			input:   `{"headers": ["A"], "rows": [{"date": "2027-02-30", "values": {"A": 1}}]}`,
			wantErr: "rows[0].date",
		},
		{
			name:    "duplicate headers",
			input:   `{"headers": ["A", "A"], "rows": []}`,
			wantErr: "headers",
		},
		{
			name:    "empty header string",
			input:   `{"headers": [""], "rows": []}`,
			wantErr: "headers[0]",
		},
		{
			name:    "unknown top-level field",
			input:   `{"headers": [], "rows": [], "extra": 1}`,
			wantErr: "extra",
		},
		{
			name:    "row missing date",
			input:   `{"headers": ["A"], "rows": [{"values": {"A": 1}}]}`,
			wantErr: "rows[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, result := Validate([]byte(tt.input))
			if tt.wantErr == "" {
				if !result.Valid {
					t.Fatalf("Validate rejected valid input: %v", result.Err())
				}
				if d == nil {
					t.Fatal("Validate returned nil dataset for valid input")
				}
				return
			}
			if result.Valid {
				t.Fatalf("Validate accepted invalid input")
			}
			if d != nil {
				t.Error("Validate returned a dataset despite violations")
			}
			if msg := result.Err().Error(); !strings.Contains(msg, tt.wantErr) {
				t.Errorf("error %q does not mention %q", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	input := `{
		"headers": ["A"],
		"rows": [
			{"date": "bad", "values": {"A": 1}},
			{"date": "2027-01-01", "values": {"B": 1}}
		]
	}`
	_, result := Validate([]byte(input))
	if result.Valid {
		t.Fatal("Validate accepted invalid input")
	}
	msg := result.Err().Error()
	for _, want := range []string{"rows[0].date", "rows[1].values"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestCheck(t *testing.T) {
	d := testDataset()
	if result := d.Check(); !result.Valid {
		t.Fatalf("Check rejected valid dataset: %v", result.Err())
	}

	d.Rows[0].Values["Anthropic"] = -3
	result := d.Check()
	if result.Valid {
		t.Fatal("Check accepted a negative value")
	}
	if msg := result.Err().Error(); !strings.Contains(msg, "rows[0].values.Anthropic") {
		t.Errorf("error %q does not name the offending field", msg)
	}
}
