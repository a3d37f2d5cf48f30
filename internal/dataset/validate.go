package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/paceview/paceview/internal/utils"
)

//go:embed schema.json
var schemaJSON string

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("dataset.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add dataset schema: %v", err))
	}
	return compiler.MustCompile("dataset.schema.json")
}

// ValidationError is a single violation with the field path it occurred at.
type ValidationError struct {
	Path string // dot/bracket path to the error location
	Err  error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects every violation found in a document.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true, Errors: make([]error, 0)}
}

func (r *ValidationResult) add(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// Err returns all violations joined into one error, or nil when valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

// rawRow mirrors Row with the date left unparsed so that a malformed
// date can be reported at its own field path.
type rawRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
	Hidden bool               `json:"hidden"`
}

type rawDataset struct {
	Headers []string `json:"headers"`
	Rows    []rawRow `json:"rows"`
}

// Validate checks an arbitrary JSON document against the dataset schema
// and the cross-field invariants the schema cannot express. On success it
// returns a typed Dataset; on failure the result lists every violation
// with its field path.
func Validate(data []byte) (*Dataset, *ValidationResult) {
	result := newValidationResult()

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.add("", fmt.Errorf("not valid JSON: %w", err))
		return nil, result
	}

	if err := schema.Validate(doc); err != nil {
		collectSchemaErrors(result, err)
		return nil, result
	}

	// The schema guarantees the shape, so this decode cannot fail on
	// structure; dates are converted below to keep their field paths.
	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		result.add("", fmt.Errorf("decode dataset: %w", err))
		return nil, result
	}

	d := &Dataset{
		Headers: raw.Headers,
		Rows:    make([]Row, 0, len(raw.Rows)),
	}
	declared := make(map[string]bool, len(raw.Headers))
	for _, h := range raw.Headers {
		declared[h] = true
	}

	for i, rr := range raw.Rows {
		date, err := ParseDate(rr.Date)
		if err != nil {
			result.add(fmt.Sprintf("rows[%d].date", i), err)
		}
		if !rowKeysMatch(declared, rr.Values) {
			result.add(fmt.Sprintf("rows[%d].values", i), errors.New("row keys must match headers"))
		}
		if rr.Values == nil {
			rr.Values = map[string]float64{}
		}
		d.Rows = append(d.Rows, Row{Date: date, Values: rr.Values, Hidden: rr.Hidden})
	}

	if !result.Valid {
		return nil, result
	}
	return d, result
}

// rowKeysMatch reports whether the value keys are exactly the declared
// header set. Extra keys and missing keys both fail.
func rowKeysMatch(declared map[string]bool, values map[string]float64) bool {
	if len(values) != len(declared) {
		return false
	}
	for k := range values {
		if !declared[k] {
			return false
		}
	}
	return true
}

// Check validates an in-memory dataset against the same invariants as
// Validate. Useful before saving a dataset built programmatically.
func (d *Dataset) Check() *ValidationResult {
	result := newValidationResult()

	declared := make(map[string]bool, len(d.Headers))
	for i, h := range d.Headers {
		if h == "" {
			result.add(fmt.Sprintf("headers[%d]", i), errors.New("header must not be empty"))
		}
		if declared[h] {
			result.add(fmt.Sprintf("headers[%d]", i), fmt.Errorf("duplicate header %q", h))
		}
		declared[h] = true
	}

	for i, row := range d.Rows {
		if row.Date.IsZero() {
			result.add(fmt.Sprintf("rows[%d].date", i), errors.New("date is not set"))
		}
		if !rowKeysMatch(declared, row.Values) {
			result.add(fmt.Sprintf("rows[%d].values", i), errors.New("row keys must match headers"))
		}
		for name, v := range row.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				result.add(fmt.Sprintf("rows[%d].values.%s", i, name), errors.New("value must be finite"))
			} else if v < 0 {
				result.add(fmt.Sprintf("rows[%d].values.%s", i, name), errors.New("value must be non-negative"))
			}
		}
	}

	return result
}

// collectSchemaErrors flattens a jsonschema validation error tree into
// one ValidationError per leaf cause.
func collectSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.add("", err)
		return
	}
	collectSchemaCauses(result, ve)
}

func collectSchemaCauses(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.add(utils.JSONPointerToPath(err.InstanceLocation), errors.New(err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaCauses(result, cause)
	}
}
