package disease

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// ErrInvalidInput is returned when a form field is missing or not numeric.
var ErrInvalidInput = errors.New("invalid input")

// InputError lists the offending fields, keyed by column name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	cols := make([]string, 0, len(e.Fields))
	for c := range e.Fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " " + e.Fields[c]
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(parts, "; "))
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// ParseInputs converts raw form values into a feature vector in field order.
// Every field is required and must be a finite decimal number. Hex floats
// and the NaN/Inf spellings strconv accepts are rejected here so they never
// reach a model.
func ParseInputs(d *models.Disease, raw map[string]string) ([]float64, error) {
	features := make([]float64, len(d.Fields))
	invalid := map[string]string{}

	for i, f := range d.Fields {
		v := strings.TrimSpace(raw[f.Column])
		if v == "" {
			invalid[f.Column] = "is required"
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || isHex(v) || math.IsNaN(x) || math.IsInf(x, 0) {
			invalid[f.Column] = "must be a number"
			continue
		}
		features[i] = x
	}

	if len(invalid) > 0 {
		return nil, &InputError{Fields: invalid}
	}
	return features, nil
}

func isHex(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) > 1 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}
