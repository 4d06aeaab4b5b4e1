// Package models contains shared data models used across the Health Assistant codebase.
package models

// Field is one numeric measurement collected by a disease form.
type Field struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

// Disease describes everything a prediction page needs for one disease:
// its form, its table and the wording of its diagnosis.
type Disease struct {
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	MenuLabel string  `json:"menu_label"`
	Title     string  `json:"title"`
	Table     string  `json:"table"`
	ModelFile string  `json:"-"`
	Fields    []Field `json:"fields"`

	// Columns is the number of form columns the fields are laid out in.
	Columns        int    `json:"-"`
	SubmitLabel    string `json:"-"`
	// RecordsHeading titles the disease's section on the records page.
	RecordsHeading string `json:"-"`

	PositiveDiagnosis string `json:"positive_diagnosis"`
	NegativeDiagnosis string `json:"negative_diagnosis"`
}

// Diagnosis maps a binary prediction to its human-readable wording.
func (d *Disease) Diagnosis(prediction int) string {
	if prediction == 1 {
		return d.PositiveDiagnosis
	}
	return d.NegativeDiagnosis
}

// ColumnNames returns the feature column names in form order.
func (d *Disease) ColumnNames() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// EmptyMessage is shown on the records page when the table has no rows.
func (d *Disease) EmptyMessage() string {
	return "No " + d.Name + " prediction data available."
}
