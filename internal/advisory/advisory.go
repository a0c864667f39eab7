// Package advisory collects the non-fatal findings of an estimate: engineering
// thresholds that were exceeded and reference data that fell back to a default.
package advisory

import "fmt"

// Code identifies the check that produced a finding.
type Code string

const (
	CodeSoilPressure      Code = "soil_pressure"
	CodeWindRating        Code = "wind_rating"
	CodeBeamSection       Code = "beam_section"
	CodeColumnCapacity    Code = "column_capacity"
	CodeFootingSize       Code = "footing_size"
	CodeThermalCompliance Code = "thermal_compliance"
	CodeEnergyCodeDefault Code = "energy_code_default"
)

// Severity separates threshold warnings from informational notices.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityNotice  Severity = "notice"
)

// Warning is a single finding. Actual and Limit are in the unit of the
// quantity checked and are zero when not applicable.
type Warning struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Actual   float64  `json:"actual,omitempty"`
	Limit    float64  `json:"limit,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// Report is the set of findings for one estimate.
type Report struct {
	Warnings []Warning `json:"warnings"`
	Notices  []Warning `json:"notices"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Warnings: []Warning{},
		Notices:  []Warning{},
	}
}

// AddWarning records a threshold that was exceeded.
func (r *Report) AddWarning(w Warning) {
	w.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, w)
}

// AddNotice records a local recovery, such as a default substituted for
// missing reference data.
func (r *Report) AddNotice(w Warning) {
	w.Severity = SeverityNotice
	r.Notices = append(r.Notices, w)
}

// Merge appends other's findings to r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Notices = append(r.Notices, other.Notices...)
}

// Has reports whether any finding carries code.
func (r *Report) Has(code Code) bool {
	for _, w := range r.All() {
		if w.Code == code {
			return true
		}
	}
	return false
}

// All returns warnings followed by notices.
func (r *Report) All() []Warning {
	all := make([]Warning, 0, len(r.Warnings)+len(r.Notices))
	all = append(all, r.Warnings...)
	return append(all, r.Notices...)
}

// Summary returns a one-line count.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d warnings, %d notices", len(r.Warnings), len(r.Notices))
}
