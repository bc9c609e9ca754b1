package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes the validation result to the output.
// A nil or empty errs slice reports success.
func (r *Reporter) Report(errs []*ValidationError) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(errs)
	default:
		return r.reportText(errs)
	}
}

type jsonReport struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors,omitempty"`
}

func (r *Reporter) reportJSON(errs []*ValidationError) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	report := jsonReport{Valid: len(errs) == 0, Errors: errs}
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

func (r *Reporter) reportText(errs []*ValidationError) error {
	if len(errs) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Configuration is valid"))
		return nil
	}

	fmt.Fprintf(r.out, "Validation failed: %s\n\n", color.RedString("%d error(s)", len(errs)))
	for _, e := range errs {
		fmt.Fprintf(r.out, "  %s %s\n", color.RedString("✗"), e.Error())
	}
	return nil
}
