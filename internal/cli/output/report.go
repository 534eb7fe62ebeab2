package output

import (
	"fmt"

	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

// FileReport holds the diagnostics of one input document.
type FileReport struct {
	Path        string                      `json:"path"`
	Title       string                      `json:"title,omitempty"`
	Diagnostics []validator.ValidationError `json:"diagnostics"`
}

// ReportSummary aggregates counts over a report.
type ReportSummary struct {
	Documents   int `json:"documents"`
	Diagnostics int `json:"diagnostics"`
}

// Report is the result of one check run.
type Report struct {
	Files   []FileReport  `json:"files"`
	Summary ReportSummary `json:"summary"`
}

// NewReport builds a report and its summary. Nil diagnostic slices become
// empty so the JSON form always carries an array.
func NewReport(files []FileReport) Report {
	rep := Report{Files: make([]FileReport, 0, len(files))}
	for _, f := range files {
		if f.Diagnostics == nil {
			f.Diagnostics = []validator.ValidationError{}
		}
		rep.Summary.Diagnostics += len(f.Diagnostics)
		rep.Files = append(rep.Files, f)
	}
	rep.Summary.Documents = len(rep.Files)
	return rep
}

// RenderReport writes the report in the renderer's effective mode.
func RenderReport(r *Renderer, rep Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(rep)
	case ModePlain:
		renderReportPlain(r, rep)
	case ModeMarkdown:
		renderReportMarkdown(r, rep)
	default:
		renderReportText(r, rep)
	}
	return nil
}

// PlainLine formats a diagnostic as a single grep-friendly line.
func PlainLine(path string, e validator.ValidationError) string {
	return fmt.Sprintf("%s:%d: ValidationError[%s], %s at line: %s", path, e.LineNumber, e.Validator, e.Message, e.Sentence)
}

func renderReportPlain(r *Renderer, rep Report) {
	for _, f := range rep.Files {
		for _, e := range f.Diagnostics {
			r.Println(PlainLine(f.Path, e))
		}
	}
}

func renderReportText(r *Renderer, rep Report) {
	if rep.Summary.Diagnostics == 0 {
		r.Success(fmt.Sprintf("No validation errors found in %s", plural(rep.Summary.Documents, "document")))
		return
	}

	styles := r.Styles()
	for _, f := range rep.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(f.Path))
		for _, e := range f.Diagnostics {
			loc := fmt.Sprintf("%d:%d", e.LineNumber, e.StartPosition+1)
			r.Printf("  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				styles.Error.Render(e.Validator),
				e.Message,
			)
			if e.Sentence != "" {
				r.Println(styles.Muted.Render("           " + e.Sentence))
			}
		}
		r.Println("")
	}
	r.Printf("Summary: %s in %s\n",
		plural(rep.Summary.Diagnostics, "error"),
		plural(rep.Summary.Documents, "document"))
}

func renderReportMarkdown(r *Renderer, rep Report) {
	r.Println(FormatHeader(1, "Validation Results"))
	r.Println("")

	for _, f := range rep.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		r.Println(FormatHeader(2, f.Path))
		r.Println("")
		for _, e := range f.Diagnostics {
			r.Printf("- line %d: **%s** %s\n", e.LineNumber, e.Validator, e.Message)
		}
		r.Println("")
	}

	r.Println(FormatHeader(2, "Summary"))
	r.Println("")
	r.Println(FormatKeyValue("Documents", fmt.Sprintf("%d", rep.Summary.Documents)))
	r.Println(FormatKeyValue("Errors", fmt.Sprintf("%d", rep.Summary.Diagnostics)))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
