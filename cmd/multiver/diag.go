package main

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"github.com/multiver-io/multiver/compiler/gen"
)

// diagPrinter renders generation failures the way a compiler reports them:
// one pointed line per diagnostic, the primary message marked error and the
// related ones marked note.
//
//	wire.go:14:17: error: found multiple occurrences of multi_version(implemented)
//	wire.go:12:17: note: first one here
type diagPrinter struct {
	out     io.Writer
	json    bool
	noColor bool
}

// jsonDiagnostic is the machine-readable form of one diagnostic.
type jsonDiagnostic struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Print writes every diagnostic carried by err. The first diagnostic is the
// failure itself; the rest point at related source positions.
func (p *diagPrinter) Print(err error) {
	diags := gen.Diagnose(err)
	if p.json {
		p.printJSON(diags)
		return
	}
	pos := color.New(color.Bold)
	errLabel := color.New(color.FgRed, color.Bold)
	noteLabel := color.New(color.FgCyan, color.Bold)
	if p.noColor {
		pos.DisableColor()
		errLabel.DisableColor()
		noteLabel.DisableColor()
	}
	for i, d := range diags {
		if d.Pos.IsValid() {
			pos.Fprintf(p.out, "%s: ", d.Pos)
		}
		if i == 0 {
			errLabel.Fprint(p.out, "error: ")
		} else {
			noteLabel.Fprint(p.out, "note: ")
		}
		io.WriteString(p.out, d.Message)
		io.WriteString(p.out, "\n")
	}
}

func (p *diagPrinter) printJSON(diags []gen.Diagnostic) {
	out := struct {
		Status      string           `json:"status"`
		Diagnostics []jsonDiagnostic `json:"diagnostics"`
	}{Status: "error"}
	for i, d := range diags {
		severity := "error"
		if i > 0 {
			severity = "note"
		}
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			File:     d.Pos.Filename,
			Line:     d.Pos.Line,
			Column:   d.Pos.Column,
			Severity: severity,
			Message:  d.Message,
		})
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
