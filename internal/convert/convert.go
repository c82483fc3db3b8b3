// Package convert orchestrates a full SQF to TCL conversion pass:
// scan, classify, emit, with automatic routing to report mode for
// TOS_COM transcripts. Conversion is pure and deterministic; the same
// input always yields byte-identical output.
package convert

import (
	"time"

	"github.com/tosworks/sqf2tcl/internal/argdb"
	"github.com/tosworks/sqf2tcl/internal/report"
	"github.com/tosworks/sqf2tcl/pkg/sqf"
	"github.com/tosworks/sqf2tcl/pkg/tcl"
)

// ReportMode controls report-style conversion routing.
type ReportMode int

// Report mode values. Auto detects TOS_COM transcripts; providing a
// rules file also forces report mode, matching the CLI contract.
const (
	ReportAuto ReportMode = iota
	ReportOn
	ReportOff
)

// Options configures a conversion pass.
type Options struct {
	Report      ReportMode
	ReportRules *report.Rules
	ArgDB       *argdb.DB
	Indent      int
}

// Stats summarizes one conversion pass.
type Stats struct {
	Statements int
	Unknown    int
	ByKind     map[sqf.Kind]int
	Report     bool
	Duration   time.Duration
}

// Result is the outcome of a conversion pass.
type Result struct {
	Output string
	Stats  Stats
}

// Convert translates SQF source text. It never fails on unrecognized
// syntax; unknown statements surface in the output as TODO comments
// and in Stats.Unknown.
func Convert(source string, opts Options) *Result {
	start := time.Now()

	if useReport(source, opts) {
		out := report.Convert(source, report.Options{Rules: opts.ReportRules, ArgDB: opts.ArgDB})
		return &Result{
			Output: out,
			Stats:  Stats{Report: true, Duration: time.Since(start)},
		}
	}

	nodes := sqf.Parse(source)
	emitter := tcl.NewEmitter(tcl.WithIndent(opts.Indent))
	out := emitter.Emit(nodes)

	stats := Stats{
		Statements: len(nodes),
		ByKind:     make(map[sqf.Kind]int, 8),
		Duration:   time.Since(start),
	}
	for _, n := range nodes {
		stats.ByKind[n.Kind]++
		if n.Kind == sqf.KindUnknown {
			stats.Unknown++
		}
	}

	return &Result{Output: out, Stats: stats}
}

// useReport resolves the report routing: explicit flag wins, then a
// provided rules file, then TOS_COM auto-detection.
func useReport(source string, opts Options) bool {
	switch opts.Report {
	case ReportOn:
		return true
	case ReportOff:
		return false
	default:
		return opts.ReportRules != nil || report.Detect(source)
	}
}
