// Package lint applies the logical properties rule to parsed stylesheets.
package lint

import (
	"fmt"

	"go.uber.org/zap"

	"logicss/css"
	"logicss/logical"
)

// RuleName identifies the rule in findings and logs.
const RuleName = "logical-properties/convert-to-logical"

// Finding is a diagnostic tied to a position in the stylesheet.
type Finding struct {
	Rule       string
	Line       int
	Property   string
	Diagnostic logical.Diagnostic
}

// Message returns the user facing message of the finding.
func (f Finding) Message() string {
	return f.Diagnostic.Message()
}

func (f Finding) String() string {
	return fmt.Sprintf("%d: %s (%s)", f.Line, f.Message(), f.Rule)
}

// Change records a declaration rewritten in fix mode.
type Change struct {
	Line     int
	Property string
	Original string
	Category logical.Category
	Edits    []logical.Edit
}

// Result summarizes a single run over a stylesheet.
type Result struct {
	Visited  int       // declarations looked at
	Findings []Finding // report mode only
	Changes  []Change  // fix mode only
}

// Runner drives the conversion engine over stylesheets. Mode is fixed for
// the lifetime of the runner.
type Runner struct {
	enabled bool
	mode    logical.Mode
	log     *zap.Logger
}

// NewRunner creates a rule runner. A disabled runner leaves stylesheets
// untouched and reports nothing.
func NewRunner(enabled bool, mode logical.Mode, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{enabled: enabled, mode: mode, log: log.Named("lint")}
}

// Mode returns the run mode.
func (r *Runner) Mode() logical.Mode {
	return r.mode
}

// Run walks all declarations of the stylesheet in source order. In fix mode
// the stylesheet is modified in place.
func (r *Runner) Run(sheet *css.Stylesheet) Result {
	var res Result
	if !r.enabled || sheet == nil {
		return res
	}

	sheet.Walk(func(decls *css.Declarations) {
		for i := 0; i < len(*decls); {
			d := (*decls)[i]
			res.Visited++

			if d.IsCustom() {
				i++
				continue
			}

			out := logical.Transform(logical.Declaration{Property: d.Property, Value: d.Value}, r.mode)
			if !out.Changed() {
				i++
				continue
			}

			if r.mode == logical.Report {
				for _, diag := range out.Diagnostics {
					res.Findings = append(res.Findings, Finding{
						Rule:       RuleName,
						Line:       d.Line,
						Property:   d.Property,
						Diagnostic: diag,
					})
				}
				i++
				continue
			}

			r.log.Debug("Converting declaration",
				zap.Int("line", d.Line), zap.String("declaration", d.String()),
				zap.Stringer("category", out.Category), zap.Int("edits", len(out.Edits)))
			res.Changes = append(res.Changes, Change{
				Line:     d.Line,
				Property: d.Property,
				Original: d.String(),
				Category: out.Category,
				Edits:    out.Edits,
			})
			i = decls.Apply(i, out.Edits)
		}
	})
	return res
}
