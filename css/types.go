package css

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"logicss/logical"
)

// Declaration is a single property declaration inside a rule or an at-rule
// block.
type Declaration struct {
	Property  string // Property name, lower-cased unless it is a custom property
	Value     string // Value without the !important flag
	Important bool   // true if the declaration was marked !important
	Line      int    // 1-based line where the declaration starts
}

// IsCustom returns true for custom properties (--name).
func (d Declaration) IsCustom() bool {
	return strings.HasPrefix(d.Property, "--")
}

// String returns the CSS text of the declaration without trailing semicolon.
func (d Declaration) String() string {
	s := d.Property + ": " + d.Value
	if d.Important {
		s += " !important"
	}
	return s
}

// Declarations is an ordered list of declarations.
type Declarations []Declaration

// Apply applies an edit plan to the declaration at index i. Inserted
// declarations go right before it in plan order and inherit its !important
// flag and line. It returns the index of the declaration following the
// processed one, so a caller walking the list never revisits inserted
// declarations.
func (ds *Declarations) Apply(i int, edits []logical.Edit) int {
	cur := (*ds)[i]

	var (
		inserted []Declaration
		removed  bool
	)
	for _, e := range edits {
		switch e.Kind {
		case logical.EditRename:
			cur.Property = e.Property
		case logical.EditSetValue:
			cur.Value = e.Value
		case logical.EditInsertBefore:
			inserted = append(inserted, Declaration{
				Property:  e.Property,
				Value:     e.Value,
				Important: cur.Important,
				Line:      cur.Line,
			})
		case logical.EditRemove:
			removed = true
		}
	}
	if !removed {
		inserted = append(inserted, cur)
	}
	*ds = slices.Replace(*ds, i, i+1, inserted...)
	return i + len(inserted)
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     string       // Selector text, whitespace normalized
	Declarations Declarations // Declarations in source order
	Line         int          // Line number in source for error reporting
}

// AtBlock is an at-rule with a block: @media, @supports, @font-face, @page...
// Conditional blocks carry nested items, descriptor blocks carry
// declarations.
type AtBlock struct {
	Name         string // At-keyword including "@", lower-cased
	Prelude      string // Everything between the keyword and the block
	Declarations Declarations
	Items        []Item
	Line         int
}

// AtStatement is an at-rule without a block (@import, @charset, @namespace).
type AtStatement struct {
	Name    string
	Prelude string
	Line    int
}

// Item is a single item of a stylesheet or of an at-rule block.
// Exactly one of Rule, Block or Statement is non-nil.
type Item struct {
	Rule      *Rule
	Block     *AtBlock
	Statement *AtStatement
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []Item   // All top-level items in source order
	Warnings []string // Parse problems, whatever could be parsed is kept
}

// Walk calls fn for every declaration list in the stylesheet in source
// order: rules, then for at-rule blocks their own declarations followed by
// nested items.
func (s *Stylesheet) Walk(fn func(decls *Declarations)) {
	walkItems(s.Items, fn)
}

func walkItems(items []Item, fn func(decls *Declarations)) {
	for _, item := range items {
		switch {
		case item.Rule != nil:
			fn(&item.Rule.Declarations)
		case item.Block != nil:
			if len(item.Block.Declarations) > 0 {
				fn(&item.Block.Declarations)
			}
			walkItems(item.Block.Items, fn)
		}
	}
}

// Rules returns all rules including those nested in at-rule blocks, in
// source order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	var collect func(items []Item)
	collect = func(items []Item) {
		for _, item := range items {
			switch {
			case item.Rule != nil:
				rules = append(rules, item.Rule)
			case item.Block != nil:
				collect(item.Block.Items)
			}
		}
	}
	collect(s.Items)
	return rules
}

// RulesBySelector returns all rules (nested included) with the given
// selector text.
func (s *Stylesheet) RulesBySelector(selector string) []*Rule {
	var matches []*Rule
	for _, r := range s.Rules() {
		if r.Selector == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writeItems(cw, s.Items, 0)
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// countingWriter keeps the first error and the number of bytes written so
// serialization code does not have to check every write.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(depth int, format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, "%s"+format, append([]any{strings.Repeat("  ", depth)}, args...)...)
	cw.n += int64(n)
	cw.err = err
}

func writeItems(cw *countingWriter, items []Item, depth int) {
	for i, item := range items {
		switch {
		case item.Statement != nil:
			writeStatement(cw, item.Statement, depth)
		case item.Block != nil:
			writeBlock(cw, item.Block, depth)
		case item.Rule != nil:
			writeRule(cw, item.Rule, depth)
		}

		// Add blank line between items (except after last)
		if i < len(items)-1 {
			cw.printf(0, "\n")
		}
	}
}

func writeStatement(cw *countingWriter, st *AtStatement, depth int) {
	if st.Prelude == "" {
		cw.printf(depth, "%s;\n", st.Name)
		return
	}
	cw.printf(depth, "%s %s;\n", st.Name, st.Prelude)
}

func writeRule(cw *countingWriter, rule *Rule, depth int) {
	cw.printf(depth, "%s {\n", rule.Selector)
	writeDeclarations(cw, rule.Declarations, depth+1)
	cw.printf(depth, "}\n")
}

func writeBlock(cw *countingWriter, block *AtBlock, depth int) {
	if block.Prelude == "" {
		cw.printf(depth, "%s {\n", block.Name)
	} else {
		cw.printf(depth, "%s %s {\n", block.Name, block.Prelude)
	}
	writeDeclarations(cw, block.Declarations, depth+1)
	if len(block.Declarations) > 0 && len(block.Items) > 0 {
		cw.printf(0, "\n")
	}
	writeItems(cw, block.Items, depth+1)
	cw.printf(depth, "}\n")
}

func writeDeclarations(cw *countingWriter, decls Declarations, depth int) {
	for _, d := range decls {
		cw.printf(depth, "%s;\n", d.String())
	}
}
