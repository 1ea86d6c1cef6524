package convert

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"logicss/css"
	"logicss/lint"
	"logicss/utils/debug"
)

// dumpStylesheet returns readable tree of parsed style sheet followed by what
// the rule did to it. It exists solely for inspection in debug reports.
func dumpStylesheet(src, charset string, sheet *css.Stylesheet, res lint.Result) []byte {
	tw := debug.NewTreeWriter()

	tw.Line(0, "Stylesheet %q charset %q", src, charset)
	tw.Line(1, "Items: %d, declarations visited: %d", len(sheet.Items), res.Visited)
	for _, w := range sheet.Warnings {
		tw.TextBlock(1, "Warning", w)
	}
	for _, item := range sheet.Items {
		dumpItem(tw, 1, item)
	}

	if len(res.Findings) > 0 {
		tw.Line(0, "Findings: %d", len(res.Findings))
		for _, f := range res.Findings {
			tw.Line(1, "%s", f.String())
		}
	}

	if len(res.Changes) > 0 {
		tw.Line(0, "Changes: %d", len(res.Changes))
		for _, c := range res.Changes {
			tw.Section(1, fmt.Sprintf("Line %d %s", c.Line, c.Category), func(depth int) {
				tw.TextBlock(depth, "Original", c.Original)
				for _, e := range c.Edits {
					tw.Line(depth, "%s", e.String())
				}
			})
		}
	}

	if counts := propertyCounts(res); len(counts) > 0 {
		tw.Line(0, "Properties: %d", len(counts))
		keys := slices.Collect(maps.Keys(counts))
		sort.Sort(natural.StringSlice(keys))
		for _, k := range keys {
			tw.Line(1, "%s: %d", k, counts[k])
		}
	}
	return tw.Bytes()
}

func dumpItem(tw *debug.TreeWriter, depth int, item css.Item) {
	switch {
	case item.Rule != nil:
		tw.Section(depth, fmt.Sprintf("Rule %d", item.Rule.Line), func(depth int) {
			tw.TextBlock(depth, "Selector", item.Rule.Selector)
			dumpDeclarations(tw, depth, item.Rule.Declarations)
		})
	case item.Block != nil:
		tw.Section(depth, fmt.Sprintf("Block %s %d", item.Block.Name, item.Block.Line), func(depth int) {
			tw.TextBlock(depth, "Prelude", item.Block.Prelude)
			dumpDeclarations(tw, depth, item.Block.Declarations)
			for _, nested := range item.Block.Items {
				dumpItem(tw, depth, nested)
			}
		})
	case item.Statement != nil:
		tw.Line(depth, "Statement %s %d", item.Statement.Name, item.Statement.Line)
		tw.TextBlock(depth+1, "Prelude", item.Statement.Prelude)
	}
}

func dumpDeclarations(tw *debug.TreeWriter, depth int, decls css.Declarations) {
	for _, d := range decls {
		tw.Line(depth, "[%d] %s", d.Line, d.String())
	}
}

// propertyCounts counts findings (report mode) or changes (fix mode) per
// source property.
func propertyCounts(res lint.Result) map[string]int {
	counts := make(map[string]int)
	for _, f := range res.Findings {
		counts[f.Property]++
	}
	for _, c := range res.Changes {
		counts[c.Property]++
	}
	return counts
}
