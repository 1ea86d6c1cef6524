// Package logical converts physical CSS declarations into their writing
// mode independent logical equivalents.
//
// # Conversion categories
//
// Every declaration falls into exactly one category, tried in this order:
//
//   - Keyword values: justify-content, text-align and float with a left or
//     right value get the matching flow-relative keyword
//     (text-align: left -> text-align: start).
//   - Direct rename: physical longhands of margin, padding, border edges,
//     corner radii and the left/right offsets
//     (margin-top -> margin-block-start, left -> inset-inline-start).
//   - Box shorthands: margin and padding are replaced by the smallest set of
//     logical declarations that keeps every edge value
//     (margin: 1px 2px 1px 2px -> margin-block: 1px; margin-inline: 2px).
//
// Anything else, including box shorthands whose value does not split into
// 2, 3 or 4 tokens, is left untouched.
//
// # Modes
//
// In Report mode Transform returns diagnostics, in Fix mode it returns an
// edit plan for the host to apply. Box shorthands are reported position by
// position while fixes merge equal values.
//
// # Usage
//
//	res := logical.Transform(logical.Declaration{Property: "padding", Value: "1px 2px 3px 4px"}, logical.Fix)
//	for _, e := range res.Edits {
//	    apply(e)
//	}
package logical
