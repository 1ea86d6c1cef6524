package logical

import "strconv"

// Box shorthands handled by the reduction engine.
const (
	PropMargin  = "margin"
	PropPadding = "padding"
)

// Suffixes of the logical longhands a box shorthand expands to.
const (
	suffixBlock       = "-block"
	suffixBlockStart  = "-block-start"
	suffixBlockEnd    = "-block-end"
	suffixInline      = "-inline"
	suffixInlineStart = "-inline-start"
	suffixInlineEnd   = "-inline-end"
)

// IsBoxShorthand reports whether property is margin or padding.
func IsBoxShorthand(property string) bool {
	return property == PropMargin || property == PropPadding
}

// Longhand is a single property/value pair produced by shorthand reduction.
type Longhand struct {
	Property string
	Value    string
}

// Reduce computes the smallest set of logical declarations reproducing a
// box shorthand with 2, 3 or 4 positional tokens (top, right, bottom, left
// order of CSS). Block axis declarations come before inline axis ones and
// start before end within an axis. Any other token count yields nil.
func Reduce(property string, tokens []string) []Longhand {
	lh := func(suffix, value string) Longhand {
		return Longhand{Property: property + suffix, Value: value}
	}

	switch len(tokens) {
	case 2:
		block, inline := tokens[0], tokens[1]
		if block == inline {
			return []Longhand{{Property: property, Value: block}}
		}
		return []Longhand{lh(suffixBlock, block), lh(suffixInline, inline)}

	case 3:
		blockStart, inline, blockEnd := tokens[0], tokens[1], tokens[2]
		switch {
		case blockStart == inline && inline == blockEnd:
			return []Longhand{{Property: property, Value: blockStart}}
		case blockStart == blockEnd:
			return []Longhand{lh(suffixBlock, blockStart), lh(suffixInline, inline)}
		}
		return []Longhand{lh(suffixBlockStart, blockStart), lh(suffixInline, inline), lh(suffixBlockEnd, blockEnd)}

	case 4:
		blockStart, inlineEnd, blockEnd, inlineStart := tokens[0], tokens[1], tokens[2], tokens[3]
		sameBlock, sameInline := blockStart == blockEnd, inlineStart == inlineEnd
		switch {
		case sameBlock && sameInline && blockStart == inlineStart:
			return []Longhand{{Property: property, Value: blockStart}}
		case sameBlock && sameInline:
			return []Longhand{lh(suffixBlock, blockStart), lh(suffixInline, inlineStart)}
		case sameBlock:
			return []Longhand{lh(suffixBlock, blockStart), lh(suffixInlineEnd, inlineEnd), lh(suffixInlineStart, inlineStart)}
		case sameInline:
			return []Longhand{lh(suffixBlockStart, blockStart), lh(suffixInline, inlineStart), lh(suffixBlockEnd, blockEnd)}
		}
		return []Longhand{
			lh(suffixBlockStart, blockStart),
			lh(suffixInlineEnd, inlineEnd),
			lh(suffixBlockEnd, blockEnd),
			lh(suffixInlineStart, inlineStart),
		}
	}
	return nil
}

// positionalLonghands returns one logical longhand per token position,
// without merging equal values.
func positionalLonghands(property string, count int) []string {
	var suffixes []string
	switch count {
	case 2:
		suffixes = []string{suffixBlock, suffixInline}
	case 3:
		suffixes = []string{suffixBlockStart, suffixInline, suffixBlockEnd}
	case 4:
		suffixes = []string{suffixBlockStart, suffixInlineEnd, suffixBlockEnd, suffixInlineStart}
	default:
		return nil
	}
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = property + s
	}
	return out
}

// expandShorthand handles margin and padding.
func expandShorthand(property, value string, mode Mode) Result {
	if value == "" {
		return Result{}
	}

	if isSingleValue(value) || isVariableOrFunction(value) {
		block, inline := property+suffixBlock, property+suffixInline
		res := Result{Category: CategoryShorthand}
		if mode == Fix {
			res.Edits = []Edit{InsertBefore(block, value), InsertBefore(inline, value), Remove()}
		} else {
			res.Diagnostics = []Diagnostic{{From: property, To: block + " and " + inline}}
		}
		return res
	}

	tokens := Tokenize(value)

	if mode == Report {
		names := positionalLonghands(property, len(tokens))
		if len(names) == 0 {
			return Result{}
		}
		res := Result{Category: CategoryShorthand, Diagnostics: make([]Diagnostic, 0, len(names))}
		for i, name := range names {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{From: property + "-" + strconv.Itoa(i+1), To: name})
		}
		return res
	}

	longhands := Reduce(property, tokens)
	if len(longhands) == 0 {
		return Result{}
	}
	res := Result{Category: CategoryShorthand, Edits: make([]Edit, 0, len(longhands)+1)}
	for _, l := range longhands {
		res.Edits = append(res.Edits, InsertBefore(l.Property, l.Value))
	}
	res.Edits = append(res.Edits, Remove())
	return res
}
