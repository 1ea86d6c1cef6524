package logical

// Properties whose directional keyword values have logical counterparts.
const (
	PropJustifyContent = "justify-content"
	PropTextAlign      = "text-align"
	PropFloat          = "float"
)

// IsKeywordProperty reports whether property takes directional keywords
// ResolveKeyword knows how to swap.
func IsKeywordProperty(property string) bool {
	switch property {
	case PropJustifyContent, PropTextAlign, PropFloat:
		return true
	}
	return false
}

// ResolveKeyword returns the logical keyword for a left/right value of
// justify-content, text-align or float. The value must match exactly.
func ResolveKeyword(property, value string) (string, bool) {
	var left, right string
	switch property {
	case PropJustifyContent:
		left, right = "flex-start", "flex-end"
	case PropTextAlign:
		left, right = "start", "end"
	case PropFloat:
		left, right = "inline-start", "inline-end"
	default:
		return "", false
	}

	switch value {
	case "left":
		return left, true
	case "right":
		return right, true
	}
	return "", false
}
