package logical

// physicalProperties lists every property Lookup knows, in the order the
// registry groups them.
var physicalProperties = [...]string{
	"margin-top", "margin-bottom", "margin-left", "margin-right",
	"padding-top", "padding-bottom", "padding-left", "padding-right",
	"border-top", "border-bottom", "border-left", "border-right",
	"border-top-width", "border-bottom-width", "border-left-width", "border-right-width",
	"border-top-color", "border-bottom-color", "border-left-color", "border-right-color",
	"border-top-style", "border-bottom-style", "border-left-style", "border-right-style",
	"border-top-right-radius", "border-top-left-radius", "border-bottom-right-radius", "border-bottom-left-radius",
	"left", "right",
}

// Lookup returns the logical longhand for a physical longhand property.
func Lookup(property string) (string, bool) {
	switch property {
	// Box Model - Margins
	case "margin-top":
		return "margin-block-start", true
	case "margin-bottom":
		return "margin-block-end", true
	case "margin-left":
		return "margin-inline-start", true
	case "margin-right":
		return "margin-inline-end", true

	// Box Model - Padding
	case "padding-top":
		return "padding-block-start", true
	case "padding-bottom":
		return "padding-block-end", true
	case "padding-left":
		return "padding-inline-start", true
	case "padding-right":
		return "padding-inline-end", true

	// Borders
	case "border-top":
		return "border-block-start", true
	case "border-bottom":
		return "border-block-end", true
	case "border-left":
		return "border-inline-start", true
	case "border-right":
		return "border-inline-end", true
	case "border-top-width":
		return "border-block-start-width", true
	case "border-bottom-width":
		return "border-block-end-width", true
	case "border-left-width":
		return "border-inline-start-width", true
	case "border-right-width":
		return "border-inline-end-width", true
	case "border-top-color":
		return "border-block-start-color", true
	case "border-bottom-color":
		return "border-block-end-color", true
	case "border-left-color":
		return "border-inline-start-color", true
	case "border-right-color":
		return "border-inline-end-color", true
	case "border-top-style":
		return "border-block-start-style", true
	case "border-bottom-style":
		return "border-block-end-style", true
	case "border-left-style":
		return "border-inline-start-style", true
	case "border-right-style":
		return "border-inline-end-style", true

	// Corner radii: block edge first, then inline edge
	case "border-top-right-radius":
		return "border-start-end-radius", true
	case "border-top-left-radius":
		return "border-start-start-radius", true
	case "border-bottom-right-radius":
		return "border-end-end-radius", true
	case "border-bottom-left-radius":
		return "border-end-start-radius", true

	// Offsets
	case "left":
		return "inset-inline-start", true
	case "right":
		return "inset-inline-end", true
	}
	return "", false
}

// Properties returns all physical properties known to Lookup.
func Properties() []string {
	out := make([]string, len(physicalProperties))
	copy(out, physicalProperties[:])
	return out
}
