package logical

import "fmt"

// Mode selects what Transform produces. It is fixed for a whole run.
type Mode int

const (
	Report Mode = iota // produce diagnostics, never edits
	Fix                // produce edits, never diagnostics
)

func (m Mode) String() string {
	switch m {
	case Report:
		return "report"
	case Fix:
		return "fix"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Category is the conversion branch a declaration was classified into.
type Category int

const (
	CategoryNone      Category = iota // nothing to convert
	CategoryKeyword                   // left/right keyword value swap
	CategoryRename                    // physical longhand renamed
	CategoryShorthand                 // margin/padding expansion
)

func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryRename:
		return "rename"
	case CategoryShorthand:
		return "shorthand"
	default:
		return "none"
	}
}

// EditKind identifies an edit operation on a declaration.
type EditKind int

const (
	EditRename       EditKind = iota + 1 // rename the current declaration
	EditSetValue                         // replace the value of the current declaration
	EditInsertBefore                     // insert a sibling right before the current declaration
	EditRemove                           // delete the current declaration
)

// Edit is a single operation the host applies to its document. Property and
// Value are used depending on Kind.
type Edit struct {
	Kind     EditKind
	Property string
	Value    string
}

func Rename(property string) Edit { return Edit{Kind: EditRename, Property: property} }
func SetValue(value string) Edit  { return Edit{Kind: EditSetValue, Value: value} }
func Remove() Edit                { return Edit{Kind: EditRemove} }

func InsertBefore(property, value string) Edit {
	return Edit{Kind: EditInsertBefore, Property: property, Value: value}
}

func (e Edit) String() string {
	switch e.Kind {
	case EditRename:
		return "rename " + e.Property
	case EditSetValue:
		return "set " + e.Value
	case EditInsertBefore:
		return "insert " + e.Property + ": " + e.Value
	case EditRemove:
		return "remove"
	default:
		return fmt.Sprintf("EditKind(%d)", int(e.Kind))
	}
}

// Diagnostic describes a physical declaration and its logical replacement.
// From and To are either bare property names or "property: value" pairs.
type Diagnostic struct {
	From string
	To   string
}

// Message renders the diagnostic for users.
func (d Diagnostic) Message() string {
	return fmt.Sprintf(`Replace "%s" with its logical counterpart "%s".`, d.From, d.To)
}

// Declaration is the part of a host declaration the engine looks at.
type Declaration struct {
	Property string
	Value    string
}

// Result is the outcome of Transform for one declaration. In Report mode
// only Diagnostics is set, in Fix mode only Edits.
type Result struct {
	Category    Category
	Diagnostics []Diagnostic
	Edits       []Edit
}

// Changed reports whether the declaration needs conversion.
func (r Result) Changed() bool {
	return r.Category != CategoryNone
}

// Transform classifies a declaration and returns diagnostics or edits for
// it. Branches are tried in order: keyword values, direct rename, box
// shorthand. A declaration matching none of them is left alone.
func Transform(decl Declaration, mode Mode) Result {
	prop, value := decl.Property, decl.Value

	if to, ok := ResolveKeyword(prop, value); ok {
		res := Result{Category: CategoryKeyword}
		if mode == Fix {
			res.Edits = []Edit{SetValue(to)}
		} else {
			res.Diagnostics = []Diagnostic{{From: prop + ": " + value, To: prop + ": " + to}}
		}
		return res
	}

	if to, ok := Lookup(prop); ok {
		res := Result{Category: CategoryRename}
		if mode == Fix {
			res.Edits = []Edit{Rename(to)}
		} else {
			res.Diagnostics = []Diagnostic{{From: prop, To: to}}
		}
		return res
	}

	if IsBoxShorthand(prop) {
		return expandShorthand(prop, value, mode)
	}
	return Result{}
}
