package css_test

import (
	"testing"

	"go.uber.org/zap"

	"logicss/css"
	"logicss/logical"
)

func TestDeclarations_ApplyRename(t *testing.T) {
	decls := css.Declarations{
		{Property: "color", Value: "red", Line: 1},
		{Property: "left", Value: "0", Important: true, Line: 2},
		{Property: "top", Value: "0", Line: 3},
	}

	next := decls.Apply(1, []logical.Edit{logical.Rename("inset-inline-start")})
	if next != 2 {
		t.Errorf("expected next index 2, got %d", next)
	}
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(decls))
	}
	if got := decls[1].String(); got != "inset-inline-start: 0 !important" {
		t.Errorf("unexpected declaration '%s'", got)
	}
}

func TestDeclarations_ApplySetValue(t *testing.T) {
	decls := css.Declarations{{Property: "text-align", Value: "left"}}

	decls.Apply(0, []logical.Edit{logical.SetValue("start")})
	if decls[0].Value != "start" {
		t.Errorf("expected 'start', got '%s'", decls[0].Value)
	}
}

func TestDeclarations_ApplyExpansion(t *testing.T) {
	decls := css.Declarations{
		{Property: "color", Value: "red", Line: 1},
		{Property: "padding", Value: "1px 2px 3px 4px", Important: true, Line: 2},
		{Property: "display", Value: "block", Line: 3},
	}

	edits := []logical.Edit{
		logical.InsertBefore("padding-block-start", "1px"),
		logical.InsertBefore("padding-inline-end", "2px"),
		logical.InsertBefore("padding-block-end", "3px"),
		logical.InsertBefore("padding-inline-start", "4px"),
		logical.Remove(),
	}
	next := decls.Apply(1, edits)

	want := []string{
		"color: red",
		"padding-block-start: 1px !important",
		"padding-inline-end: 2px !important",
		"padding-block-end: 3px !important",
		"padding-inline-start: 4px !important",
		"display: block",
	}
	if len(decls) != len(want) {
		t.Fatalf("expected %d declarations, got %d", len(want), len(decls))
	}
	for i, d := range decls {
		if d.String() != want[i] {
			t.Errorf("declaration %d: expected '%s', got '%s'", i, want[i], d.String())
		}
	}
	if next != 5 {
		t.Errorf("expected next index 5, got %d", next)
	}
	if decls[next].Property != "display" {
		t.Errorf("next index must point past the processed declaration, got %+v", decls[next])
	}
	for _, d := range decls[1:5] {
		if d.Line != 2 {
			t.Errorf("inserted declaration must keep source line, got %d", d.Line)
		}
	}
}

func TestDeclarations_ApplyRemoveLast(t *testing.T) {
	decls := css.Declarations{{Property: "margin", Value: "1px 1px"}}

	next := decls.Apply(0, []logical.Edit{logical.InsertBefore("margin", "1px"), logical.Remove()})
	if next != 1 || len(decls) != 1 {
		t.Fatalf("unexpected result: next=%d, decls=%v", next, decls)
	}
	if decls[0].String() != "margin: 1px" {
		t.Errorf("unexpected declaration '%s'", decls[0].String())
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import url("base.css");
p{margin-top:1em;color:red}
@media print{.a{float:left!important}}
@font-face{font-family:"Body"}`))

	want := `@import url("base.css");

p {
  margin-top: 1em;
  color: red;
}

@media print {
  .a {
    float: left !important;
  }
}

@font-face {
  font-family: "Body";
}
`
	if got := sheet.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}

	// what we write must parse back to the same thing
	again := p.Parse([]byte(sheet.String()))
	if again.String() != want {
		t.Errorf("output does not round trip:\n%s", again.String())
	}
}

func TestStylesheet_Walk(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { left: 0; }
@media print { .b { right: 0; } }
@page { margin-left: 1cm; }`))

	var seen []string
	sheet.Walk(func(decls *css.Declarations) {
		for _, d := range *decls {
			seen = append(seen, d.Property)
		}
	})

	want := []string{"left", "right", "margin-left"}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("position %d: expected '%s', got '%s'", i, want[i], seen[i])
		}
	}
}

func TestStylesheet_WalkMutates(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { margin: 1px 2px; }`))
	sheet.Walk(func(decls *css.Declarations) {
		decls.Apply(0, []logical.Edit{
			logical.InsertBefore("margin-block", "1px"),
			logical.InsertBefore("margin-inline", "2px"),
			logical.Remove(),
		})
	})

	want := ".a {\n  margin-block: 1px;\n  margin-inline: 2px;\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}
