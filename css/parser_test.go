package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"logicss/css"
)

func TestParser_RuleDeclarationsInOrder(t *testing.T) {
	log := zap.NewNop()
	p := css.NewParser(log)

	input := []byte(`p {
  margin-top: 1em;
  color: red;
  text-align: left;
}`)
	sheet := p.Parse(input)

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	rule := rules[0]
	if rule.Selector != "p" {
		t.Errorf("expected selector 'p', got '%s'", rule.Selector)
	}

	want := []string{"margin-top: 1em", "color: red", "text-align: left"}
	if len(rule.Declarations) != len(want) {
		t.Fatalf("expected %d declarations, got %d", len(want), len(rule.Declarations))
	}
	for i, d := range rule.Declarations {
		if d.String() != want[i] {
			t.Errorf("declaration %d: expected '%s', got '%s'", i, want[i], d.String())
		}
	}
}

func TestParser_LineNumbers(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`p {
  margin-top: 1em;

  /* comment */
  padding: 0;
}

.note {
  float: left;
}
`)
	sheet := p.Parse(input)

	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	if rules[0].Line != 1 {
		t.Errorf("expected first rule at line 1, got %d", rules[0].Line)
	}
	if got := rules[0].Declarations[0].Line; got != 2 {
		t.Errorf("expected margin-top at line 2, got %d", got)
	}
	if got := rules[0].Declarations[1].Line; got != 5 {
		t.Errorf("expected padding at line 5, got %d", got)
	}
	if rules[1].Line != 8 {
		t.Errorf("expected second rule at line 8, got %d", rules[1].Line)
	}
	if got := rules[1].Declarations[0].Line; got != 9 {
		t.Errorf("expected float at line 9, got %d", got)
	}
}

func TestParser_Important(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { margin: 1px 2px !important; float: left ! IMPORTANT; color: red }`))

	decls := sheet.Rules()[0].Declarations
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(decls))
	}

	if decls[0].Value != "1px 2px" || !decls[0].Important {
		t.Errorf("unexpected margin declaration: %+v", decls[0])
	}
	if decls[1].Value != "left" || !decls[1].Important {
		t.Errorf("unexpected float declaration: %+v", decls[1])
	}
	if decls[2].Important {
		t.Errorf("color must not be important: %+v", decls[2])
	}
	if got := decls[0].String(); got != "margin: 1px 2px !important" {
		t.Errorf("unexpected text '%s'", got)
	}
}

func TestParser_FunctionValues(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { margin: calc(1px + 2px)   var(--gap); }`))

	d := sheet.Rules()[0].Declarations[0]
	if d.Value != "calc(1px + 2px) var(--gap)" {
		t.Errorf("unexpected value '%s'", d.Value)
	}
}

func TestParser_PropertyNamesLowercased(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.a { Margin-Left: 0; --Custom-Gap: 4px; }`))

	decls := sheet.Rules()[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Property != "margin-left" {
		t.Errorf("expected lower-cased property, got '%s'", decls[0].Property)
	}
	if decls[1].Property != "--Custom-Gap" || !decls[1].IsCustom() {
		t.Errorf("custom property must keep its name, got '%s'", decls[1].Property)
	}
	if decls[1].Value != "4px" {
		t.Errorf("expected custom property value '4px', got '%s'", decls[1].Value)
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`h2, h3,
h4 { margin-left: 0; }`))

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected grouped selector to stay a single rule, got %d", len(rules))
	}
	if got := rules[0].Selector; got != "h2, h3, h4" {
		t.Errorf("expected 'h2, h3, h4', got '%s'", got)
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`@media screen and (min-width: 600px) {
  .a { padding-left: 1em; }
  .b { left: 0; }
}
.c { right: 0; }`)
	sheet := p.Parse(input)

	if len(sheet.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(sheet.Items))
	}

	block := sheet.Items[0].Block
	if block == nil {
		t.Fatal("expected first item to be an at-rule block")
	}
	if block.Name != "@media" {
		t.Errorf("expected @media, got '%s'", block.Name)
	}
	if !strings.Contains(block.Prelude, "min-width") {
		t.Errorf("unexpected prelude '%s'", block.Prelude)
	}
	if len(block.Items) != 2 {
		t.Fatalf("expected 2 nested rules, got %d", len(block.Items))
	}

	rules := sheet.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules overall, got %d", len(rules))
	}
	order := []string{".a", ".b", ".c"}
	for i, r := range rules {
		if r.Selector != order[i] {
			t.Errorf("rule %d: expected '%s', got '%s'", i, order[i], r.Selector)
		}
	}
}

func TestParser_NestedBlocks(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@supports (display: grid) {
  @media print {
    .x { margin-right: 2px; }
  }
}`))

	rules := sheet.RulesBySelector(".x")
	if len(rules) != 1 {
		t.Fatalf("expected nested rule to be found, got %d", len(rules))
	}
	if rules[0].Declarations[0].Property != "margin-right" {
		t.Errorf("unexpected declaration %+v", rules[0].Declarations[0])
	}
}

func TestParser_FontFaceDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@font-face { font-family: "Body"; src: url("body.woff2"); }`))

	if len(sheet.Items) != 1 || sheet.Items[0].Block == nil {
		t.Fatalf("expected a single at-rule block, got %+v", sheet.Items)
	}
	block := sheet.Items[0].Block
	if block.Name != "@font-face" {
		t.Errorf("expected @font-face, got '%s'", block.Name)
	}
	if len(block.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(block.Declarations))
	}
	if block.Declarations[0].Property != "font-family" {
		t.Errorf("unexpected declaration %+v", block.Declarations[0])
	}
}

func TestParser_Import(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import url("base.css");
p { margin-top: 0; }`))

	if len(sheet.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sheet.Items))
	}
	st := sheet.Items[0].Statement
	if st == nil || st.Name != "@import" {
		t.Fatalf("expected @import statement, got %+v", sheet.Items[0])
	}
	if !strings.Contains(st.Prelude, "base.css") {
		t.Errorf("unexpected prelude '%s'", st.Prelude)
	}
}

func TestParser_Empty(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(nil)
	if len(sheet.Items) != 0 {
		t.Errorf("expected no items, got %d", len(sheet.Items))
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", sheet.Warnings)
	}
}
