package logical

import (
	"slices"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"two values", "10px 20px", []string{"10px", "20px"}},
		{"extra whitespace", "  1em \t 2em\n3em  ", []string{"1em", "2em", "3em"}},
		{"calc stays whole", "calc(1px + var(--x))", []string{"calc(1px + var(--x))"}},
		{"function among values", "var(--a) 2px calc(1px + 2px) 0", []string{"var(--a)", "2px", "calc(1px + 2px)", "0"}},
		{"bare group", "1px (2px 3px)", []string{"1px", "(2px 3px)"}},
		{"unclosed group", "1px min(2px, 3px", []string{"1px", "min(2px, 3px"}},
		{"stray closing paren", "a) b", []string{"a)", "b"}},
		{"empty", "", nil},
		{"only whitespace", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.value)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsVariableOrFunction(t *testing.T) {
	for _, v := range []string{"var(--gap)", "calc(1px + 2px)", "1px (--x)", "0 var(--a)"} {
		if !isVariableOrFunction(v) {
			t.Errorf("expected %q to be treated as variable or function", v)
		}
	}
	for _, v := range []string{"1px 2px", "min(1px, 2px)", "auto"} {
		if isVariableOrFunction(v) {
			t.Errorf("expected %q not to be treated as variable or function", v)
		}
	}
}

func TestReduce(t *testing.T) {
	lh := func(p, v string) Longhand { return Longhand{Property: p, Value: v} }

	tests := []struct {
		name   string
		tokens []string
		want   []Longhand
	}{
		// 2 tokens
		{"2 equal", []string{"1px", "1px"}, []Longhand{lh("margin", "1px")}},
		{"2 different", []string{"1px", "2px"}, []Longhand{lh("margin-block", "1px"), lh("margin-inline", "2px")}},

		// 3 tokens
		{"3 equal", []string{"1px", "1px", "1px"}, []Longhand{lh("margin", "1px")}},
		{"3 block equal", []string{"1px", "2px", "1px"}, []Longhand{lh("margin-block", "1px"), lh("margin-inline", "2px")}},
		{"3 different", []string{"1px", "2px", "3px"}, []Longhand{
			lh("margin-block-start", "1px"), lh("margin-inline", "2px"), lh("margin-block-end", "3px"),
		}},
		{"3 start equals inline only", []string{"1px", "1px", "3px"}, []Longhand{
			lh("margin-block-start", "1px"), lh("margin-inline", "1px"), lh("margin-block-end", "3px"),
		}},

		// 4 tokens
		{"4 equal", []string{"5px", "5px", "5px", "5px"}, []Longhand{lh("margin", "5px")}},
		{"4 both axes", []string{"1px", "2px", "1px", "2px"}, []Longhand{lh("margin-block", "1px"), lh("margin-inline", "2px")}},
		{"4 block only", []string{"1px", "2px", "1px", "4px"}, []Longhand{
			lh("margin-block", "1px"), lh("margin-inline-end", "2px"), lh("margin-inline-start", "4px"),
		}},
		{"4 inline only", []string{"1px", "2px", "3px", "2px"}, []Longhand{
			lh("margin-block-start", "1px"), lh("margin-inline", "2px"), lh("margin-block-end", "3px"),
		}},
		{"4 different", []string{"1px", "2px", "3px", "4px"}, []Longhand{
			lh("margin-block-start", "1px"), lh("margin-inline-end", "2px"),
			lh("margin-block-end", "3px"), lh("margin-inline-start", "4px"),
		}},
		{"4 axes equal but values differ", []string{"1px", "1px", "1px", "2px"}, []Longhand{
			lh("margin-block", "1px"), lh("margin-inline-end", "1px"), lh("margin-inline-start", "2px"),
		}},

		// unsupported
		{"1 token", []string{"1px"}, nil},
		{"5 tokens", []string{"1px", "2px", "3px", "4px", "5px"}, nil},
		{"none", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce("margin", tt.tokens)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Reduce(%q) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestReduce_BlockBeforeInline(t *testing.T) {
	// every multi-declaration output lists block axis first
	inputs := [][]string{
		{"1px", "2px"},
		{"1px", "2px", "1px"},
		{"1px", "2px", "3px"},
		{"1px", "2px", "1px", "4px"},
		{"1px", "2px", "3px", "2px"},
		{"1px", "2px", "3px", "4px"},
	}
	for _, in := range inputs {
		got := Reduce("padding", in)
		if len(got) < 2 {
			t.Fatalf("expected expansion for %q", in)
		}
		if !strings.HasPrefix(got[0].Property, "padding-block") {
			t.Errorf("%q: first declaration %q is not on block axis", in, got[0].Property)
		}
	}
}

func TestPositionalLonghands(t *testing.T) {
	tests := []struct {
		count int
		want  []string
	}{
		{2, []string{"padding-block", "padding-inline"}},
		{3, []string{"padding-block-start", "padding-inline", "padding-block-end"}},
		{4, []string{"padding-block-start", "padding-inline-end", "padding-block-end", "padding-inline-start"}},
		{1, nil},
		{5, nil},
	}
	for _, tt := range tests {
		if got := positionalLonghands("padding", tt.count); !slices.Equal(got, tt.want) {
			t.Errorf("positionalLonghands(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
