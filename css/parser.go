package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into an ordered tree of rules, at-rule
// blocks and declarations.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]Item, 0),
		Warnings: make([]string, 0),
	}

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	s := &scanner{
		log:    p.log,
		parser: css.NewParser(input, false),
		input:  input,
		src:    data,
		sheet:  sheet,
	}
	sheet.Items, _ = s.items(false)
	return sheet
}

// scanner holds state of a single Parse call.
type scanner struct {
	log    *zap.Logger
	parser *css.Parser
	input  *parse.Input
	src    []byte
	sheet  *Stylesheet
}

// items collects items until the end of input or, when nested, until the
// end of the enclosing at-rule block. Declarations found directly in the
// block (@font-face, @page) are returned separately.
func (s *scanner) items(nested bool) ([]Item, Declarations) {
	var (
		items     []Item
		decls     Declarations
		selectors []string // comma separated selector parts seen so far
		selLine   int
	)

	for {
		line := s.line()
		gt, _, data := s.parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := s.parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				s.log.Debug("CSS parse error", zap.Error(err))
				s.sheet.Warnings = append(s.sheet.Warnings, err.Error())
			}
			return items, decls

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if nested {
				return items, decls
			}
			// unbalanced closing brace at top level
			s.sheet.Warnings = append(s.sheet.Warnings, "unexpected closing brace")

		case css.BeginAtRuleGrammar:
			block := &AtBlock{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(s.parser.Values()),
				Line:    line,
			}
			block.Items, block.Declarations = s.items(true)
			s.log.Debug("Parsed at-rule block", zap.String("rule", block.Name), zap.String("prelude", block.Prelude),
				zap.Int("items", len(block.Items)), zap.Int("declarations", len(block.Declarations)))
			items = append(items, Item{Block: block})

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			items = append(items, Item{Statement: &AtStatement{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(s.parser.Values()),
				Line:    line,
			}})

		case css.QualifiedRuleGrammar:
			// selector followed by a comma, the ruleset itself comes later
			if len(selectors) == 0 {
				selLine = line
			}
			selectors = append(selectors, selectorText(data, s.parser.Values()))

		case css.BeginRulesetGrammar:
			if len(selectors) > 0 {
				line = selLine
			}
			selectors = append(selectors, selectorText(data, s.parser.Values()))
			rule := &Rule{
				Selector: strings.Join(selectors, ", "),
				Line:     line,
			}
			rule.Declarations = s.declarations()
			items = append(items, Item{Rule: rule})
			selectors = nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, s.declaration(gt, data, line))
		}
	}
}

// declarations parses property declarations until EndRulesetGrammar.
func (s *scanner) declarations() Declarations {
	decls := make(Declarations, 0)

	for {
		line := s.line()
		gt, _, data := s.parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, s.declaration(gt, data, line))
		}
	}
}

// declaration converts the current declaration grammar into a Declaration.
func (s *scanner) declaration(gt css.GrammarType, data []byte, line int) Declaration {
	tokens := s.parser.Values()

	if gt == css.CustomPropertyGrammar {
		// custom property names are case sensitive and values are kept as written
		var sb strings.Builder
		for _, t := range tokens {
			sb.Write(t.Data)
		}
		return Declaration{Property: string(data), Value: strings.TrimSpace(sb.String()), Line: line}
	}

	tokens, important := splitImportant(tokens)
	return Declaration{
		Property:  strings.ToLower(string(data)),
		Value:     joinTokens(tokens),
		Important: important,
		Line:      line,
	}
}

// splitImportant removes a trailing "!important" from value tokens.
func splitImportant(tokens []css.Token) ([]css.Token, bool) {
	i := lastSignificant(tokens, len(tokens))
	if i < 0 || tokens[i].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[i].Data), "important") {
		return tokens, false
	}
	j := lastSignificant(tokens, i)
	if j < 0 || tokens[j].TokenType != css.DelimToken || string(tokens[j].Data) != "!" {
		return tokens, false
	}
	return tokens[:j], true
}

// lastSignificant returns index of the last non-whitespace token before end.
func lastSignificant(tokens []css.Token, end int) int {
	for i := end - 1; i >= 0; i-- {
		if tokens[i].TokenType != css.WhitespaceToken && tokens[i].TokenType != css.CommentToken {
			return i
		}
	}
	return -1
}

// joinTokens builds raw value text, collapsing whitespace runs into a single
// space.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken, css.CommentToken:
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

// selectorText builds normalized selector text from grammar data and values.
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// line returns the 1-based line of the next significant character after the
// current input position.
func (s *scanner) line() int {
	pos := min(max(s.input.Offset(), 0), len(s.src))
	for pos < len(s.src) {
		switch c := s.src[pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == ';':
			pos++
		case c == '/' && pos+1 < len(s.src) && s.src[pos+1] == '*':
			end := bytes.Index(s.src[pos+2:], []byte("*/"))
			if end < 0 {
				pos = len(s.src)
			} else {
				pos += end + 4
			}
		default:
			return bytes.Count(s.src[:pos], []byte{'\n'}) + 1
		}
	}
	return bytes.Count(s.src[:pos], []byte{'\n'}) + 1
}
