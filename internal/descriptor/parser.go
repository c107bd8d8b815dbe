package descriptor

import (
	"strings"

	"github.com/armature-dev/armature/internal/diag"
)

// parser evaluates the two argument literals of a located factory call.
// It is tolerant by construction: any expression outside the restricted
// literal grammar is captured verbatim as an opaque value instead of
// failing the parse. Structural breakage (unterminated objects, missing
// call syntax) is the only hard failure.
type parser struct {
	tokens  []Token
	source  []rune
	current int
	file    string
	err     *diag.Diagnostic // First structural error, sticky
}

func newParser(tokens []Token, source []rune, file string) *parser {
	return &parser{
		tokens:  tokens,
		source:  source,
		current: 0,
		file:    file,
	}
}

// --- token navigation -------------------------------------------------

func (p *parser) isAtEnd() bool {
	return p.peek().Type == TOKEN_EOF
}

func (p *parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TOKEN_EOF}
	}
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return Token{Type: TOKEN_EOF}
	}
	return p.tokens[p.current+1]
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(tokenType TokenType) bool {
	return p.peek().Type == tokenType
}

func (p *parser) match(tokenType TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// addError records the first structural error with its location
func (p *parser) addError(message string) {
	if p.err != nil {
		return
	}
	tok := p.peek()
	d := diag.Invalid(message, diag.Location{
		File:   p.file,
		Line:   tok.Line,
		Column: tok.Column,
		Length: len(tok.Lexeme),
	})
	p.err = &d
}

// locationOf builds a diagnostic location from a token
func (p *parser) locationOf(tok Token) diag.Location {
	return diag.Location{
		File:   p.file,
		Line:   tok.Line,
		Column: tok.Column,
		Length: len(tok.Lexeme),
	}
}

// rawSince slices the verbatim source between the start token index and
// the last consumed token.
func (p *parser) rawSince(startIdx int) string {
	if startIdx >= len(p.tokens) || p.current == 0 {
		return ""
	}
	start := p.tokens[startIdx].Start
	end := p.previous().End
	if start >= end || end > len(p.source) {
		return ""
	}
	return strings.TrimSpace(string(p.source[start:end]))
}

// atValueBoundary reports whether the parser sits at a token that can
// legally follow a complete value. A literal not followed by one of
// these is part of a larger expression and must be recaptured opaque.
func (p *parser) atValueBoundary() bool {
	switch p.peek().Type {
	case TOKEN_COMMA, TOKEN_RBRACE, TOKEN_RBRACKET, TOKEN_RPAREN, TOKEN_EOF, TOKEN_SEMICOLON:
		return true
	}
	return false
}

// --- values -----------------------------------------------------------

// parseValue parses one value with opaque fallback. It never fails: if
// the tokens do not form a literal the whole expression up to the next
// enclosing boundary is captured verbatim.
func (p *parser) parseValue() Value {
	start := p.current
	if v, ok := p.tryParseLiteral(); ok && p.atValueBoundary() {
		return v
	}
	p.current = start
	return p.captureOpaque()
}

// tryParseLiteral attempts the restricted literal grammar. A false
// return means the caller should rewind and capture opaque.
func (p *parser) tryParseLiteral() (Value, bool) {
	tok := p.peek()

	switch tok.Type {
	case TOKEN_STRING:
		p.advance()
		s, _ := tok.Literal.(string)
		return Str(s), true

	case TOKEN_TEMPLATE:
		p.advance()
		body, _ := tok.Literal.(string)
		if strings.Contains(body, "${") {
			// Interpolation is not a literal; keep the backticked
			// source intact.
			return Opaque(string(p.source[tok.Start:tok.End])), true
		}
		return Str(body), true

	case TOKEN_NUMBER:
		p.advance()
		n, _ := tok.Literal.(float64)
		return Num(n), true

	case TOKEN_MINUS, TOKEN_PLUS:
		if p.peekNext().Type == TOKEN_NUMBER {
			p.advance()
			numTok := p.advance()
			n, _ := numTok.Literal.(float64)
			if tok.Type == TOKEN_MINUS {
				n = -n
			}
			return Num(n), true
		}
		return Value{}, false

	case TOKEN_TRUE:
		p.advance()
		return BoolVal(true), true

	case TOKEN_FALSE:
		p.advance()
		return BoolVal(false), true

	case TOKEN_NULL:
		p.advance()
		return Opaque("null"), true

	case TOKEN_UNDEFINED:
		p.advance()
		return Opaque("undefined"), true

	case TOKEN_LBRACKET:
		return p.tryParseArray()

	case TOKEN_LBRACE:
		obj, ok := p.parseObject()
		if !ok {
			return Value{}, false
		}
		return Value{Kind: ObjectValue, Obj: obj}, true
	}

	return Value{}, false
}

// tryParseArray parses an array literal element-wise
func (p *parser) tryParseArray() (Value, bool) {
	if !p.match(TOKEN_LBRACKET) {
		return Value{}, false
	}

	items := make([]Value, 0, 4)
	for !p.check(TOKEN_RBRACKET) && !p.isAtEnd() {
		items = append(items, p.parseValue())
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if !p.match(TOKEN_RBRACKET) {
		return Value{}, false
	}
	return Value{Kind: ListValue, List: items}, true
}

// parseObject parses an object literal property-wise. Spread members
// and computed keys are preserved verbatim as keyless opaque members.
func (p *parser) parseObject() (*Object, bool) {
	if !p.match(TOKEN_LBRACE) {
		p.addError("expected an object literal")
		return nil, false
	}

	obj := &Object{}
	for !p.check(TOKEN_RBRACE) && !p.isAtEnd() {
		if p.check(TOKEN_SPREAD) || p.check(TOKEN_LBRACKET) {
			// ...spread or [computed]: value
			v := p.captureOpaque()
			obj.Members = append(obj.Members, Member{Key: "", Value: v})
		} else {
			key, ok := p.parseMemberKey()
			if !ok {
				p.addError("expected an object key")
				return nil, false
			}
			if p.match(TOKEN_COLON) {
				obj.Members = append(obj.Members, Member{Key: key, Value: p.parseValue()})
			} else if p.check(TOKEN_COMMA) || p.check(TOKEN_RBRACE) {
				// Shorthand property references a binding; not a literal
				obj.Members = append(obj.Members, Member{Key: key, Value: Opaque(key)})
			} else {
				// Method shorthand or other member syntax
				v := p.captureOpaque()
				obj.Members = append(obj.Members, Member{Key: "", Value: Opaque(key + " " + v.Raw)})
			}
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if !p.match(TOKEN_RBRACE) {
		p.addError("unterminated object literal")
		return nil, false
	}
	return obj, true
}

// parseMemberKey reads an object key: identifier, string, number, or a
// keyword used as a property name.
func (p *parser) parseMemberKey() (string, bool) {
	tok := p.peek()
	switch tok.Type {
	case TOKEN_IDENTIFIER, TOKEN_NUMBER,
		TOKEN_IMPORT, TOKEN_EXPORT, TOKEN_CONST, TOKEN_DEFAULT, TOKEN_FROM,
		TOKEN_TRUE, TOKEN_FALSE, TOKEN_NULL, TOKEN_UNDEFINED:
		p.advance()
		return tok.Lexeme, true
	case TOKEN_STRING:
		p.advance()
		s, _ := tok.Literal.(string)
		return s, true
	}
	return "", false
}

// captureOpaque consumes tokens through the end of the current
// expression, balancing delimiters, and returns the verbatim source.
// It stops before a comma or closer at the current nesting depth.
func (p *parser) captureOpaque() Value {
	start := p.current
	depth := 0

	for !p.isAtEnd() {
		switch p.peek().Type {
		case TOKEN_COMMA, TOKEN_SEMICOLON:
			if depth == 0 {
				return Opaque(p.rawSince(start))
			}
		case TOKEN_RPAREN, TOKEN_RBRACKET, TOKEN_RBRACE:
			if depth == 0 {
				return Opaque(p.rawSince(start))
			}
			depth--
		case TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_LBRACE:
			depth++
		}
		p.advance()
	}
	return Opaque(p.rawSince(start))
}

// --- field expressions ------------------------------------------------

// parseFieldExpr parses one field-map entry value. Well-formed builder
// chains yield a typed field; anything else yields an unknown-kind
// field carrying its verbatim source.
func (p *parser) parseFieldExpr() Field {
	start := p.current

	if f, ok := p.tryParseChain(); ok && p.atValueBoundary() {
		f.Raw = p.rawSince(start)
		return f
	}

	p.current = start
	v := p.captureOpaque()
	return Field{Kind: KindUnknown, Raw: v.Raw}
}

// tryParseChain parses a builder call chain: a dotted head followed by
// one or more calls, such as f.string().optional().meta({...}). The
// first recognized constructor decides the kind and contributes the
// arguments; optional and meta selectors are folded in wherever they
// appear.
func (p *parser) tryParseChain() (Field, bool) {
	if !p.check(TOKEN_IDENTIFIER) {
		return Field{}, false
	}
	p.advance()
	selector := p.previous().Lexeme

	f := Field{Kind: KindUnknown}
	sawCall := false
	var metaObj *Object

	for {
		if p.match(TOKEN_DOT) {
			tok := p.peek()
			switch tok.Type {
			case TOKEN_IDENTIFIER, TOKEN_DEFAULT, TOKEN_FROM:
				p.advance()
				selector = tok.Lexeme
				continue
			}
			return Field{}, false
		}

		if p.check(TOKEN_LPAREN) {
			args, ok := p.parseCallArgs()
			if !ok {
				return Field{}, false
			}
			sawCall = true

			if kind, recognized := constructorKinds[selector]; recognized && f.Kind == KindUnknown {
				f.Kind = kind
				f.Args = args
			}
			if optionalSelectors[selector] {
				f.Optional = true
			}
			if selector == "meta" && len(args) == 1 && args[0].Kind == ObjectValue {
				metaObj = args[0].Obj
			}
			selector = ""

			if p.check(TOKEN_DOT) || p.check(TOKEN_LPAREN) {
				continue
			}
			break
		}

		// A bare dotted path with no call is not a field expression
		return Field{}, false
	}

	if !sawCall {
		return Field{}, false
	}

	f.Metadata = filterMetadata(metaObj)
	return f, true
}

// parseCallArgs parses a call's argument list with per-arg opaque
// fallback.
func (p *parser) parseCallArgs() ([]Value, bool) {
	if !p.match(TOKEN_LPAREN) {
		return nil, false
	}

	args := make([]Value, 0, 2)
	for !p.check(TOKEN_RPAREN) && !p.isAtEnd() {
		args = append(args, p.parseValue())
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if !p.match(TOKEN_RPAREN) {
		return nil, false
	}
	return args, true
}

// filterMetadata keeps only the recognized metadata keys, preserving
// their declaration order. Unrecognized hint keys are dropped, not
// errors.
func filterMetadata(obj *Object) *Object {
	if obj == nil {
		return nil
	}
	out := &Object{}
	for _, m := range obj.Members {
		if metadataKeys[m.Key] {
			out.Members = append(out.Members, m)
		}
	}
	if len(out.Members) == 0 {
		return nil
	}
	return out
}
