package descriptor

import (
	"fmt"

	"github.com/armature-dev/armature/internal/diag"
)

// DefaultFactory is the call name the extractor looks for when no
// override is configured.
const DefaultFactory = "defineResource"

// Options configures extraction
type Options struct {
	Factory string // Factory call name; DefaultFactory when empty
}

// Extract statically evaluates declaration source into a Descriptor.
// The source must contain exactly one factory call with exactly two
// positional arguments: a config object literal and a field map object
// literal. The declaration is never executed.
func Extract(source, file string, opts Options) (*Descriptor, error) {
	factory := opts.Factory
	if factory == "" {
		factory = DefaultFactory
	}

	lex := NewLexer(source, file)
	tokens, _ := lex.ScanTokens()
	// Lex errors outside the call are tolerated; breakage inside it
	// surfaces as a structural failure below.

	sites := callSites(tokens, factory)
	if len(sites) == 0 {
		return nil, diag.Invalid("no "+factory+" call found", diag.Location{File: file})
	}
	if len(sites) > 1 {
		tok := tokens[sites[1]]
		return nil, diag.Invalid(
			fmt.Sprintf("expected exactly one %s call, found %d", factory, len(sites)),
			diag.Location{File: file, Line: tok.Line, Column: tok.Column, Length: len(tok.Lexeme)})
	}

	p := newParser(tokens, lex.Source(), file)
	p.current = sites[0]
	callTok := p.advance() // factory identifier
	p.advance()            // opening paren

	config, ok := p.parseObject()
	if !ok {
		return nil, p.takeErr("the first argument must be a config object literal", callTok)
	}

	if !p.match(TOKEN_COMMA) {
		return nil, diag.Invalid(factory+" requires (config, fields) arguments", p.locationOf(p.peek()))
	}

	fields, ok := p.parseFieldMap()
	if !ok {
		return nil, p.takeErr("the second argument must be a field map object literal", callTok)
	}

	p.match(TOKEN_COMMA) // trailing comma tolerated
	if !p.match(TOKEN_RPAREN) {
		return nil, diag.Invalid(
			fmt.Sprintf("%s takes exactly 2 arguments", factory), p.locationOf(p.peek()))
	}

	name := ""
	if v, found := config.Get("name"); found && v.Kind == StringValue {
		name = v.Str
	}
	if name == "" {
		return nil, diag.Invalid("resource config must declare a non-empty name string", p.locationOf(callTok))
	}

	return &Descriptor{
		Name:   name,
		Plural: config.GetString("pluralName", name+"s"),
		Config: config,
		Fields: fields,
		File:   file,
	}, nil
}

// callSites returns the token indices of factory call heads
func callSites(tokens []Token, factory string) []int {
	var sites []int
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Type == TOKEN_IDENTIFIER &&
			tokens[i].Lexeme == factory &&
			tokens[i+1].Type == TOKEN_LPAREN {
			sites = append(sites, i)
		}
	}
	return sites
}

// parseFieldMap parses the second factory argument. Every entry must be
// a named property; the entry value goes through the tolerant field
// expression parser.
func (p *parser) parseFieldMap() ([]Field, bool) {
	if !p.match(TOKEN_LBRACE) {
		p.addError("the second argument must be a field map object literal")
		return nil, false
	}

	fields := make([]Field, 0, 8)
	for !p.check(TOKEN_RBRACE) && !p.isAtEnd() {
		if p.check(TOKEN_SPREAD) || p.check(TOKEN_LBRACKET) {
			p.addError("field map entries must be named properties")
			return nil, false
		}

		key, ok := p.parseMemberKey()
		if !ok || key == "" {
			p.addError("field name is not extractable")
			return nil, false
		}
		if !p.match(TOKEN_COLON) {
			p.addError("field " + key + " must use key: expression form")
			return nil, false
		}

		f := p.parseFieldExpr()
		f.Name = key
		fields = append(fields, f)

		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if !p.match(TOKEN_RBRACE) {
		p.addError("unterminated field map")
		return nil, false
	}
	return fields, true
}

// takeErr returns the parser's sticky structural error, or a fallback
// diagnostic anchored at the given token.
func (p *parser) takeErr(fallback string, tok Token) error {
	if p.err != nil {
		return *p.err
	}
	return diag.Invalid(fallback, p.locationOf(tok))
}

// Diagnose runs extraction for editor tooling, mapping every problem to
// a diagnostic instead of a single error return. Lexical issues arrive
// as warnings alongside at most one extraction error.
func Diagnose(source, file string, opts Options) []diag.Diagnostic {
	var out []diag.Diagnostic

	lex := NewLexer(source, file)
	_, lexErrs := lex.ScanTokens()
	for _, le := range lexErrs {
		out = append(out, diag.New("extract", diag.CodeInvalidDescriptor, le.Message,
			diag.Location{File: le.File, Line: le.Line, Column: le.Column}, diag.Warning))
	}

	if _, err := Extract(source, file, opts); err != nil {
		if d, ok := err.(diag.Diagnostic); ok {
			out = append(out, d)
		} else {
			out = append(out, diag.Invalid(err.Error(), diag.Location{File: file}))
		}
	}
	return out
}
