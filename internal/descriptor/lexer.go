package descriptor

import (
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes resource declaration source. It covers the literal
// subset the extractor evaluates plus enough of the host syntax that
// arbitrary surrounding code scans without cascading errors.
type Lexer struct {
	source      []rune // Source as runes for Unicode support
	start       int    // Start position of current token
	current     int    // Current position in source
	line        int    // Current line number
	column      int    // Current column number
	startColumn int    // Column where current token started
	startLine   int    // Line where current token started
	file        string // Source file path
	tokens      []Token
	errors      []LexError
}

// NewLexer creates a Lexer for the given declaration source
func NewLexer(source, file string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		start:       0,
		current:     0,
		line:        1,
		column:      0, // Runes consumed on the current line
		startColumn: 1,
		startLine:   1,
		file:        file,
		tokens:      make([]Token, 0, len(source)/8),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column + 1
		l.startLine = l.line
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column + 1,
		File:   l.file,
		Start:  l.current,
		End:    l.current,
	})

	return l.tokens, l.errors
}

// Source returns the scanned source as runes. Token Start/End offsets
// index into this slice; verbatim capture slices it directly.
func (l *Lexer) Source() []rune {
	return l.source
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TOKEN_LPAREN, nil)
	case ')':
		l.addToken(TOKEN_RPAREN, nil)
	case '{':
		l.addToken(TOKEN_LBRACE, nil)
	case '}':
		l.addToken(TOKEN_RBRACE, nil)
	case '[':
		l.addToken(TOKEN_LBRACKET, nil)
	case ']':
		l.addToken(TOKEN_RBRACKET, nil)
	case ',':
		l.addToken(TOKEN_COMMA, nil)
	case ':':
		l.addToken(TOKEN_COLON, nil)
	case ';':
		l.addToken(TOKEN_SEMICOLON, nil)
	case '?':
		l.addToken(TOKEN_QUESTION, nil)
	case '!':
		l.addToken(TOKEN_BANG, nil)
	case '+':
		l.addToken(TOKEN_PLUS, nil)
	case '-':
		l.addToken(TOKEN_MINUS, nil)
	case '*':
		l.addToken(TOKEN_STAR, nil)
	case '%':
		l.addToken(TOKEN_PERCENT, nil)
	case '<':
		l.addToken(TOKEN_LESS, nil)
	case '>':
		l.addToken(TOKEN_GREATER, nil)
	case '&':
		l.addToken(TOKEN_AMPERSAND, nil)
	case '|':
		l.addToken(TOKEN_PIPE, nil)

	case '=':
		if l.match('>') {
			l.addToken(TOKEN_FAT_ARROW, nil)
		} else {
			// == and === collapse to EQUAL; the evaluator treats any
			// expression containing them as opaque anyway.
			l.match('=')
			l.match('=')
			l.addToken(TOKEN_EQUAL, nil)
		}

	case '.':
		if l.peek() == '.' && l.peekNext() == '.' {
			l.advance()
			l.advance()
			l.addToken(TOKEN_SPREAD, nil)
		} else if l.isDigit(l.peek()) {
			// Decimal point of a float with no leading digit
			l.current--
			l.column--
			l.scanNumber()
		} else {
			l.addToken(TOKEN_DOT, nil)
		}

	case '/':
		if l.match('/') {
			l.scanLineComment()
		} else if l.match('*') {
			l.scanBlockComment()
		} else {
			l.addToken(TOKEN_SLASH, nil)
		}

	case '"', '\'':
		l.scanString(r)

	case '`':
		l.scanTemplate()

	case ' ', '\r', '\t':
		break

	case '\n':
		l.line++
		l.column = 0

	default:
		if l.isDigit(r) {
			l.scanNumber()
		} else if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("Unexpected character: " + string(r))
		}
	}
}

// scanLineComment consumes a // comment through end of line
func (l *Lexer) scanLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanBlockComment consumes a /* */ comment, tracking newlines
func (l *Lexer) scanBlockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.advance()
	}
	l.addError("Unterminated block comment")
}

// scanString scans a single- or double-quoted string literal
func (l *Lexer) scanString(quote rune) {
	startLine := l.line
	var builder strings.Builder

	for !l.isAtEnd() && l.peek() != quote {
		if l.peek() == '\n' {
			// Host strings do not span lines; tolerate it rather than
			// cascade, the evaluator only sees well-formed literals.
			l.line++
			l.column = 0
		}

		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				l.addError("Unterminated string")
				return
			}

			escaped := l.advance()
			switch escaped {
			case 'n':
				builder.WriteRune('\n')
			case 't':
				builder.WriteRune('\t')
			case 'r':
				builder.WriteRune('\r')
			case '\\':
				builder.WriteRune('\\')
			case '\'':
				builder.WriteRune('\'')
			case '"':
				builder.WriteRune('"')
			case '`':
				builder.WriteRune('`')
			case '0':
				builder.WriteRune(0)
			case 'u':
				l.scanUnicodeEscape(&builder)
			default:
				builder.WriteRune('\\')
				builder.WriteRune(escaped)
			}
		} else {
			builder.WriteRune(l.advance())
		}
	}

	if l.isAtEnd() {
		l.addError("Unterminated string starting at line " + strconv.Itoa(startLine))
		return
	}

	l.advance() // closing quote
	l.addToken(TOKEN_STRING, builder.String())
}

// scanUnicodeEscape handles \uXXXX and \u{...} forms inside strings
func (l *Lexer) scanUnicodeEscape(builder *strings.Builder) {
	var hex strings.Builder
	if l.peek() == '{' {
		l.advance()
		for !l.isAtEnd() && l.peek() != '}' {
			hex.WriteRune(l.advance())
		}
		if !l.isAtEnd() {
			l.advance()
		}
	} else {
		for i := 0; i < 4 && !l.isAtEnd(); i++ {
			hex.WriteRune(l.advance())
		}
	}

	code, err := strconv.ParseInt(hex.String(), 16, 32)
	if err != nil {
		builder.WriteString("\\u" + hex.String())
		return
	}
	builder.WriteRune(rune(code))
}

// scanTemplate scans a backtick template literal. The raw body is kept
// as the literal; templates with interpolation fall out of the literal
// grammar and the evaluator captures them verbatim.
func (l *Lexer) scanTemplate() {
	startLine := l.line
	var builder strings.Builder

	for !l.isAtEnd() && l.peek() != '`' {
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		if l.peek() == '\\' {
			builder.WriteRune(l.advance())
			if l.isAtEnd() {
				break
			}
		}
		builder.WriteRune(l.advance())
	}

	if l.isAtEnd() {
		l.addError("Unterminated template literal starting at line " + strconv.Itoa(startLine))
		return
	}

	l.advance() // closing backtick
	l.addToken(TOKEN_TEMPLATE, builder.String())
}

// scanNumber scans a numeric literal. Declaration numbers carry host
// semantics, so every numeric token holds a float64.
func (l *Lexer) scanNumber() {
	for l.isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' && l.isDigit(l.peekNext()) {
		l.advance()
		for l.isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !l.isDigit(l.peek()) {
			l.addError("Invalid scientific notation")
			return
		}
		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := string(l.source[l.start:l.current])
	cleanLexeme := strings.ReplaceAll(lexeme, "_", "")

	value, err := strconv.ParseFloat(cleanLexeme, 64)
	if err != nil {
		l.addError("Invalid number literal: " + err.Error())
		return
	}
	l.addToken(TOKEN_NUMBER, value)
}

// scanIdentifier scans an identifier or keyword
func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) || l.peek() == '$' {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])

	if tokenType, isKeyword := lookupKeyword(lexeme); isKeyword {
		l.addToken(tokenType, nil)
		return
	}

	l.addToken(TOKEN_IDENTIFIER, lexeme)
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

// match consumes the current character if it equals expected
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	if l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// peek returns the current character without consuming it
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming it
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// isDigit checks if a rune is a digit
func (l *Lexer) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha checks if a rune is alphabetic or underscore
func (l *Lexer) isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isAlphaNumeric checks if a rune is alphanumeric or underscore
func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || l.isDigit(r)
}

// addToken adds a token to the token list
func (l *Lexer) addToken(tokenType TokenType, literal interface{}) {
	lexeme := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    l.startLine,
		Column:  l.startColumn,
		File:    l.file,
		Start:   l.start,
		End:     l.current,
	})
}

// addError adds an error to the error list
func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.column,
		File:    l.file,
	})
}
