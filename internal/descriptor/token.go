package descriptor

import "fmt"

// TokenType represents the type of token in a resource declaration file
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Structural keywords recognized in declaration files
	TOKEN_IMPORT
	TOKEN_EXPORT
	TOKEN_CONST
	TOKEN_DEFAULT
	TOKEN_FROM

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_STRING
	TOKEN_TEMPLATE
	TOKEN_NUMBER
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL
	TOKEN_UNDEFINED

	// Operators
	TOKEN_DOT       // .
	TOKEN_SPREAD    // ...
	TOKEN_COMMA     // ,
	TOKEN_COLON     // :
	TOKEN_SEMICOLON // ;
	TOKEN_EQUAL     // =
	TOKEN_FAT_ARROW // =>
	TOKEN_QUESTION  // ?
	TOKEN_BANG      // !
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_PERCENT   // %
	TOKEN_LESS      // <
	TOKEN_GREATER   // >
	TOKEN_AMPERSAND // &
	TOKEN_PIPE      // |

	// Delimiters
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
)

// Token represents a single lexical token
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // For literals (numbers, strings)
	Line    int
	Column  int
	File    string // Source file path
	Start   int    // Rune offset in source where token starts
	End     int    // Rune offset in source where token ends (exclusive)
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_IMPORT:
		return "IMPORT"
	case TOKEN_EXPORT:
		return "EXPORT"
	case TOKEN_CONST:
		return "CONST"
	case TOKEN_DEFAULT:
		return "DEFAULT"
	case TOKEN_FROM:
		return "FROM"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_TEMPLATE:
		return "TEMPLATE"
	case TOKEN_NUMBER:
		return "NUMBER"
	case TOKEN_TRUE:
		return "TRUE"
	case TOKEN_FALSE:
		return "FALSE"
	case TOKEN_NULL:
		return "NULL"
	case TOKEN_UNDEFINED:
		return "UNDEFINED"
	case TOKEN_DOT:
		return "DOT"
	case TOKEN_SPREAD:
		return "SPREAD"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_COLON:
		return "COLON"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_FAT_ARROW:
		return "FAT_ARROW"
	case TOKEN_QUESTION:
		return "QUESTION"
	case TOKEN_BANG:
		return "BANG"
	case TOKEN_PLUS:
		return "PLUS"
	case TOKEN_MINUS:
		return "MINUS"
	case TOKEN_STAR:
		return "STAR"
	case TOKEN_SLASH:
		return "SLASH"
	case TOKEN_PERCENT:
		return "PERCENT"
	case TOKEN_LESS:
		return "LESS"
	case TOKEN_GREATER:
		return "GREATER"
	case TOKEN_AMPERSAND:
		return "AMPERSAND"
	case TOKEN_PIPE:
		return "PIPE"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	case TOKEN_LBRACKET:
		return "LBRACKET"
	case TOKEN_RBRACKET:
		return "RBRACKET"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v) [%d:%d]", t.Type, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
