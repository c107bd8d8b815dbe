package descriptor

// keywords maps the declaration-file keywords the scanner recognizes to
// their token types. Everything else scans as an identifier; the parser
// never needs the rest of the host language's keyword set.
var keywords = map[string]TokenType{
	"import":    TOKEN_IMPORT,
	"export":    TOKEN_EXPORT,
	"const":     TOKEN_CONST,
	"default":   TOKEN_DEFAULT,
	"from":      TOKEN_FROM,
	"true":      TOKEN_TRUE,
	"false":     TOKEN_FALSE,
	"null":      TOKEN_NULL,
	"undefined": TOKEN_UNDEFINED,
}

// lookupKeyword checks if an identifier is a keyword
func lookupKeyword(ident string) (TokenType, bool) {
	tokenType, ok := keywords[ident]
	return tokenType, ok
}
