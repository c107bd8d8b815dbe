package strings

import (
	"strings"
	"unicode"
)

// ToPascalCase converts an identifier to PascalCase
// (invoice_line -> InvoiceLine, createdAt -> CreatedAt)
func ToPascalCase(s string) string {
	var result strings.Builder
	upperNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			upperNext = true
			continue
		}
		if upperNext {
			result.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ToCamelCase converts an identifier to camelCase
// (invoice_line -> invoiceLine, InvoiceLine -> invoiceLine)
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return pascal
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToKebabCase converts an identifier to kebab-case
// Handles acronyms properly (HTTPRequest -> http-request)
func ToKebabCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if r == '_' || r == ' ' {
			result.WriteRune('-')
			continue
		}
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				// Break before an uppercase letter if the previous char
				// is lowercase, or the next one is (HTTPRequest).
				if unicode.IsLower(prev) {
					result.WriteRune('-')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) && prev != '-' && prev != '_' {
					result.WriteRune('-')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Humanize converts an identifier to a display label
// (createdAt -> Created At, invoice_total -> Invoice Total)
func Humanize(s string) string {
	var words []string
	var current strings.Builder
	runes := []rune(s)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				flush()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
