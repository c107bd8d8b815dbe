package descriptor

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the restricted literal forms a declaration
// can carry.
type ValueKind int

const (
	StringValue ValueKind = iota
	NumberValue
	BoolValue
	ListValue
	ObjectValue
	// OpaqueValue holds source text the evaluator did not interpret.
	// It round-trips verbatim into generated output.
	OpaqueValue
)

// String returns the string representation of the value kind
func (k ValueKind) String() string {
	switch k {
	case StringValue:
		return "string"
	case NumberValue:
		return "number"
	case BoolValue:
		return "boolean"
	case ListValue:
		return "list"
	case ObjectValue:
		return "object"
	case OpaqueValue:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is the evaluated form of a declaration literal. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []Value
	Obj  *Object
	Raw  string // Verbatim source for opaque values
}

// Object is an ordered set of key/value members. Member order is
// semantic: field maps drive generated section and column order.
type Object struct {
	Members []Member
}

// Member is a single object entry
type Member struct {
	Key   string
	Value Value
}

// Str builds a string value
func Str(s string) Value {
	return Value{Kind: StringValue, Str: s}
}

// Num builds a number value
func Num(n float64) Value {
	return Value{Kind: NumberValue, Num: n}
}

// Bool builds a boolean value
func BoolVal(b bool) Value {
	return Value{Kind: BoolValue, Bool: b}
}

// ListOf builds a list value
func ListOf(items ...Value) Value {
	return Value{Kind: ListValue, List: items}
}

// ObjectOf builds an object value from ordered members
func ObjectOf(members ...Member) Value {
	return Value{Kind: ObjectValue, Obj: &Object{Members: members}}
}

// Opaque builds an uninterpreted value carrying its source text
func Opaque(raw string) Value {
	return Value{Kind: OpaqueValue, Raw: raw}
}

// Get returns the member value for key and whether it exists. Duplicate
// keys resolve to the last occurrence, matching host object semantics.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the object contains key
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the member keys in declaration order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// GetString returns the string member for key, or fallback when the
// key is absent or not a string literal.
func (o *Object) GetString(key, fallback string) string {
	v, ok := o.Get(key)
	if !ok || v.Kind != StringValue {
		return fallback
	}
	return v.Str
}

// GetNumber returns the numeric member for key, or fallback
func (o *Object) GetNumber(key string, fallback float64) float64 {
	v, ok := o.Get(key)
	if !ok || v.Kind != NumberValue {
		return fallback
	}
	return v.Num
}

// GetBool returns the boolean member for key, or fallback
func (o *Object) GetBool(key string, fallback bool) bool {
	v, ok := o.Get(key)
	if !ok || v.Kind != BoolValue {
		return fallback
	}
	return v.Bool
}

// Strings returns the value as a slice of strings when it is a list of
// string literals. Non-string elements are skipped.
func (v Value) Strings() []string {
	if v.Kind != ListValue {
		return nil
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind == StringValue {
			out = append(out, item.Str)
		}
	}
	return out
}

// Source renders the value back to declaration syntax. Interpreted
// values render canonically; opaque values emit their captured text
// unchanged.
func (v Value) Source() string {
	switch v.Kind {
	case StringValue:
		return quoteString(v.Str)
	case NumberValue:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case BoolValue:
		if v.Bool {
			return "true"
		}
		return "false"
	case ListValue:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.Source()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectValue:
		if v.Obj == nil || len(v.Obj.Members) == 0 {
			return "{}"
		}
		parts := make([]string, len(v.Obj.Members))
		for i, m := range v.Obj.Members {
			if m.Key == "" {
				// Spread and computed members render their captured text
				parts[i] = m.Value.Source()
			} else {
				parts[i] = RenderKey(m.Key) + ": " + m.Value.Source()
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case OpaqueValue:
		return v.Raw
	default:
		return "undefined"
	}
}

// quoteString renders a double-quoted declaration string literal
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderKey renders an object key for generated source, quoting it
// when it is not a plain identifier.
func RenderKey(key string) string {
	if isIdentifier(key) {
		return key
	}
	return quoteString(key)
}

// isIdentifier reports whether s is a plain identifier key
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
