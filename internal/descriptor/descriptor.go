package descriptor

import (
	"sort"

	utilstrings "github.com/armature-dev/armature/internal/util/strings"
)

// Kind is the base data kind of a declared field, inferred from the
// first recognized constructor in its modifier chain.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	// KindUnknown marks fields whose expression fell outside the
	// restricted grammar; Raw carries the verbatim source.
	KindUnknown Kind = "unknown"
)

// constructorKinds maps recognized builder constructors to base kinds.
// The first chain call whose selector appears here decides the field
// kind. The mapping is a heuristic over the builder vocabulary, not an
// interpretation of the builder library.
var constructorKinds = map[string]Kind{
	"string":   KindString,
	"text":     KindString,
	"id":       KindString,
	"date":     KindString,
	"datetime": KindString,
	"number":   KindNumber,
	"int":      KindNumber,
	"integer":  KindNumber,
	"float":    KindNumber,
	"money":    KindNumber,
	"boolean":  KindBoolean,
	"bool":     KindBoolean,
	"enum":     KindEnum,
	"array":    KindArray,
	"list":     KindArray,
	"object":   KindObject,
	"json":     KindObject,
	"shape":    KindObject,
}

// optionalSelectors are chain calls that mark a field optional
var optionalSelectors = map[string]bool{
	"optional": true,
	"nullable": true,
}

// metadataKeys is the recognized metadata vocabulary. Unrecognized
// metadata keys are dropped; config keys behave the opposite way and
// are preserved verbatim.
var metadataKeys = map[string]bool{
	"label":       true,
	"input":       true,
	"placeholder": true,
	"help":        true,
	"visibility":  true,
	"sortable":    true,
	"filterable":  true,
	"searchable":  true,
	"relation":    true,
	"options":     true,
	"format":      true,
	"width":       true,
	"unit":        true,
}

// configKeys is the interpreted config vocabulary. The config object is
// an open bag, so this list drives tooling completion only, never
// validation.
var configKeys = []string{
	"name",
	"label",
	"pluralName",
	"pluralLabel",
	"icon",
	"description",
	"source",
	"query",
	"searchFields",
	"defaultSort",
	"pageSize",
	"form",
	"table",
	"analytics",
}

// ConfigKeys returns the interpreted config vocabulary in declaration
// completion order.
func ConfigKeys() []string {
	return append([]string(nil), configKeys...)
}

// MetadataKeys returns the recognized metadata vocabulary, sorted.
func MetadataKeys() []string {
	keys := make([]string, 0, len(metadataKeys))
	for k := range metadataKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConstructorNames returns the recognized type-constructor names, sorted.
func ConstructorNames() []string {
	names := make([]string, 0, len(constructorKinds))
	for name := range constructorKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptor is the extracted model of one resource declaration. It is
// built once per run, consumed synchronously, and never persisted.
type Descriptor struct {
	Name   string  // Singular resource identifier
	Plural string  // pluralName config override, or Name + "s"
	Config *Object // Full config object, declaration order, open keys
	Fields []Field // Declaration order
	File   string  // Origin path, for diagnostics
}

// Field is one entry of the declaration's field map
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	Args     []Value // Evaluated head-constructor arguments
	Metadata *Object // Recognized metadata keys only
	Raw      string  // Verbatim source of the whole field expression
}

// Label returns the display label for the resource: the label config
// entry when present, otherwise the humanized name.
func (d *Descriptor) Label() string {
	return d.Config.GetString("label", utilstrings.Humanize(d.Name))
}

// PluralLabel returns the display label for resource collections
func (d *Descriptor) PluralLabel() string {
	return d.Config.GetString("pluralLabel", utilstrings.Humanize(d.Plural))
}

// TypeName returns the generated type identifier for the resource
func (d *Descriptor) TypeName() string {
	return utilstrings.ToPascalCase(d.Name)
}

// HasAnalytics reports whether the declaration opts into chart output
func (d *Descriptor) HasAnalytics() bool {
	v, ok := d.Config.Get("analytics")
	if !ok {
		return false
	}
	if v.Kind == BoolValue {
		return v.Bool
	}
	return v.Kind == ObjectValue || v.Kind == ListValue
}

// SearchFields returns the configured search field names
func (d *Descriptor) SearchFields() []string {
	v, ok := d.Config.Get("searchFields")
	if !ok {
		return nil
	}
	return v.Strings()
}

// FieldByName returns the named field and whether it exists
func (d *Descriptor) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the display label for a field: the metadata label when
// present, otherwise the humanized field name.
func (f Field) Label() string {
	return f.Metadata.GetString("label", utilstrings.Humanize(f.Name))
}

// EnumOptions returns the option strings of an enum field. The first
// list-shaped constructor argument supplies them.
func (f Field) EnumOptions() []string {
	for _, arg := range f.Args {
		if arg.Kind == ListValue {
			return arg.Strings()
		}
	}
	return nil
}

// Sortable reports whether a field participates in column sorting.
// Fields are sortable unless metadata opts out; unknown-kind fields
// are not sortable.
func (f Field) Sortable() bool {
	if f.Kind == KindUnknown || f.Kind == KindObject || f.Kind == KindArray {
		return false
	}
	return f.Metadata.GetBool("sortable", true)
}

// Filterable reports whether a field is offered as a table filter
func (f Field) Filterable() bool {
	if f.Kind == KindEnum || f.Kind == KindBoolean {
		return f.Metadata.GetBool("filterable", true)
	}
	return f.Metadata.GetBool("filterable", false)
}
