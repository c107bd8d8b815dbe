package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// Form renders the form field list. Inputs come from the input
// metadata hint when present, otherwise from the field kind.
func Form(desc *descriptor.Descriptor) (string, bool) {
	g := &gen{}
	g.banner(desc)

	g.writeLine(`import type { FormField } from "../lib/resource";`)
	g.writeLine("")

	g.writeLine("export const %s: FormField[] = [", artifact.FormIdent(desc))
	g.in()
	for _, f := range desc.Fields {
		if hiddenInForm(f) {
			continue
		}
		g.writeLine("%s,", formEntry(f))
	}
	g.out()
	g.writeLine("];")

	return g.String(), true
}

// hiddenInForm checks the visibility metadata hint
func hiddenInForm(f descriptor.Field) bool {
	switch f.Metadata.GetString("visibility", "") {
	case "table", "hidden":
		return true
	}
	return false
}

// inputForKind derives the default input widget for a field kind
func inputForKind(kind descriptor.Kind) string {
	switch kind {
	case descriptor.KindString:
		return "text"
	case descriptor.KindNumber:
		return "number"
	case descriptor.KindBoolean:
		return "checkbox"
	case descriptor.KindEnum:
		return "select"
	case descriptor.KindArray:
		return "tags"
	case descriptor.KindObject:
		return "json"
	default:
		return "custom"
	}
}

// formEntry renders one form field definition
func formEntry(f descriptor.Field) string {
	members := []descriptor.Member{
		{Key: "name", Value: descriptor.Str(f.Name)},
		{Key: "label", Value: descriptor.Str(f.Label())},
		{Key: "input", Value: descriptor.Str(f.Metadata.GetString("input", inputForKind(f.Kind)))},
	}

	if !f.Optional {
		members = append(members, descriptor.Member{Key: "required", Value: descriptor.BoolVal(true)})
	}

	if options := f.EnumOptions(); len(options) != 0 {
		values := make([]descriptor.Value, len(options))
		for i, o := range options {
			values[i] = descriptor.Str(o)
		}
		members = append(members, descriptor.Member{Key: "options", Value: descriptor.ListOf(values...)})
	}

	for _, key := range []string{"placeholder", "help", "relation", "unit"} {
		if v, ok := f.Metadata.Get(key); ok {
			members = append(members, descriptor.Member{Key: key, Value: v})
		}
	}

	if f.Kind == descriptor.KindUnknown && f.Raw != "" {
		members = append(members, descriptor.Member{Key: "source", Value: descriptor.Str(f.Raw)})
	}

	return descriptor.ObjectOf(members...).Source()
}
