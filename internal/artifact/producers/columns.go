package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// Columns renders the table column definitions. Field declaration
// order is column order; fields hidden from tables by visibility
// metadata are left out.
func Columns(desc *descriptor.Descriptor) (string, bool) {
	g := &gen{}
	g.banner(desc)

	g.writeLine(`import type { ColumnDef } from "../lib/resource";`)
	g.writeLine("import type { %s } from \"../schemas/%s\";", desc.TypeName(), artifact.FileBase(desc))
	g.writeLine("")

	g.writeLine("export const %s: ColumnDef<%s>[] = [", artifact.ColumnsIdent(desc), desc.TypeName())
	g.in()
	for _, f := range desc.Fields {
		if hiddenInTable(f) {
			continue
		}
		g.writeLine("%s,", columnEntry(f))
	}
	g.out()
	g.writeLine("];")

	return g.String(), true
}

// hiddenInTable checks the visibility metadata hint
func hiddenInTable(f descriptor.Field) bool {
	switch f.Metadata.GetString("visibility", "") {
	case "form", "hidden":
		return true
	}
	return false
}

// columnEntry renders one column definition
func columnEntry(f descriptor.Field) string {
	members := []descriptor.Member{
		{Key: "key", Value: descriptor.Str(f.Name)},
		{Key: "header", Value: descriptor.Str(f.Label())},
	}

	if f.Sortable() {
		members = append(members, descriptor.Member{Key: "sortable", Value: descriptor.BoolVal(true)})
	}
	if f.Kind == descriptor.KindNumber {
		members = append(members, descriptor.Member{Key: "align", Value: descriptor.Str("right")})
	}
	if w, ok := f.Metadata.Get("width"); ok {
		members = append(members, descriptor.Member{Key: "width", Value: w})
	}

	if f.Filterable() {
		filter := filterSpec(f)
		members = append(members, descriptor.Member{Key: "filter", Value: filter})
	}

	if format, ok := f.Metadata.Get("format"); ok {
		// Format hints pass through verbatim, renderers included
		members = append(members, descriptor.Member{Key: "format", Value: format})
	}

	return descriptor.ObjectOf(members...).Source()
}

// filterSpec renders the filter configuration for a column
func filterSpec(f descriptor.Field) descriptor.Value {
	switch f.Kind {
	case descriptor.KindEnum:
		options := f.EnumOptions()
		values := make([]descriptor.Value, len(options))
		for i, o := range options {
			values[i] = descriptor.Str(o)
		}
		return descriptor.ObjectOf(
			descriptor.Member{Key: "kind", Value: descriptor.Str("select")},
			descriptor.Member{Key: "options", Value: descriptor.ListOf(values...)},
		)
	case descriptor.KindBoolean:
		return descriptor.ObjectOf(
			descriptor.Member{Key: "kind", Value: descriptor.Str("toggle")},
		)
	default:
		return descriptor.ObjectOf(
			descriptor.Member{Key: "kind", Value: descriptor.Str("text")},
		)
	}
}
