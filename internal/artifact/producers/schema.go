package producers

import (
	"strings"

	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// Schema renders the zod schema module for a resource. Every field maps
// to a validator by kind; fields the extractor could not interpret map
// to z.unknown() with their declaration source alongside.
func Schema(desc *descriptor.Descriptor) (string, bool) {
	g := &gen{}
	g.banner(desc)

	g.writeLine(`import { z } from "zod";`)
	g.writeLine("")

	g.writeLine("export const %s = z.object({", artifact.SchemaIdent(desc))
	g.in()
	for _, f := range desc.Fields {
		g.writeLine("%s: %s,", descriptor.RenderKey(f.Name), zodExpr(f))
	}
	g.out()
	g.writeLine("});")
	g.writeLine("")

	g.writeLine("export type %s = z.infer<typeof %s>;", desc.TypeName(), artifact.SchemaIdent(desc))

	return g.String(), true
}

// zodExpr maps one field to its zod validator expression
func zodExpr(f descriptor.Field) string {
	var expr string

	switch f.Kind {
	case descriptor.KindString:
		expr = "z.string()"
	case descriptor.KindNumber:
		expr = "z.number()"
	case descriptor.KindBoolean:
		expr = "z.boolean()"
	case descriptor.KindEnum:
		options := f.EnumOptions()
		if len(options) == 0 {
			expr = "z.string()"
		} else {
			quoted := make([]string, len(options))
			for i, o := range options {
				quoted[i] = quote(o)
			}
			expr = "z.enum([" + strings.Join(quoted, ", ") + "])"
		}
	case descriptor.KindArray:
		expr = "z.array(" + elementSchema(f) + ")"
	case descriptor.KindObject:
		expr = "z.record(z.unknown())"
	default:
		// Uninterpreted declaration; keep the source visible for the
		// developer refining the generated schema.
		expr = "z.unknown() /* " + f.Raw + " */"
	}

	if f.Optional {
		expr += ".optional()"
	}
	return expr
}

// elementSchema maps a recognized array element constructor when the
// argument itself names a plain kind, and falls back to z.unknown().
func elementSchema(f descriptor.Field) string {
	for _, arg := range f.Args {
		if arg.Kind != descriptor.OpaqueValue {
			continue
		}
		raw := arg.Raw
		switch {
		case strings.Contains(raw, ".string("), strings.Contains(raw, ".text("):
			return "z.string()"
		case strings.Contains(raw, ".number("), strings.Contains(raw, ".int("), strings.Contains(raw, ".float("):
			return "z.number()"
		case strings.Contains(raw, ".boolean("), strings.Contains(raw, ".bool("):
			return "z.boolean()"
		}
	}
	return "z.unknown()"
}
