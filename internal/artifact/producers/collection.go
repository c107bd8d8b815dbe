package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// configKeysHandled are the config entries the collection producer
// emits itself. Every other config member is passed through verbatim in
// declaration order, opaque source included.
var configKeysHandled = map[string]bool{
	"name":       true,
	"pluralName": true,
	"label":      true,
	"analytics":  true,
}

// Collection renders the runtime collection module that binds the
// schema, the preserved config, and the field descriptors together.
func Collection(desc *descriptor.Descriptor) (string, bool) {
	g := &gen{}
	g.banner(desc)

	g.writeLine(`import { defineCollection } from "../lib/resource";`)
	g.writeLine("import { %s } from \"../schemas/%s\";", artifact.SchemaIdent(desc), artifact.FileBase(desc))
	g.writeLine("")

	g.writeLine("export const %s = defineCollection({", artifact.CollectionIdent(desc))
	g.in()
	g.writeLine("name: %s,", quote(desc.Name))
	g.writeLine("pluralName: %s,", quote(desc.Plural))
	g.writeLine("label: %s,", quote(desc.Label()))
	g.writeLine("schema: %s,", artifact.SchemaIdent(desc))

	for _, m := range desc.Config.Members {
		if m.Key != "" && configKeysHandled[m.Key] {
			continue
		}
		if m.Key == "" {
			g.writeLine("%s,", m.Value.Source())
			continue
		}
		g.writeLine("%s: %s,", descriptor.RenderKey(m.Key), m.Value.Source())
	}

	g.writeLine("fields: [")
	g.in()
	for _, f := range desc.Fields {
		g.writeLine("%s,", fieldDescriptor(f))
	}
	g.out()
	g.writeLine("],")

	g.out()
	g.writeLine("});")

	return g.String(), true
}

// fieldDescriptor renders one runtime field descriptor entry
func fieldDescriptor(f descriptor.Field) string {
	members := []descriptor.Member{
		{Key: "name", Value: descriptor.Str(f.Name)},
		{Key: "kind", Value: descriptor.Str(string(f.Kind))},
		{Key: "label", Value: descriptor.Str(f.Label())},
	}

	if f.Optional {
		members = append(members, descriptor.Member{Key: "optional", Value: descriptor.BoolVal(true)})
	}

	options := f.EnumOptions()
	if len(options) != 0 {
		values := make([]descriptor.Value, len(options))
		for i, o := range options {
			values[i] = descriptor.Str(o)
		}
		members = append(members, descriptor.Member{Key: "options", Value: descriptor.ListOf(values...)})
	}

	if f.Metadata != nil {
		for _, m := range f.Metadata.Members {
			if m.Key == "label" {
				continue // already emitted above
			}
			// Metadata options only apply when the constructor carried
			// none, e.g. an enum over an imported identifier.
			if m.Key == "options" && len(options) != 0 {
				continue
			}
			members = append(members, m)
		}
	}

	if f.Kind == descriptor.KindUnknown && f.Raw != "" {
		members = append(members, descriptor.Member{Key: "source", Value: descriptor.Str(f.Raw)})
	}

	return descriptor.ObjectOf(members...).Source()
}
