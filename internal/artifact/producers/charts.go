package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// Charts renders the analytics module. Resources without an analytics
// config entry produce nothing; the plan entry is skipped silently.
func Charts(desc *descriptor.Descriptor) (string, bool) {
	if !desc.HasAnalytics() {
		return "", false
	}

	g := &gen{}
	g.banner(desc)

	g.writeLine(`import { defineCharts } from "../lib/resource";`)
	g.writeLine("import { %s } from \"../collections/%s\";", artifact.CollectionIdent(desc), artifact.FileBase(desc))
	g.writeLine("")

	g.writeLine("export const %s = defineCharts(%s, %s);",
		artifact.ChartsIdent(desc), artifact.CollectionIdent(desc), chartSpec(desc))

	return g.String(), true
}

// chartSpec renders the chart list from the analytics config entry.
// Object and list entries pass through as declared; a bare true gets
// the default count chart.
func chartSpec(desc *descriptor.Descriptor) string {
	v, _ := desc.Config.Get("analytics")

	switch v.Kind {
	case descriptor.ListValue, descriptor.ObjectValue, descriptor.OpaqueValue:
		spec := v.Source()
		if v.Kind == descriptor.ObjectValue {
			spec = "[" + spec + "]"
		}
		return spec
	default:
		return `[{ kind: "count", label: ` + quote(desc.PluralLabel()) + ` }]`
	}
}
