package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
)

// Routes renders the route table binding the collection, columns, and
// form modules to URL paths.
func Routes(desc *descriptor.Descriptor) (string, bool) {
	g := &gen{}
	g.banner(desc)

	g.writeLine(`import { defineRoutes } from "../lib/resource";`)
	g.writeLine("import { %s } from \"../collections/%s\";", artifact.CollectionIdent(desc), artifact.FileBase(desc))
	g.writeLine("import { %s } from \"../tables/%s-columns\";", artifact.ColumnsIdent(desc), artifact.FileBase(desc))
	g.writeLine("import { %s } from \"../forms/%s-form\";", artifact.FormIdent(desc), artifact.FormFileBase(desc))
	g.writeLine("")

	g.writeLine("export const %s = defineRoutes(%s, {", artifact.RoutesIdent(desc), artifact.CollectionIdent(desc))
	g.in()
	g.writeLine("base: %s,", quote("/"+artifact.FileBase(desc)))
	g.writeLine("columns: %s,", artifact.ColumnsIdent(desc))
	g.writeLine("form: %s,", artifact.FormIdent(desc))
	g.writeLine("list: true,")
	g.writeLine("detail: true,")
	g.writeLine("create: true,")
	g.writeLine("edit: true,")
	g.out()
	g.writeLine("});")

	return g.String(), true
}
