package artifact

import (
	"github.com/armature-dev/armature/internal/descriptor"
	utilstrings "github.com/armature-dev/armature/internal/util/strings"
)

// Destination layout under the admin app source root. Hub probes and
// generated import lines derive from the same helpers, so a path change
// here propagates everywhere consistently.

// FileBase returns the file stem for plural-named artifacts
func FileBase(desc *descriptor.Descriptor) string {
	return utilstrings.ToKebabCase(desc.Plural)
}

// FormFileBase returns the file stem for singular-named artifacts
func FormFileBase(desc *descriptor.Descriptor) string {
	return utilstrings.ToKebabCase(desc.Name)
}

// SchemaPath is the schema artifact destination
func SchemaPath(desc *descriptor.Descriptor) string {
	return "schemas/" + FileBase(desc) + ".ts"
}

// CollectionPath is the collection artifact destination
func CollectionPath(desc *descriptor.Descriptor) string {
	return "collections/" + FileBase(desc) + ".ts"
}

// ColumnsPath is the table columns artifact destination
func ColumnsPath(desc *descriptor.Descriptor) string {
	return "tables/" + FileBase(desc) + "-columns.tsx"
}

// FormPath is the form artifact destination
func FormPath(desc *descriptor.Descriptor) string {
	return "forms/" + FormFileBase(desc) + "-form.tsx"
}

// RoutesPath is the routes artifact destination
func RoutesPath(desc *descriptor.Descriptor) string {
	return "routes/" + FileBase(desc) + "-routes.tsx"
}

// ChartsPath is the analytics artifact destination
func ChartsPath(desc *descriptor.Descriptor) string {
	return "charts/" + FileBase(desc) + "-charts.tsx"
}

// SchemaIdent is the exported schema identifier
func SchemaIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Plural) + "Schema"
}

// CollectionIdent is the exported collection identifier
func CollectionIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Plural) + "Collection"
}

// ColumnsIdent is the exported column list identifier
func ColumnsIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Plural) + "Columns"
}

// FormIdent is the exported form field list identifier
func FormIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Name) + "FormFields"
}

// RoutesIdent is the exported route table identifier
func RoutesIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Plural) + "Routes"
}

// ChartsIdent is the exported chart list identifier
func ChartsIdent(desc *descriptor.Descriptor) string {
	return utilstrings.ToCamelCase(desc.Plural) + "Charts"
}
