package wiring

import (
	"fmt"

	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/descriptor"
	utilstrings "github.com/armature-dev/armature/internal/util/strings"
)

// Hub locations under the admin app source root
const (
	HubSchemas     = "schemas/index.ts"
	HubCollections = "collections/index.ts"
	HubRegistry    = "registry.ts"
	HubStore       = "store/resources.ts"
	HubNavigation  = "navigation.ts"
)

// Marker comments anchoring entry insertion. These are matched
// literally; editors must keep them intact for merges to land.
const (
	MarkerSchemas     = "// <armature:schemas>"
	MarkerCollections = "// <armature:collections>"
	MarkerRegistry    = "// <armature:registry>"
	MarkerStore       = "// <armature:store>"
	MarkerNavigation  = "// <armature:nav>"
)

// DefaultTargets returns the five hubs in merge order
func DefaultTargets() []Target {
	return []Target{
		{
			Name:    "schemas",
			HubPath: HubSchemas,
			Marker:  MarkerSchemas,
			Probe:   func(d *descriptor.Descriptor) string { return fmt.Sprintf("%q", "./"+artifact.FileBase(d)) },
			Entry:   schemasEntry,
			Create: func(d *descriptor.Descriptor) string {
				return fmt.Sprintf(`// Schema barrel. New resources register below the marker; keep it in place.
%s
%s
`, MarkerSchemas, schemasEntry(d))
			},
		},
		{
			Name:    "collections",
			HubPath: HubCollections,
			Marker:  MarkerCollections,
			Probe:   func(d *descriptor.Descriptor) string { return fmt.Sprintf("%q", "./"+artifact.FileBase(d)) },
			Entry:   collectionsEntry,
			Create: func(d *descriptor.Descriptor) string {
				return fmt.Sprintf(`// Collection barrel. New resources register below the marker; keep it in place.
%s
%s
`, MarkerCollections, collectionsEntry(d))
			},
		},
		{
			Name:    "registry",
			HubPath: HubRegistry,
			Marker:  MarkerRegistry,
			Probe:   artifact.CollectionIdent,
			Entry:   registryEntry,
			Import:  registryImport,
			Create: func(d *descriptor.Descriptor) string {
				return fmt.Sprintf(`// Resource registry. New resources register below the marker; keep it in place.
%s

export const resourceRegistry = {
%s
%s
};

export type ResourceKey = keyof typeof resourceRegistry;
`, registryImport(d), "\t"+MarkerRegistry, registryEntry(d))
			},
		},
		{
			Name:    "store",
			HubPath: HubStore,
			Marker:  MarkerStore,
			Probe: func(d *descriptor.Descriptor) string {
				return "createResourceSlice(" + artifact.CollectionIdent(d) + ")"
			},
			Entry:  storeEntry,
			Import: storeImport,
			Create: func(d *descriptor.Descriptor) string {
				return fmt.Sprintf(`// Client state wiring. New resources register below the marker; keep it in place.
import { createResourceSlice } from "../lib/resource";
%s

export const resourceSlices = {
%s
%s
};
`, storeImport(d), "\t"+MarkerStore, storeEntry(d))
			},
		},
		{
			Name:    "navigation",
			HubPath: HubNavigation,
			Marker:  MarkerNavigation,
			Probe:   artifact.RoutesIdent,
			Entry:   navigationEntry,
			Import:  navigationImport,
			Create: func(d *descriptor.Descriptor) string {
				return fmt.Sprintf(`// Admin navigation. New resources register below the marker; keep it in place.
%s

export const navigation = [
%s
%s
];
`, navigationImport(d), "\t"+MarkerNavigation, navigationEntry(d))
			},
		},
	}
}

func schemasEntry(d *descriptor.Descriptor) string {
	return fmt.Sprintf("export * from %q;", "./"+artifact.FileBase(d))
}

func collectionsEntry(d *descriptor.Descriptor) string {
	return fmt.Sprintf("export * from %q;", "./"+artifact.FileBase(d))
}

func registryEntry(d *descriptor.Descriptor) string {
	return fmt.Sprintf("\t%s: %s,", utilstrings.ToCamelCase(d.Plural), artifact.CollectionIdent(d))
}

func registryImport(d *descriptor.Descriptor) string {
	return fmt.Sprintf("import { %s } from %q;", artifact.CollectionIdent(d), "./collections/"+artifact.FileBase(d))
}

func storeEntry(d *descriptor.Descriptor) string {
	return fmt.Sprintf("\t%s: createResourceSlice(%s),", utilstrings.ToCamelCase(d.Plural), artifact.CollectionIdent(d))
}

func storeImport(d *descriptor.Descriptor) string {
	return fmt.Sprintf("import { %s } from %q;", artifact.CollectionIdent(d), "../collections/"+artifact.FileBase(d))
}

func navigationEntry(d *descriptor.Descriptor) string {
	return fmt.Sprintf("\t{ label: %q, path: %q, routes: %s },",
		d.PluralLabel(), "/"+artifact.FileBase(d), artifact.RoutesIdent(d))
}

func navigationImport(d *descriptor.Descriptor) string {
	return fmt.Sprintf("import { %s } from %q;", artifact.RoutesIdent(d), "./routes/"+artifact.FileBase(d)+"-routes")
}
