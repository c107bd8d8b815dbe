package producers

import (
	"github.com/armature-dev/armature/internal/artifact"
)

// Default builds the standard producer registry. Registration order is
// execution order: schema first, since later artifacts import it.
func Default() *artifact.Registry {
	r := artifact.NewRegistry()
	r.Register(artifact.KindSchema, artifact.SchemaPath, Schema)
	r.Register(artifact.KindCollection, artifact.CollectionPath, Collection)
	r.Register(artifact.KindColumns, artifact.ColumnsPath, Columns)
	r.Register(artifact.KindForm, artifact.FormPath, Form)
	r.Register(artifact.KindRoutes, artifact.RoutesPath, Routes)
	r.Register(artifact.KindAnalytics, artifact.ChartsPath, Charts)
	return r
}
