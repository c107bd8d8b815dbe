// Package artifact plans and executes the per-resource output files.
// Producers are pure functions of the descriptor; planning resolves
// destination paths; execution funnels every write through the safe
// writer and collects outcomes instead of aborting.
package artifact

import (
	"github.com/armature-dev/armature/internal/descriptor"
	"github.com/armature-dev/armature/internal/diag"
	"github.com/armature-dev/armature/internal/writer"
)

// Kind identifies one artifact family
type Kind string

const (
	KindSchema     Kind = "schema"
	KindCollection Kind = "collection"
	KindColumns    Kind = "columns"
	KindForm       Kind = "form"
	KindRoutes     Kind = "routes"
	KindAnalytics  Kind = "analytics"
)

// Producer renders the artifact body for a descriptor. A false return
// means the artifact does not apply to this resource; the plan entry is
// skipped without an output line.
type Producer func(desc *descriptor.Descriptor) (string, bool)

// PathFunc resolves the destination path for a descriptor, relative to
// the admin app source root.
type PathFunc func(desc *descriptor.Descriptor) string

// Artifact is one planned output file
type Artifact struct {
	Kind    Kind
	Path    string
	Produce Producer
}

// Registry holds producers in their fixed execution order
type Registry struct {
	entries []registration
}

type registration struct {
	kind    Kind
	path    PathFunc
	produce Producer
}

// NewRegistry creates an empty producer registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a producer for a kind. Registration order is
// execution order.
func (r *Registry) Register(kind Kind, path PathFunc, produce Producer) {
	r.entries = append(r.entries, registration{kind: kind, path: path, produce: produce})
}

// Kinds returns the registered kinds in order
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, len(r.entries))
	for i, e := range r.entries {
		kinds[i] = e.kind
	}
	return kinds
}

// Has reports whether a kind is registered
func (r *Registry) Has(kind Kind) bool {
	for _, e := range r.entries {
		if e.kind == kind {
			return true
		}
	}
	return false
}

// Plan enumerates the artifacts to produce for a descriptor. An empty
// only selects every kind. An unknown only yields an empty plan rather
// than an error.
func (r *Registry) Plan(desc *descriptor.Descriptor, only string) []Artifact {
	plan := make([]Artifact, 0, len(r.entries))
	for _, e := range r.entries {
		if only != "" && string(e.kind) != only {
			continue
		}
		plan = append(plan, Artifact{
			Kind:    e.kind,
			Path:    e.path(desc),
			Produce: e.produce,
		})
	}
	return plan
}

// OutcomeStatus reports what happened to one planned artifact
type OutcomeStatus int

const (
	OutcomeWrote OutcomeStatus = iota
	OutcomeSkippedExisting
	OutcomeNotApplicable
	OutcomeFailed
)

// String returns the string representation of the outcome status
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeWrote:
		return "wrote"
	case OutcomeSkippedExisting:
		return "skipped"
	case OutcomeNotApplicable:
		return "not applicable"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for OutcomeStatus
func (s OutcomeStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Outcome is the result of executing one planned artifact
type Outcome struct {
	Kind   Kind          `json:"kind"`
	Path   string        `json:"path"`
	Status OutcomeStatus `json:"status"`
	Err    error         `json:"-"`
}

// Execute runs every planned artifact in order. Write failures are
// collected as failed outcomes; they never stop the remaining plan.
func Execute(desc *descriptor.Descriptor, plan []Artifact, w *writer.Writer, force bool) []Outcome {
	outcomes := make([]Outcome, 0, len(plan))

	for _, a := range plan {
		content, ok := a.Produce(desc)
		if !ok {
			outcomes = append(outcomes, Outcome{Kind: a.Kind, Path: a.Path, Status: OutcomeNotApplicable})
			continue
		}

		status, err := w.Write(a.Path, content, force)
		if err != nil {
			outcomes = append(outcomes, Outcome{
				Kind:   a.Kind,
				Path:   a.Path,
				Status: OutcomeFailed,
				Err:    diag.WriteFailed(a.Path, err),
			})
			continue
		}

		if status == writer.Skipped {
			outcomes = append(outcomes, Outcome{Kind: a.Kind, Path: a.Path, Status: OutcomeSkippedExisting})
		} else {
			outcomes = append(outcomes, Outcome{Kind: a.Kind, Path: a.Path, Status: OutcomeWrote})
		}
	}
	return outcomes
}
