// Package wiring splices generated resources into the shared hub
// files: export barrels, the resource registry, client-state wiring,
// and the navigation table. Merges are anchored on literal marker
// comments and made idempotent by a per-resource uniqueness probe;
// a hub whose marker has been removed is warned about and left
// byte-identical, never appended to.
package wiring

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/armature-dev/armature/internal/descriptor"
	"github.com/armature-dev/armature/internal/diag"
	"github.com/armature-dev/armature/internal/writer"
)

// Target describes one hub file and how a resource registers in it
type Target struct {
	Name    string // Short name for status output
	HubPath string // Project-relative hub location
	Marker  string // Literal marker comment anchoring entry insertion

	// Probe returns the substring whose presence in the hub means the
	// resource is already wired.
	Probe func(desc *descriptor.Descriptor) string

	// Entry returns the line block spliced in after the marker
	Entry func(desc *descriptor.Descriptor) string

	// Import returns the import line inserted after the last existing
	// import, or "" when the hub needs none.
	Import func(desc *descriptor.Descriptor) string

	// Create returns the initial hub content, marker and first entry
	// included, used when the hub does not exist yet.
	Create func(desc *descriptor.Descriptor) string
}

// Status reports what the merge did to one hub
type Status int

const (
	StatusCreated Status = iota
	StatusWired
	StatusAlreadyWired
	StatusMarkerMissing
	StatusFailed
)

// String returns the string representation of the merge status
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusWired:
		return "wired"
	case StatusAlreadyWired:
		return "already wired"
	case StatusMarkerMissing:
		return "marker missing"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Status
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Outcome is the result of merging one hub
type Outcome struct {
	Target  string           `json:"target"`
	HubPath string           `json:"hub"`
	Status  Status           `json:"status"`
	Warn    *diag.Diagnostic `json:"warning,omitempty"`
	Err     error            `json:"-"`
}

// Engine merges resources into an ordered set of hub targets
type Engine struct {
	w       *writer.Writer
	targets []Target
}

// New creates an Engine over the default hub set
func New(w *writer.Writer) *Engine {
	return &Engine{w: w, targets: DefaultTargets()}
}

// NewWithTargets creates an Engine over a custom hub set
func NewWithTargets(w *writer.Writer, targets []Target) *Engine {
	return &Engine{w: w, targets: targets}
}

// importLine matches the import statement shape that anchors import
// insertion. The last matching line is the anchor.
var importLine = regexp.MustCompile(`^\s*import\b.*["'][^"']+["'];?\s*$`)

// Merge wires the resource into every hub in order. Hubs are
// independent: a failure or missing marker in one never blocks the
// rest, and no rollback spans them.
func (e *Engine) Merge(desc *descriptor.Descriptor) []Outcome {
	outcomes := make([]Outcome, 0, len(e.targets))
	for _, t := range e.targets {
		outcomes = append(outcomes, e.mergeTarget(t, desc))
	}
	return outcomes
}

// mergeTarget applies one hub merge
func (e *Engine) mergeTarget(t Target, desc *descriptor.Descriptor) Outcome {
	out := Outcome{Target: t.Name, HubPath: t.HubPath}

	content, err := e.w.Read(t.HubPath)
	if err != nil {
		if !os.IsNotExist(err) {
			out.Status = StatusFailed
			out.Err = err
			return out
		}
		if err := e.w.Put(t.HubPath, t.Create(desc)); err != nil {
			out.Status = StatusFailed
			out.Err = err
			return out
		}
		out.Status = StatusCreated
		return out
	}

	if strings.Contains(content, t.Probe(desc)) {
		out.Status = StatusAlreadyWired
		return out
	}

	lines := strings.Split(content, "\n")
	markerIdx := findMarker(lines, t.Marker)
	if markerIdx < 0 {
		out.Status = StatusMarkerMissing
		warn := diag.MarkerMissing(t.HubPath, t.Marker)
		out.Warn = &warn
		return out
	}

	type insertion struct {
		at   int
		text string
	}
	inserts := []insertion{{at: markerIdx + 1, text: t.Entry(desc)}}

	if t.Import != nil {
		if imp := t.Import(desc); imp != "" && !strings.Contains(content, strings.TrimSpace(imp)) {
			anchor := lastImportIdx(lines)
			if anchor < 0 {
				// No import-shaped line to anchor on; prepend instead
				inserts = append(inserts, insertion{at: 0, text: imp})
				warn := diag.ImportAnchorMissing(t.HubPath)
				out.Warn = &warn
			} else {
				inserts = append(inserts, insertion{at: anchor + 1, text: imp})
			}
		}
	}

	// Apply from the bottom up so earlier positions stay valid
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		lines = append(lines[:ins.at], append([]string{ins.text}, lines[ins.at:]...)...)
	}

	if err := e.w.Put(t.HubPath, strings.Join(lines, "\n")); err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}
	out.Status = StatusWired
	return out
}

// findMarker returns the index of the line containing the literal
// marker, or -1.
func findMarker(lines []string, marker string) int {
	for i, line := range lines {
		if strings.Contains(line, marker) {
			return i
		}
	}
	return -1
}

// lastImportIdx returns the index of the last import-shaped line, or -1
func lastImportIdx(lines []string) int {
	last := -1
	for i, line := range lines {
		if importLine.MatchString(line) {
			last = i
		}
	}
	return last
}
