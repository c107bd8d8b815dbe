// Package runner drives the single-resource pipeline: read the
// declaration, extract the descriptor, execute the artifact plan, then
// merge the wiring hubs. Batch runs dispatch this pipeline once per
// resource in an isolated subprocess.
package runner

import (
	"os"

	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/artifact/producers"
	"github.com/armature-dev/armature/internal/descriptor"
	"github.com/armature-dev/armature/internal/diag"
	"github.com/armature-dev/armature/internal/project"
	"github.com/armature-dev/armature/internal/wiring"
	"github.com/armature-dev/armature/internal/writer"
)

// Options are the per-run switches accepted by the generate commands
type Options struct {
	Force      bool   // Overwrite existing artifact files
	Only       string // Restrict the plan to one artifact kind
	SkipWiring bool   // Suppress hub merging entirely
}

// Result is the full outcome of one resource's generation. Err is set
// only for descriptor-level failures; artifact and wiring problems are
// carried in their outcome lists and do not fail the run.
type Result struct {
	Resource  string
	File      string
	Name      string // Extracted resource name; empty when extraction failed
	Plural    string
	Artifacts []artifact.Outcome
	Wiring    []wiring.Outcome
	Err       error
}

// Failed reports whether the resource could not be found or parsed.
// The exit code of a generate run reflects exactly this.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Runner executes the pipeline against one project layout
type Runner struct {
	Layout   project.Layout
	Factory  string
	Registry *artifact.Registry
}

// New creates a Runner with the default producer registry
func New(layout project.Layout, factory string) *Runner {
	return &Runner{Layout: layout, Factory: factory, Registry: producers.Default()}
}

// Run generates one resource. Artifacts are written before any hub is
// touched; hubs merge in their fixed dependency order.
func (r *Runner) Run(resource string, opts Options) *Result {
	result := &Result{Resource: resource, File: r.Layout.ResourceFile(resource)}

	source, err := os.ReadFile(result.File)
	if err != nil {
		if os.IsNotExist(err) {
			result.Err = diag.NotFound(resource, result.File)
		} else {
			result.Err = err
		}
		return result
	}

	desc, err := descriptor.Extract(string(source), result.File, descriptor.Options{Factory: r.Factory})
	if err != nil {
		result.Err = err
		return result
	}
	result.Name = desc.Name
	result.Plural = desc.Plural

	w := writer.New(r.Layout.SrcPath())
	plan := r.Registry.Plan(desc, opts.Only)
	result.Artifacts = artifact.Execute(desc, plan, w, opts.Force)

	if !opts.SkipWiring {
		result.Wiring = wiring.New(w).Merge(desc)
	}
	return result
}
