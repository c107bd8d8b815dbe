package runner

import (
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/armature-dev/armature/internal/diag"
	"github.com/armature-dev/armature/internal/project"
)

// Invoker dispatches one isolated single-resource generation and
// returns its combined output. The production implementation re-executes
// the current binary so every resource gets a fresh process; tests
// substitute an in-memory fake.
type Invoker interface {
	Invoke(resource string, opts Options) ([]byte, error)
}

// SubprocessInvoker runs `<self> generate <resource>` per resource.
// Process-per-resource keeps parser state and file caches from one
// resource out of the next.
type SubprocessInvoker struct {
	Dir string // Working directory for children, the project root
}

// Invoke runs one generate subprocess to completion
func (s *SubprocessInvoker) Invoke(resource string, opts Options) ([]byte, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	args := []string{"generate", resource}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.Only != "" {
		args = append(args, "--only", opts.Only)
	}
	if opts.SkipWiring {
		args = append(args, "--skip-wiring")
	}

	cmd := exec.Command(exe, args...)
	cmd.Dir = s.Dir
	return cmd.CombinedOutput()
}

// BatchItem records one resource's attempt within a batch
type BatchItem struct {
	Resource string `json:"resource"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
	Err      error  `json:"-"`
}

// BatchReport summarizes a generate-all run
type BatchReport struct {
	RunID          string      `json:"run_id"`
	Started        time.Time   `json:"started"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	Items          []BatchItem `json:"items"`
	Failures       int         `json:"failures"`
}

// Failed reports whether any resource in the batch failed
func (r *BatchReport) Failed() bool {
	return r.Failures > 0
}

// Batch discovers every resource declaration and invokes the pipeline
// once per resource. A per-resource failure is recorded and the batch
// continues; only discovery itself can fail the whole call.
func Batch(layout project.Layout, inv Invoker, opts Options) (*BatchReport, error) {
	resources, err := layout.Discover()
	if err != nil {
		return nil, err
	}

	report := &BatchReport{RunID: uuid.New().String(), Started: time.Now()}
	for _, res := range resources {
		out, err := inv.Invoke(res.Name, opts)
		item := BatchItem{Resource: res.Name, Output: string(out)}
		if err != nil {
			item.Err = diag.WrapBatchItem(res.Name, err)
			item.Error = item.Err.Error()
			report.Failures++
		}
		report.Items = append(report.Items, item)
	}
	report.ElapsedSeconds = time.Since(report.Started).Seconds()
	return report, nil
}
