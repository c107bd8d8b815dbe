package watch

import (
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/armature-dev/armature/internal/project"
	"github.com/armature-dev/armature/internal/runner"
)

//go:embed assets/reload.js
var reloadScript string

// Session is one `armature watch` run: a declaration watcher, a reload
// broadcast server, and the isolated per-resource invoker between them.
type Session struct {
	layout  project.Layout
	invoker runner.Invoker
	reload  *ReloadServer
	watcher *FileWatcher
	server  *http.Server
}

// SessionConfig configures a watch session
type SessionConfig struct {
	Layout     project.Layout
	Invoker    runner.Invoker
	ReloadPort int // 0 disables the reload server
}

// NewSession creates a watch session
func NewSession(cfg SessionConfig) (*Session, error) {
	s := &Session{
		layout:  cfg.Layout,
		invoker: cfg.Invoker,
	}

	watcher, err := NewFileWatcher(cfg.Layout, s.handleChanges)
	if err != nil {
		return nil, err
	}
	s.watcher = watcher

	if cfg.ReloadPort > 0 {
		s.reload = NewReloadServer()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", s.reload.HandleWebSocket)
		mux.HandleFunc("/reload.js", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/javascript")
			w.Write([]byte(reloadScript))
		})
		s.server = &http.Server{
			Addr:    fmt.Sprintf("localhost:%d", cfg.ReloadPort),
			Handler: mux,
		}
	}

	return s, nil
}

// Start begins watching and, when configured, serving reload events
func (s *Session) Start() error {
	if s.server != nil {
		go func() {
			if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("[watch] Reload server error: %v", err)
			}
		}()
	}
	return s.watcher.Start()
}

// Stop shuts the session down
func (s *Session) Stop() error {
	err := s.watcher.Stop()
	if s.reload != nil {
		s.reload.Close()
	}
	if s.server != nil {
		s.server.Close()
	}
	return err
}

// handleChanges regenerates every resource whose declaration settled in
// this change batch. Each regeneration is its own isolated invocation;
// one failure does not stop the rest.
func (s *Session) handleChanges(files []string) error {
	resources := make(map[string]bool)
	for _, file := range files {
		resources[ResourceName(file)] = true
	}

	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.regenerate(name, files)
	}
	return nil
}

// regenerate runs one resource through the pipeline with overwrite on,
// so declaration edits propagate into existing artifacts.
func (s *Session) regenerate(name string, files []string) {
	if s.reload != nil {
		s.reload.NotifyGenerating(name, files)
	}

	start := time.Now()
	out, err := s.invoker.Invoke(name, runner.Options{Force: true})
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[watch] Regenerating %s failed: %v\n%s", name, err, out)
		if s.reload != nil {
			s.reload.NotifyFailed(name, string(out))
		}
		return
	}

	log.Printf("[watch] Regenerated %s in %s", name, elapsed.Round(time.Millisecond))
	if s.reload != nil {
		s.reload.NotifyGenerated(name, elapsed)
	}
}
