// Package project resolves the on-disk layout of an admin project:
// where resource declarations live, which files are declarations, and
// where generated output is rooted.
package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Layout locates the directories a run operates on. Src and
// ResourcesDir are project-relative, the way they appear in
// configuration.
type Layout struct {
	Root         string // Project root, where armature.yaml lives
	Src          string // UI source root; generated output lands here
	ResourcesDir string // Resource declaration directory
	BaseFile     string // Builder module filename, excluded from discovery
}

// Resource is one discovered declaration file
type Resource struct {
	Name string // File stem, the identifier used on the command line
	Path string // Full path to the declaration
}

// SrcPath returns the absolute UI source root
func (l Layout) SrcPath() string {
	return filepath.Join(l.Root, filepath.FromSlash(l.Src))
}

// ResourcesPath returns the absolute resource declaration directory
func (l Layout) ResourcesPath() string {
	return filepath.Join(l.Root, filepath.FromSlash(l.ResourcesDir))
}

// ResourceFile returns the declaration path for a named resource
func (l Layout) ResourceFile(name string) string {
	return filepath.Join(l.ResourcesPath(), filepath.FromSlash(name)+".ts")
}

// Discover recursively finds all resource declaration files under the
// resources directory. The base builder module, barrel files, and type
// declaration files are not resources and are skipped.
func (l Layout) Discover() ([]Resource, error) {
	var resources []Resource

	root := l.ResourcesPath()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if filepath.Ext(name) != ".ts" {
			return nil
		}
		if name == l.BaseFile || name == "index.ts" || strings.HasSuffix(name, ".d.ts") {
			return nil
		}

		resources = append(resources, Resource{
			Name: strings.TrimSuffix(name, ".ts"),
			Path: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(resources, func(i, j int) bool { return resources[i].Name < resources[j].Name })
	return resources, nil
}
