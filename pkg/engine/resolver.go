package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// localModulesDir is the project-local package directory searched on the
// upward walk, mirroring how project package managers vendor engines.
const localModulesDir = "lint_modules"

// maxAscent caps the upward directory walk so unusual filesystem layouts
// (symlink cycles) cannot loop forever.
const maxAscent = 256

// Resolver locates engine installations for files. Three strategies run in
// strict order: project-local walk, user package root, system package root.
// The first installation found wins across strategies, not the nearest
// directory. Loaded handles are cached by installation path, since many
// files resolve to the same physical engine.
type Resolver struct {
	// EngineName is the engine package to look for.
	// Defaults to DefaultEngineName.
	EngineName string

	// UserRoot is the per-user package manager's engine directory.
	UserRoot string

	// SystemRoot is the system package manager's engine directory.
	SystemRoot string

	mu     sync.Mutex
	byPath map[string]*Handle
}

// NewResolver returns a Resolver with the default engine name and package
// roots. The roots are fields so tests can point them at fixtures.
func NewResolver() *Resolver {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Resolver{
		EngineName: DefaultEngineName,
		UserRoot:   filepath.Join(home, ".quickpkg", "engines"),
		SystemRoot: filepath.Join("/usr", "local", "lib", "quickpkg", "engines"),
		byPath:     make(map[string]*Handle),
	}
}

// Resolve locates and loads the engine installation for filePath.
// Returns ErrEngineNotFound once every strategy is exhausted.
func (r *Resolver) Resolve(ctx context.Context, filePath string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve engine: %w", err)
	}

	if dir := r.findLocal(filepath.Dir(filePath)); dir != "" {
		return r.load(dir)
	}
	if dir := r.findGlobal(r.UserRoot); dir != "" {
		return r.load(dir)
	}
	if dir := r.findGlobal(r.SystemRoot); dir != "" {
		return r.load(dir)
	}

	return nil, fmt.Errorf("%w: %s (looked in %s ancestors of %s, %s, %s)",
		ErrEngineNotFound, r.engineName(), localModulesDir,
		filepath.Dir(filePath), r.UserRoot, r.SystemRoot)
}

// Cached returns the loaded handle for an installation path, if any.
func (r *Resolver) Cached(installPath string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byPath[installPath]
	return h, ok
}

func (r *Resolver) engineName() string {
	if r.EngineName != "" {
		return r.EngineName
	}
	return DefaultEngineName
}

// findLocal walks upward from startDir looking for a vendored engine
// installation. A plain loop with an explicit root predicate, capped so a
// cyclic layout terminates.
func (r *Resolver) findLocal(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for range maxAscent {
		candidate := filepath.Join(dir, localModulesDir, r.engineName())
		if manifestExists(candidate) {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}

// findGlobal checks a package manager root for the engine.
func (r *Resolver) findGlobal(root string) string {
	if root == "" {
		return ""
	}
	candidate := filepath.Join(root, r.engineName())
	if manifestExists(candidate) {
		return candidate
	}
	return ""
}

// load returns the cached handle for dir, loading and caching it on miss.
func (r *Resolver) load(dir string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byPath == nil {
		r.byPath = make(map[string]*Handle)
	}
	if h, ok := r.byPath[dir]; ok {
		return h, nil
	}

	h, err := Load(dir)
	if err != nil {
		return nil, err
	}
	r.byPath[dir] = h
	return h, nil
}
