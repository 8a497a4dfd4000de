package server

import (
	"path/filepath"
	"sync"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
)

// caches hold process-lifetime resolution results. A single mutex guards
// both maps: the only writers are the resolve-on-miss paths, and the only
// bulk mutation is the full clear of the configuration cache on a
// config-change notification.
//
// Engines are cached per file; configurations per containing directory,
// since a configuration is scoped to the directory its file was found in
// and is shared by every file under it. A file with no reachable
// configuration gets no entry at all, so every attempt fails explicitly.
type caches struct {
	mu           sync.Mutex
	engineByFile map[string]*engine.Handle
	configByDir  map[string]*config.Configuration
}

func newCaches() *caches {
	return &caches{
		engineByFile: make(map[string]*engine.Handle),
		configByDir:  make(map[string]*config.Configuration),
	}
}

func (c *caches) engine(path string) (*engine.Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.engineByFile[path]
	return h, ok
}

func (c *caches) setEngine(path string, h *engine.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engineByFile[path] = h
}

func (c *caches) configuration(path string) (*config.Configuration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.configByDir[filepath.Dir(path)]
	return cfg, ok
}

func (c *caches) setConfiguration(path string, cfg *config.Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configByDir[filepath.Dir(path)] = cfg
}

// clearConfigurations empties the configuration cache in full. No
// finer-grained invalidation is attempted; the engine cache is untouched,
// since engine installations rarely move. Returns the number of entries
// dropped.
func (c *caches) clearConfigurations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.configByDir)
	c.configByDir = make(map[string]*config.Configuration)
	return n
}
