package configloader

import (
	"path/filepath"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
)

// Resolve finds the nearest lintrc for filePath and loads it through the
// engine handle, whose generation determines the config schema.
//
// The blocking directory-existence walk only runs on cache miss; callers
// memoize the result per file.
func Resolve(filePath string, handle *engine.Handle) (*config.Configuration, error) {
	path, err := FindConfig(filepath.Dir(filePath))
	if err != nil {
		return nil, err
	}
	return handle.LoadConfiguration(path)
}
