// Package server orchestrates lint and fix requests for an editor session:
// it resolves engines and configurations with per-path caching, runs lint
// passes, publishes diagnostics, and synthesizes workspace edits.
package server

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintbridge/internal/configloader"
	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/document"
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/fix"
	"github.com/yaklabco/lintbridge/pkg/langdetect"
	"github.com/yaklabco/lintbridge/pkg/lint"
)

// EngineResolver locates the engine installation governing a file.
type EngineResolver interface {
	Resolve(ctx context.Context, filePath string) (*engine.Handle, error)
}

// ConfigResolver discovers and loads the configuration governing a file.
type ConfigResolver interface {
	Resolve(filePath string, handle *engine.Handle) (*config.Configuration, error)
}

// ConfigResolverFunc adapts a function to the ConfigResolver interface.
type ConfigResolverFunc func(filePath string, handle *engine.Handle) (*config.Configuration, error)

func (f ConfigResolverFunc) Resolve(filePath string, handle *engine.Handle) (*config.Configuration, error) {
	return f(filePath, handle)
}

// PublishFunc delivers a full diagnostics set for one document to the
// editor. An empty slice clears previously shown diagnostics.
type PublishFunc func(uri string, diagnostics []lint.Diagnostic)

// Options configure a Handler. Store and Publish are required; the resolver
// fields default to the real filesystem resolvers.
type Options struct {
	Store   document.Store
	Publish PublishFunc
	Engines EngineResolver
	Configs ConfigResolver
	Logger  *log.Logger
}

// Handler serves lint and fix requests against open documents. Resolution
// results are memoized per path for the handler's lifetime; a configuration
// change notification drops the configuration cache in full.
type Handler struct {
	store   document.Store
	publish PublishFunc
	engines EngineResolver
	configs ConfigResolver
	logger  *log.Logger
	caches  *caches
}

// New builds a Handler from opts.
func New(opts Options) *Handler {
	if opts.Engines == nil {
		opts.Engines = engine.NewResolver()
	}
	if opts.Configs == nil {
		opts.Configs = ConfigResolverFunc(configloader.Resolve)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Publish == nil {
		opts.Publish = func(string, []lint.Diagnostic) {}
	}

	return &Handler{
		store:   opts.Store,
		publish: opts.Publish,
		engines: opts.Engines,
		configs: opts.Configs,
		logger:  opts.Logger,
		caches:  newCaches(),
	}
}

// RunLint lints one open document and publishes the resulting diagnostics.
//
// Resolution failures (no engine, no configuration) are logged and publish
// an empty diagnostics set so stale markers clear; they do not fail the
// request. Engine execution failures clear diagnostics and are returned to
// the caller. A partial diagnostics set is never published.
func (h *Handler) RunLint(ctx context.Context, uri string) error {
	snap, err := h.store.Snapshot(uri)
	if err != nil {
		h.logger.Error("lint request for unknown document",
			logging.FieldURI, uri,
			logging.FieldError, err)
		return err
	}

	handle, cfg, err := h.resolve(ctx, snap.Path)
	if err != nil {
		if errors.Is(err, engine.ErrEngineNotFound) || errors.Is(err, configloader.ErrConfigNotFound) {
			h.logger.Error("lint resolution failed",
				logging.FieldURI, uri,
				logging.FieldError, err)
			h.publish(uri, []lint.Diagnostic{})
			return nil
		}
		h.logger.Error("lint setup failed",
			logging.FieldURI, uri,
			logging.FieldError, err)
		h.publish(uri, []lint.Diagnostic{})
		return err
	}

	if !langdetect.Matches(handle.Manifest.Language, snap.Path, []byte(snap.Text)) {
		h.logger.Debug("document language outside engine scope",
			logging.FieldURI, uri,
			logging.FieldLanguage, handle.Manifest.Language)
		return nil
	}

	runner := &lint.Runner{}
	failures, err := runner.Run(ctx, snap.Path, snap.Text, handle, cfg)
	if err != nil {
		h.logger.Error("lint execution failed",
			logging.FieldURI, uri,
			logging.FieldEngine, handle.Manifest.Name,
			logging.FieldError, err)
		h.publish(uri, []lint.Diagnostic{})
		return err
	}

	diagnostics := lint.ToDiagnostics(failures)
	h.logger.Debug("lint complete",
		logging.FieldURI, uri,
		logging.FieldDiagnostics, len(diagnostics))
	h.publish(uri, diagnostics)
	return nil
}

// FixLint re-lints one open document and synthesizes edits from the
// fix-bearing failures. If lint cannot run, the result carries the current
// document version and no edits; only an unknown document fails the request.
func (h *Handler) FixLint(ctx context.Context, uri string) (fix.FixResult, error) {
	snap, err := h.store.Snapshot(uri)
	if err != nil {
		h.logger.Error("fix request for unknown document",
			logging.FieldURI, uri,
			logging.FieldError, err)
		return fix.FixResult{}, err
	}

	empty := fix.FixResult{DocumentVersion: snap.Version, Edits: []fix.TextEdit{}}

	handle, cfg, err := h.resolve(ctx, snap.Path)
	if err != nil {
		h.logger.Error("fix resolution failed",
			logging.FieldURI, uri,
			logging.FieldError, err)
		return empty, nil
	}

	if !langdetect.Matches(handle.Manifest.Language, snap.Path, []byte(snap.Text)) {
		return empty, nil
	}

	runner := &lint.Runner{}
	failures, err := runner.Run(ctx, snap.Path, snap.Text, handle, cfg)
	if err != nil {
		h.logger.Error("fix lint pass failed",
			logging.FieldURI, uri,
			logging.FieldEngine, handle.Manifest.Name,
			logging.FieldError, err)
		return empty, nil
	}

	result := fix.Synthesize(failures, snap.Text, snap.Version)

	h.logger.Debug("fix complete",
		logging.FieldURI, uri,
		logging.FieldEdits, len(result.Edits),
		logging.FieldDocVersion, result.DocumentVersion)
	return result, nil
}

// ConfigFilesChanged drops every cached configuration. Engine handles stay
// cached; installations do not move when a lintrc is edited.
func (h *Handler) ConfigFilesChanged(uris []string) {
	cleared := h.caches.clearConfigurations()
	h.logger.Info("configuration changed, cache cleared",
		logging.FieldCleared, cleared,
		"files", len(uris))
}

// DidClose clears any diagnostics still shown for a closed document.
func (h *Handler) DidClose(uri string) {
	h.publish(uri, []lint.Diagnostic{})
}

// resolve returns the engine handle and configuration governing path,
// consulting the caches first. Both caches are written only here.
func (h *Handler) resolve(ctx context.Context, path string) (*engine.Handle, *config.Configuration, error) {
	handle, hit := h.caches.engine(path)
	if !hit {
		var err error
		handle, err = h.engines.Resolve(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		h.caches.setEngine(path, handle)
	}

	cfg, cfgHit := h.caches.configuration(path)
	if !cfgHit {
		var err error
		cfg, err = h.configs.Resolve(path, handle)
		if err != nil {
			return nil, nil, err
		}
		h.caches.setConfiguration(path, cfg)
	}

	h.logger.Debug("resolution",
		logging.FieldPath, path,
		logging.FieldEngine, handle.Manifest.Name,
		logging.FieldGeneration, handle.Generation,
		logging.FieldCacheHit, hit && cfgHit)

	return handle, cfg, nil
}
