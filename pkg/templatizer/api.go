package templatizer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Engine compiles templates and hands out render contexts.
// Use NewEngine() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *TemplateCache
	logger hclog.Logger

	// cacheSize, when set by WithCache, overrides config.CacheMaxSize
	// regardless of option order.
	cacheSize *int
	// configErr is returned by every compile when config is invalid.
	configErr error
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
// Unset fields take their defaults.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithLogger returns an option that sets the engine logger.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCache returns an option that sets the cache size (0 disables caching).
// It takes precedence over the CacheMaxSize of any WithConfig option.
func WithCache(maxSize int) Option {
	return func(e *Engine) {
		e.cacheSize = &maxSize
	}
}

// NewEngine creates a new engine with the specified options. The resulting
// configuration is validated; if it is invalid the problem is logged and
// every compile on the engine fails with it.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if e.cacheSize != nil {
		e.config.CacheMaxSize = *e.cacheSize
	}
	if e.logger == nil {
		e.logger = Logger()
	}
	if err := e.config.Validate(); err != nil {
		e.configErr = fmt.Errorf("invalid engine configuration: %w", err)
		e.logger.Error("invalid engine configuration", "error", err)
	}
	e.cache = NewTemplateCache(CacheConfig{
		MaxSize: e.config.CacheMaxSize,
		TTL:     e.config.CacheTTL,
	}, e.logger)
	return e
}

// CompileFile loads, flattens and jump-resolves the template at path.
// Compiled templates are cached by absolute path if caching is enabled.
func (e *Engine) CompileFile(path string) (*Template, error) {
	if e.configErr != nil {
		return nil, e.configErr
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: path, Cause: err}
	}
	if tmpl, ok := e.cache.Get(abs); ok {
		return tmpl, nil
	}

	tmpl, err := compileFile(abs, e.config, e.logger)
	if err != nil {
		return nil, err
	}
	e.cache.Set(abs, tmpl)
	return tmpl, nil
}

// Compile compiles a template read from r. Include paths are resolved
// relative to baseDir. The result is not cached.
func (e *Engine) Compile(r io.Reader, baseDir string) (*Template, error) {
	if e.configErr != nil {
		return nil, e.configErr
	}
	return compileReader(r, baseDir, e.config, e.logger)
}

// NewContext returns a render context bound to the template at path.
func (e *Engine) NewContext(path string) *Context {
	return &Context{path: path, engine: e, input: NewChannel()}
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Err returns the configuration error found by NewEngine, if any.
func (e *Engine) Err() error {
	return e.configErr
}

// ClearCache removes all templates from the cache.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Invalidate drops the cached template for path, if any.
func (e *Engine) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		e.cache.Remove(abs)
	}
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = NewEngine()

// Module-level convenience functions that use the default engine.

// CompileFile compiles the template at path using the default engine.
func CompileFile(path string) (*Template, error) {
	return DefaultEngine.CompileFile(path)
}

// Compile compiles a template from r using the default engine.
func Compile(r io.Reader, baseDir string) (*Template, error) {
	return DefaultEngine.Compile(r, baseDir)
}

// RenderFile compiles the template at path and renders it against in.
func RenderFile(w io.Writer, path string, in *Channel) error {
	tmpl, err := DefaultEngine.CompileFile(path)
	if err != nil {
		return fmt.Errorf("failed to compile template: %w", err)
	}
	return tmpl.Render(w, in)
}
