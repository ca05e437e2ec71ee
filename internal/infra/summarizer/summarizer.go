// Package summarizer provides the summarization backends consumed by the
// pipeline: hosted model APIs (Claude, OpenAI) and a local extractive
// fallback. Backends are registered by model identifier in a Registry and
// resolved at run time, so engines are interchangeable without touching
// the pipeline. API-backed implementations include circuit breaker, retry,
// and rate limiting, with structured logging and Prometheus metrics.
package summarizer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"textsum/internal/domain/entity"
)

// Backend is a summarization engine resolved from a model identifier. The
// method set matches the pipeline's Summarizer interface.
type Backend interface {
	Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error)
}

// Factory constructs a backend for a concrete model identifier. Factories
// run once per identifier; the Registry caches the instance.
type Factory func(model string) (Backend, error)

// Registry maps model identifier families to backend factories. Resolution
// is by longest registered prefix, so "claude" covers concrete identifiers
// like "claude-sonnet-4-5". Loaded backends are cached and shared
// read-only across runs (load once, no hidden global state); nothing here
// mutates model state after construction.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	loaded    map[string]Backend
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		loaded:    make(map[string]Backend),
	}
}

// NewDefaultRegistry creates a registry with every backend the current
// environment can support: the extractive backend is always available,
// Claude requires ANTHROPIC_API_KEY, OpenAI requires OPENAI_API_KEY.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ModelExtractive, func(string) (Backend, error) {
		return NewExtractive(), nil
	})

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		r.Register(ModelFamilyClaude, func(model string) (Backend, error) {
			return NewClaude(key, model)
		})
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		r.Register(ModelFamilyOpenAI, func(model string) (Backend, error) {
			return NewOpenAI(key, model)
		})
		r.Register("gpt", func(model string) (Backend, error) {
			return NewOpenAI(key, model)
		})
	}

	return r
}

// Model identifier families understood by the default registry.
const (
	ModelExtractive   = "extractive"
	ModelFamilyClaude = "claude"
	ModelFamilyOpenAI = "openai"
)

// Register adds a factory under the given identifier prefix. Registering
// the same prefix again replaces the previous factory and drops any
// backends cached under it.
func (r *Registry) Register(prefix string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[prefix]; !exists {
		r.order = append(r.order, prefix)
	}
	r.factories[prefix] = factory
	for model := range r.loaded {
		if strings.HasPrefix(model, prefix) {
			delete(r.loaded, model)
		}
	}
}

// Resolve returns the backend for the given model identifier, loading it
// on first use. An identifier matching no registered prefix fails with
// entity.ErrModelUnavailable.
func (r *Registry) Resolve(model string) (Backend, error) {
	r.mu.RLock()
	if b, ok := r.loaded[model]; ok {
		r.mu.RUnlock()
		return b, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.loaded[model]; ok {
		return b, nil
	}

	prefix := ""
	for p := range r.factories {
		if strings.HasPrefix(model, p) && len(p) > len(prefix) {
			prefix = p
		}
	}
	if prefix == "" {
		return nil, fmt.Errorf("%w: no backend registered for model %q", entity.ErrModelUnavailable, model)
	}

	b, err := r.factories[prefix](model)
	if err != nil {
		return nil, fmt.Errorf("%w: loading model %q: %v", entity.ErrModelUnavailable, model, err)
	}
	r.loaded[model] = b
	return b, nil
}

// Models lists the registered identifier prefixes in registration order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Dispatcher adapts a Registry to the pipeline's Summarizer interface by
// resolving the backend from the parameters' model identifier per call.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Summarize resolves the backend for params.Model and delegates to it.
func (d *Dispatcher) Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	backend, err := d.registry.Resolve(params.Model)
	if err != nil {
		return "", err
	}
	return backend.Summarize(ctx, input, params)
}
