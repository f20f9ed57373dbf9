package registry

import (
	"context"
	"log/slog"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

// Probe reports whether a backend is currently usable. Probes are
// side-effect-free and re-evaluated on every query since credentials and
// environment can change between calls.
type Probe func(ctx context.Context) error

// Handle binds a descriptor to its provider and availability probe. Handles
// are owned by the registry and never mutated after registration.
type Handle struct {
	Descriptor backend.Descriptor

	Provider backend.Provider

	probe Probe
}

// Available runs the availability probe. A nil probe means always available.
// A panicking probe counts as unavailable.
func (h *Handle) Available(ctx context.Context) (err error) {
	if h.probe == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = backend.NewError(backend.ErrorUnavailable, "availability probe panicked: %v", r)
		}
	}()

	return h.probe(ctx)
}

type Filter struct {
	Category   backend.Category
	Capability backend.Capability
}

func (f Filter) matches(d backend.Descriptor) bool {
	if f.Category != "" && d.Category != f.Category {
		return false
	}

	if f.Capability != "" && !d.Supports(f.Capability) {
		return false
	}

	return true
}

// Registry holds all known backends in declaration order. Registration
// happens once at startup; queries are read-only and safe for concurrent
// use afterwards.
type Registry struct {
	handles []*Handle
	index   map[string]*Handle
}

func New() *Registry {
	return &Registry{
		index: map[string]*Handle{},
	}
}

func (r *Registry) Register(descriptor backend.Descriptor, provider backend.Provider, probe Probe) error {
	if descriptor.Name == "" {
		return backend.NewError(backend.ErrorInvalidRequest, "backend name required")
	}

	if provider == nil {
		return backend.NewError(backend.ErrorInvalidRequest, "backend provider required")
	}

	if _, ok := r.index[descriptor.Name]; ok {
		return backend.NewError(backend.ErrorInvalidRequest, "duplicate backend: %s", descriptor.Name)
	}

	handle := &Handle{
		Descriptor: descriptor,

		Provider: provider,

		probe: probe,
	}

	r.handles = append(r.handles, handle)
	r.index[descriptor.Name] = handle

	return nil
}

// List returns registered descriptors in declaration order, optionally
// filtered. Declaration order is stable so auto-selection ties stay
// deterministic.
func (r *Registry) List(filter Filter) []backend.Descriptor {
	var result []backend.Descriptor

	for _, h := range r.handles {
		if !filter.matches(h.Descriptor) {
			continue
		}

		result = append(result, h.Descriptor)
	}

	return result
}

// Available returns descriptors whose probe currently succeeds. Probe
// failures are logged, not propagated.
func (r *Registry) Available(ctx context.Context) []backend.Descriptor {
	var result []backend.Descriptor

	for _, h := range r.handles {
		if err := h.Available(ctx); err != nil {
			slog.Debug("backend unavailable", "backend", h.Descriptor.Name, "error", err)
			continue
		}

		result = append(result, h.Descriptor)
	}

	return result
}

// Report describes one backend's availability at query time.
type Report struct {
	Descriptor backend.Descriptor

	Available bool
	Reason    string
}

// Inspect returns an availability report per backend in declaration order.
func (r *Registry) Inspect(ctx context.Context) []Report {
	var result []Report

	for _, h := range r.handles {
		report := Report{
			Descriptor: h.Descriptor,

			Available: true,
		}

		if err := h.Available(ctx); err != nil {
			report.Available = false
			report.Reason = err.Error()
		}

		result = append(result, report)
	}

	return result
}

// Resolve returns the handle for name, or auto-selects when name is empty.
//
// Auto-selection prefers the best available category in the fixed order
// local-heavy > local-medium > commercial-cloud > frontier-llm > local-light,
// breaking ties by declaration order.
func (r *Registry) Resolve(ctx context.Context, name string) (*Handle, error) {
	if name != "" {
		h, ok := r.index[name]

		if !ok {
			return nil, backend.NewError(backend.ErrorUnknownBackend, "unknown backend: %s", name)
		}

		if err := h.Available(ctx); err != nil {
			return nil, backend.WrapError(name, backend.ErrorUnavailable, err)
		}

		return h, nil
	}

	var best *Handle

	for _, h := range r.handles {
		if best != nil && !h.Descriptor.Category.Less(best.Descriptor.Category) {
			continue
		}

		if err := h.Available(ctx); err != nil {
			slog.Debug("backend unavailable", "backend", h.Descriptor.Name, "error", err)
			continue
		}

		best = h
	}

	if best == nil {
		return nil, backend.NewError(backend.ErrorUnavailable, "no backends available")
	}

	return best, nil
}
