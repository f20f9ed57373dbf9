package dispatch

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/registry"
	"github.com/adrianliechti/docsmith/pkg/pdf"
)

// Request describes one conversion. Exactly one of Path or Content must be
// set. Backend selects an adapter explicitly; empty means auto-select.
type Request struct {
	Path string

	Name        string
	Content     []byte
	ContentType string

	Backend string

	Options *backend.ConvertOptions

	// Timeout bounds a single backend invocation. Zero uses the engine
	// default.
	Timeout time.Duration
}

type Engine struct {
	registry *registry.Registry

	attempts int
	delay    time.Duration
	timeout  time.Duration
}

type Option func(*Engine)

func WithAttempts(attempts int) Option {
	return func(e *Engine) {
		e.attempts = attempts
	}
}

func WithDelay(delay time.Duration) Option {
	return func(e *Engine) {
		e.delay = delay
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

func New(r *registry.Registry, options ...Option) *Engine {
	e := &Engine{
		registry: r,

		attempts: 3,
		delay:    time.Second,
		timeout:  5 * time.Minute,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Parse converts one document through the resolved backend and returns the
// normalized result. Errors carry the backend name once an adapter has been
// resolved.
func (e *Engine) Parse(ctx context.Context, req Request) (*backend.Document, error) {
	file, err := readRequest(req)

	if err != nil {
		return nil, err
	}

	handle, err := e.registry.Resolve(ctx, req.Backend)

	if err != nil {
		return nil, err
	}

	if err := checkLimits(handle.Descriptor, file); err != nil {
		return nil, err
	}

	result, err := e.convert(ctx, handle, file, req)

	if err != nil {
		return nil, backend.WrapError(handle.Descriptor.Name, backend.ErrorPermanent, err)
	}

	return normalize(handle.Descriptor, result), nil
}

func (e *Engine) convert(ctx context.Context, handle *registry.Handle, file backend.File, req Request) (*backend.Result, error) {
	timeout := req.Timeout

	if timeout <= 0 {
		timeout = e.timeout
	}

	var result *backend.Result

	err := retry(ctx, e.attempts, e.delay, func() error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		r, err := handle.Provider.Convert(ctx, file, req.Options)

		if err != nil {
			return err
		}

		result = r
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

func readRequest(req Request) (backend.File, error) {
	if req.Path == "" && len(req.Content) == 0 {
		return backend.File{}, backend.NewError(backend.ErrorInvalidRequest, "document path or content required")
	}

	if req.Path != "" && len(req.Content) > 0 {
		return backend.File{}, backend.NewError(backend.ErrorInvalidRequest, "document path and content are mutually exclusive")
	}

	file := backend.File{
		Name: req.Name,

		Content:     req.Content,
		ContentType: req.ContentType,
	}

	if req.Path != "" {
		data, err := os.ReadFile(req.Path)

		if err != nil {
			return backend.File{}, backend.NewError(backend.ErrorInvalidRequest, "read document: %v", err)
		}

		file.Content = data

		if file.Name == "" {
			file.Name = filepath.Base(req.Path)
		}
	}

	if file.ContentType == "" {
		file.ContentType = http.DetectContentType(file.Content)
	}

	return file, nil
}

// checkLimits enforces descriptor size and page limits locally before any
// remote call is issued.
func checkLimits(d backend.Descriptor, file backend.File) error {
	if d.MaxFileSize > 0 && int64(len(file.Content)) > d.MaxFileSize {
		return backend.WrapError(d.Name, backend.ErrorTooLarge,
			backend.NewError(backend.ErrorTooLarge, "document is %d bytes, limit is %d", len(file.Content), d.MaxFileSize))
	}

	if d.MaxPages > 0 && pdf.IsPDF(file.Content) {
		pages := pdf.PageCount(file.Content)

		if pages > d.MaxPages {
			kind := backend.ErrorTooLarge

			// Single-page-only backends reject rather than truncate.
			if d.MaxPages == 1 {
				kind = backend.ErrorUnsupported
			}

			return backend.WrapError(d.Name, kind,
				backend.NewError(kind, "document has %d pages, limit is %d", pages, d.MaxPages))
		}
	}

	return nil
}
