// Package operations dispatches decoded requests to the handler that
// implements the requested operation.
package operations

import (
	"context"
	"fmt"
	"sync"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Handler implements exactly one SOS operation
type Handler interface {
	Operation() string
	Handle(ctx context.Context, req domain.Request) (any, error)
}

type typedHandler[R domain.Request, T any] struct {
	fn func(context.Context, R) (T, error)
}

// For adapts a function taking the concrete request type of an operation
// into a Handler
func For[R domain.Request, T any](fn func(context.Context, R) (T, error)) Handler {
	return &typedHandler[R, T]{fn: fn}
}

func (h *typedHandler[R, T]) Operation() string {
	var zero R
	return zero.Operation()
}

func (h *typedHandler[R, T]) Handle(ctx context.Context, req domain.Request) (any, error) {
	r, ok := req.(R)
	if !ok {
		return nil, ows.NoApplicable(nil, "handler for %s received a %T", h.Operation(), req)
	}
	return h.fn(ctx, r)
}

type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: map[string]Handler{}}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Operation()] = h
}

func (r *Registry) IsSupported(operation string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[operation]
	return ok
}

// Operations returns the names of all supported operations in alphabetical order
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := maps.Keys(r.handlers)
	slices.Sort(ops)
	return ops
}

// Handle validates the common request parameters and invokes the handler
// of the requested operation
func (r *Registry) Handle(ctx context.Context, req domain.Request) (any, error) {
	if err := validateHeader(req); err != nil {
		return nil, err
	}

	r.mu.RLock()
	h, ok := r.handlers[req.Operation()]
	r.mu.RUnlock()

	if !ok {
		return nil, ows.OperationNotSupportedFor(req.Operation())
	}

	return h.Handle(ctx, req)
}

func validateHeader(req domain.Request) error {
	header := req.Header()

	if header.Service == "" {
		return ows.MissingParameter("service")
	}
	if header.Service != domain.ServiceType {
		return ows.InvalidParameter("service", "the service %s is not supported, use %s", header.Service, domain.ServiceType)
	}

	// GetCapabilities negotiates the version through AcceptVersions instead
	if req.Operation() == domain.OperationGetCapabilities {
		return nil
	}

	switch header.Version {
	case "":
		return ows.MissingParameter("version")
	case domain.Version100, domain.Version200:
		return nil
	}

	return &ows.Exception{
		Code:    ows.VersionNegotiationFailed,
		Locator: "version",
		Message: fmt.Sprintf("the version %s is not supported", header.Version),
	}
}
