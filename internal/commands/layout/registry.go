package layoutcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/layout"
)

var ErrKindNotRegistered = errors.New("layoutcmd: no service registered for kind")

// Controller is the kind-agnostic view of a layout service used by command handlers.
type Controller interface {
	Kind() domain.Kind
	Publish(ctx context.Context, id string) error
	Unpublish(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Bind adapts a typed layout service into a Controller.
func Bind[T any](svc *layout.Service[T]) Controller {
	return serviceController[T]{svc: svc}
}

type serviceController[T any] struct {
	svc *layout.Service[T]
}

func (c serviceController[T]) Kind() domain.Kind { return c.svc.Kind() }

func (c serviceController[T]) Publish(ctx context.Context, id string) error {
	_, err := c.svc.PublishByID(ctx, id)
	return err
}

func (c serviceController[T]) Unpublish(ctx context.Context, id string) error {
	_, err := c.svc.Unpublish(ctx, id)
	return err
}

func (c serviceController[T]) Delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, id)
}

// Registry routes commands to the controller of their kind.
type Registry struct {
	controllers map[domain.Kind]Controller
}

func NewRegistry(controllers ...Controller) *Registry {
	r := &Registry{controllers: make(map[domain.Kind]Controller, len(controllers))}
	for _, c := range controllers {
		if c != nil {
			r.controllers[c.Kind()] = c
		}
	}
	return r
}

// Lookup returns the controller for kind.
func (r *Registry) Lookup(kind domain.Kind) (Controller, error) {
	if r != nil {
		if c, ok := r.controllers[kind]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrKindNotRegistered, kind)
}
