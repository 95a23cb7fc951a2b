package layoutcmd

import (
	"context"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

var (
	_ command.Commander[PublishLayoutCommand]   = (*PublishLayoutHandler)(nil)
	_ command.Commander[UnpublishLayoutCommand] = (*UnpublishLayoutHandler)(nil)
	_ command.Commander[DeleteLayoutCommand]    = (*DeleteLayoutHandler)(nil)
)

// PublishLayoutHandler publishes stored entities of any registered kind.
type PublishLayoutHandler struct {
	inner *commands.Handler[PublishLayoutCommand]
}

func NewPublishLayoutHandler(registry *Registry, logger interfaces.Logger, opts ...commands.HandlerOption[PublishLayoutCommand]) *PublishLayoutHandler {
	exec := func(ctx context.Context, msg PublishLayoutCommand) error {
		c, err := registry.Lookup(msg.ResolvedKind())
		if err != nil {
			return err
		}
		return c.Publish(ctx, strings.TrimSpace(msg.ID))
	}
	return &PublishLayoutHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "layout.publish", func(m PublishLayoutCommand) Target { return m.Target }, opts)...),
	}
}

// Execute satisfies command.Commander[PublishLayoutCommand].
func (h *PublishLayoutHandler) Execute(ctx context.Context, msg PublishLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnpublishLayoutHandler returns stored entities to draft.
type UnpublishLayoutHandler struct {
	inner *commands.Handler[UnpublishLayoutCommand]
}

func NewUnpublishLayoutHandler(registry *Registry, logger interfaces.Logger, opts ...commands.HandlerOption[UnpublishLayoutCommand]) *UnpublishLayoutHandler {
	exec := func(ctx context.Context, msg UnpublishLayoutCommand) error {
		c, err := registry.Lookup(msg.ResolvedKind())
		if err != nil {
			return err
		}
		return c.Unpublish(ctx, strings.TrimSpace(msg.ID))
	}
	return &UnpublishLayoutHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "layout.unpublish", func(m UnpublishLayoutCommand) Target { return m.Target }, opts)...),
	}
}

// Execute satisfies command.Commander[UnpublishLayoutCommand].
func (h *UnpublishLayoutHandler) Execute(ctx context.Context, msg UnpublishLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteLayoutHandler removes stored entities.
type DeleteLayoutHandler struct {
	inner *commands.Handler[DeleteLayoutCommand]
}

func NewDeleteLayoutHandler(registry *Registry, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteLayoutCommand]) *DeleteLayoutHandler {
	exec := func(ctx context.Context, msg DeleteLayoutCommand) error {
		c, err := registry.Lookup(msg.ResolvedKind())
		if err != nil {
			return err
		}
		return c.Delete(ctx, strings.TrimSpace(msg.ID))
	}
	return &DeleteLayoutHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "layout.delete", func(m DeleteLayoutCommand) Target { return m.Target }, opts)...),
	}
}

// Execute satisfies command.Commander[DeleteLayoutCommand].
func (h *DeleteLayoutHandler) Execute(ctx context.Context, msg DeleteLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Handlers groups the layout command handlers.
type Handlers struct {
	Publish   *PublishLayoutHandler
	Unpublish *UnpublishLayoutHandler
	Delete    *DeleteLayoutHandler
}

// HandlersConfig carries options shared by every layout handler.
type HandlersConfig struct {
	Logger  interfaces.Logger
	Timeout time.Duration
}

// NewHandlers builds all layout handlers over registry.
func NewHandlers(registry *Registry, cfg HandlersConfig) Handlers {
	return Handlers{
		Publish:   NewPublishLayoutHandler(registry, cfg.Logger, commands.WithTimeout[PublishLayoutCommand](cfg.Timeout)),
		Unpublish: NewUnpublishLayoutHandler(registry, cfg.Logger, commands.WithTimeout[UnpublishLayoutCommand](cfg.Timeout)),
		Delete:    NewDeleteLayoutHandler(registry, cfg.Logger, commands.WithTimeout[DeleteLayoutCommand](cfg.Timeout)),
	}
}

func handlerOptions[T command.Message](logger interfaces.Logger, operation string, target func(T) Target, extra []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(func(msg T) map[string]any { return target(msg).fields() }),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	return append(opts, extra...)
}
