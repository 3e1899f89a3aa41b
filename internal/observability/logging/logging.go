package logging

import (
	"context"
	"io"
	"log/slog"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvStg  Environment = "stg"
	EnvProd Environment = "prod"
)

// Module names the component a log line comes from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	Writer        io.Writer
	Level         slog.Leveler
	Service       ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
}

// contextHandler adds request scoped attributes (request id, module, trace
// correlation) to every record logged with a *Context call.
type contextHandler struct {
	slog.Handler
	projectID     string
	defaultModule Module
}

func NewHandler(cfg HandlerConfig) slog.Handler {
	base := slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: replaceAttr,
	})

	service := []any{slog.String("name", cfg.Service.Name), slog.String("version", cfg.Service.Version)}
	if cfg.Service.Revision != "" {
		service = append(service, slog.String("revision", cfg.Service.Revision))
	}

	return &contextHandler{
		Handler: base.WithAttrs([]slog.Attr{
			slog.Group("service", service...),
			slog.String("env", string(cfg.Environment)),
		}),
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}

	r.AddAttrs(traceAttrs(ctx, h.projectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID, defaultModule: h.defaultModule}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID, defaultModule: h.defaultModule}
}

// replaceAttr renames the level and message keys to what Cloud Logging parses.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
