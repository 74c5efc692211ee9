package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/gaugekit/pkg/buildinfo"
	"github.com/matzehuels/gaugekit/pkg/cache"
	"github.com/matzehuels/gaugekit/pkg/config"
	gkerrors "github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/observability"
	"github.com/matzehuels/gaugekit/pkg/pipeline"
)

// requestIDHeader carries the request id in both directions.
const requestIDHeader = "X-Request-ID"

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

type serveOpts struct {
	addr    string
	redis   string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render gauges over HTTP",
		Long: `Serve renders single-scale gauges described by query parameters:

  GET /render/{format}?min=0&max=50&value=21.5&kind=bar&orientation=vertical

Identical concurrent requests are rendered once. With --redis, artifacts are
shared through Redis instead of the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL or host:port for the shared artifact cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newServeRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("listening", "addr", opts.addr, "version", buildinfo.Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServeRunner picks the Redis cache when configured, falling back to the
// CLI cache. Server keys are scoped so they never collide with CLI entries
// in a shared store.
func (c *CLI) newServeRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve")
	if opts.redis != "" && !opts.noCache {
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redis)
		return pipeline.NewRunner(rc, keyer, c.Logger), nil
	}
	cc, err := newCache(opts.noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// server handles render requests.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	group  singleflight.Group
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"date":    buildinfo.Date,
		})
	})
	r.Get("/render/{format}", s.handleRender)
	return r
}

// requestContext assigns a request id, echoes it, and attaches a logger
// carrying it to the request context.
func (s *server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		w.Header().Set("Server", buildinfo.UserAgent())
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports requests to the HTTP hooks and the request logger.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), dur)
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", dur)
	})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := config.FromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Encode sorts the parameters, so equivalent queries share a key.
	key := format + "?" + r.URL.Query().Encode()
	ctx := context.WithoutCancel(r.Context())
	v, err, shared := s.group.Do(key, func() (any, error) {
		res, err := s.runner.Execute(ctx, pipeline.Options{Config: cfg, Formats: []string{format}})
		if err != nil {
			return nil, err
		}
		return res.Artifacts[format], nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shared {
		loggerFromContext(r.Context()).Debug("coalesced render", "key", key)
	}

	data := v.([]byte)
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := gkerrors.HTTPStatus(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("render failed", "err", err)
	}
	code := string(gkerrors.GetCode(err))
	if code == "" {
		code = string(gkerrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorBody{Code: code, Message: gkerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
