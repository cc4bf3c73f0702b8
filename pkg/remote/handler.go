package remote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/williamma12/ray/pkg/callid"
	"github.com/williamma12/ray/pkg/logger"
	"github.com/williamma12/ray/pkg/queue"
)

// HandlerOption configures NewHandler
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	logger  *slog.Logger
	metrics *Metrics
	checks  []func(context.Context) error
}

// WithHandlerLogger sets the request logger
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHandlerMetrics records every store route into m
func WithHandlerMetrics(m *Metrics) HandlerOption {
	return func(o *handlerOptions) {
		o.metrics = m
	}
}

// WithHealthChecks adds readiness checks to the health route
func WithHealthChecks(checks ...func(context.Context) error) HandlerOption {
	return func(o *handlerOptions) {
		for _, c := range checks {
			if c != nil {
				o.checks = append(o.checks, c)
			}
		}
	}
}

type handler struct {
	store  queue.Store[json.RawMessage]
	logger *slog.Logger
}

// NewHandler exposes store over HTTP. Items travel as raw JSON, so one
// handler serves clients of any item type. Each route performs exactly one
// store primitive; waiting is left to the clients.
func NewHandler(store queue.Store[json.RawMessage], opts ...HandlerOption) (http.Handler, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	o := &handlerOptions{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	h := &handler{store: store, logger: o.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(callid.Middleware)
	r.Use(requestLogger(o.logger))

	r.Method(http.MethodPost, PathPut, o.metrics.instrument(PathPut, h.put))
	r.Method(http.MethodPost, PathGet, o.metrics.instrument(PathGet, h.get))
	r.Method(http.MethodGet, PathSize, o.metrics.instrument(PathSize, h.size))
	r.Get(PathHealth, HealthCheckHandler(o.logger, o.checks...))

	return r, nil
}

func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Join(queue.ErrCodec, err))
		return
	}
	if len(req.Item) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("missing item"))
		return
	}

	ok, err := h.store.TryPut(r.Context(), req.Item)
	if err != nil {
		h.storeFailed(w, r, queue.OperationPut, err)
		return
	}
	writeJSON(w, http.StatusOK, putResponse{OK: ok})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	item, ok, err := h.store.TryGet(r.Context())
	if err != nil {
		h.storeFailed(w, r, queue.OperationGet, err)
		return
	}
	writeJSON(w, http.StatusOK, getResponse{OK: ok, Item: item})
}

func (h *handler) size(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Size(r.Context())
	if err != nil {
		h.storeFailed(w, r, queue.OperationSize, err)
		return
	}
	writeJSON(w, http.StatusOK, sizeResponse{Size: n, Capacity: h.store.Capacity()})
}

func (h *handler) storeFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), "store request failed",
		logger.Operation(op),
		logger.Error(err))
	writeError(w, http.StatusServiceUnavailable, err)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.DebugContext(r.Context(), "store request served",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
