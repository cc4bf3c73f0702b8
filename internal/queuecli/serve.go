package queuecli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/williamma12/ray/pkg/callid"
	"github.com/williamma12/ray/pkg/config"
	"github.com/williamma12/ray/pkg/logger"
	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/remote"
)

const (
	serviceName        = "queued"
	sizeSampleInterval = 5 * time.Second
)

func serveCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host a queue buffer and serve it over HTTP",
		Long: `serve owns a single FIFO buffer, in memory or in a Redis list
(QUEUE_BACKEND), and exposes its primitives over HTTP for remote clients.
Prometheus metrics are served on /metrics and readiness on /healthz.

Settings are read from the environment and an optional .env file; --prefix
selects a prefixed set of queue variables, e.g. JOBS_QUEUE_CAPACITY.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				logCfg   logger.Config
				queueCfg queue.Config
				srvCfg   remote.Config
			)
			if err := config.Load(&logCfg); err != nil {
				return err
			}
			if err := config.Load(&queueCfg, config.WithPrefix(prefix)); err != nil {
				return err
			}
			if err := config.Load(&srvCfg); err != nil {
				return err
			}

			log, err := logger.NewFromConfig(logCfg, serviceName,
				logger.WithContextExtractors(callid.LoggerExtractor()))
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			return serve(cmd.Context(), log, queueCfg, srvCfg)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix of the QUEUE_* environment variables.")

	return cmd
}

func serve(ctx context.Context, log *slog.Logger, queueCfg queue.Config, srvCfg remote.Config) error {
	b, err := openBackend(ctx, log, queueCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.close(); err != nil {
			log.Error("failed to close store", logger.Error(err))
		}
	}()

	reg := newRegistry()
	handler, err := newHandler(b, reg, log)
	if err != nil {
		return err
	}

	sizeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "fifo_queue",
		Name:        "size",
		Help:        "Number of items in the buffer at the last sample.",
		ConstLabels: prometheus.Labels{"queue": queueCfg.Name},
	})
	reg.MustRegister(sizeGauge)

	log.InfoContext(ctx, "queue owner ready",
		logger.Queue(queueCfg.Name),
		logger.Capacity(queueCfg.Capacity),
		slog.String("backend", queueCfg.Backend))

	srv := remote.NewServerFromConfig(srvCfg, remote.WithServerLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, handler)
	})
	g.Go(func() error {
		sampleSize(ctx, log, b.store, sizeGauge)
		return nil
	})

	return g.Wait()
}

// newRegistry returns the registry served on /metrics, with the Go runtime
// and process collectors already registered.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newHandler mounts the store routes and /metrics on one router.
func newHandler(b *backend, reg *prometheus.Registry, log *slog.Logger) (http.Handler, error) {
	metrics, err := remote.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	storeHandler, err := remote.NewHandler(b.store,
		remote.WithHandlerLogger(log),
		remote.WithHandlerMetrics(metrics),
		remote.WithHealthChecks(b.checks...),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/", storeHandler)
	return r, nil
}

func sampleSize(ctx context.Context, log *slog.Logger, store queue.Store[json.RawMessage], g prometheus.Gauge) {
	ticker := time.NewTicker(sizeSampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Size(ctx)
			if err != nil {
				log.WarnContext(ctx, "failed to sample queue size", logger.Error(err))
				continue
			}
			g.Set(float64(n))
		}
	}
}
