// Package runtime assembles the speech node: embedded broker, bus
// client, node registry, utterance history, the synthesis service, and
// the HTTP health/metrics surface.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/formantlabs/formant-core/internal/bus"
	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/history"
	"github.com/formantlabs/formant-core/internal/natsserver"
	"github.com/formantlabs/formant-core/internal/registry"
	"github.com/formantlabs/formant-core/internal/speech"
)

type Runtime struct {
	cfg         config.Config
	logger      *slog.Logger
	httpServer  *http.Server
	tracerClose func(context.Context) error
	ready       atomic.Bool
	wg          sync.WaitGroup

	broker   *natsserver.EmbeddedServer
	bus      *bus.Client
	registry *registry.Registry
	store    *history.Store
	speech   *speech.Service
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricsHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.tracerClose = shutdownTelemetry

	if err := r.startComponents(ctx); err != nil {
		r.closeComponents()
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", r.handleHealth)
	mux.HandleFunc("/readyz", r.handleReady)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	r.ready.Store(true)
	r.logger.Info("runtime started",
		slog.String("addr", addr),
		slog.String("speech_mode", r.cfg.Speech.Mode),
		slog.String("voice", r.cfg.Speech.Voice))

	<-ctx.Done()
	r.ready.Store(false)
	r.logger.Info("runtime stopping")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	r.wg.Wait()

	r.closeComponents()

	if r.tracerClose != nil {
		if err := r.tracerClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

func (r *Runtime) startComponents(ctx context.Context) error {
	busCfg := r.cfg.Bus
	broker, err := natsserver.Start(busCfg, r.logger)
	if err != nil {
		return fmt.Errorf("start embedded broker: %w", err)
	}
	r.broker = broker
	if broker != nil {
		busCfg.Servers = []string{broker.ClientURL()}
	}

	client, err := bus.Connect(ctx, busCfg, r.logger)
	if err != nil {
		return fmt.Errorf("connect bus: %w", err)
	}
	r.bus = client

	store, err := history.Open(ctx, r.cfg.History, r.logger)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	r.store = store

	reg, err := registry.NewRegistry(ctx, r.cfg.Node, client, r.logger)
	if err != nil {
		return fmt.Errorf("start registry: %w", err)
	}
	r.registry = reg

	synth, err := r.buildSynthesizer()
	if err != nil {
		return err
	}
	svc := speech.NewService(ctx, r.cfg.Speech, client, synth, store, r.logger)
	if err := svc.Start(); err != nil {
		return fmt.Errorf("start speech service: %w", err)
	}
	r.speech = svc

	return nil
}

func (r *Runtime) buildSynthesizer() (speech.Synthesizer, error) {
	cfg := r.cfg.Speech
	switch cfg.Mode {
	case "formant":
		return speech.NewFormantSynth(cfg)
	case "mock":
		return speech.NewMockSynth(cfg.SampleRate, cfg.Channels), nil
	case "exec":
		return speech.NewExecSynth(cfg.Command, cfg.SampleRate, cfg.Channels)
	default:
		return nil, fmt.Errorf("unknown speech mode %q", cfg.Mode)
	}
}

func (r *Runtime) closeComponents() {
	if r.speech != nil {
		r.speech.Close()
	}
	if r.registry != nil {
		r.registry.Close()
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Error("history close error", slog.String("error", err.Error()))
		}
	}
	if r.bus != nil {
		r.bus.Close()
	}
	if r.broker != nil {
		r.broker.Shutdown()
	}
}

func (r *Runtime) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if r.bus != nil && !r.bus.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("bus disconnected"))
		return
	}
	if r.speech != nil && !r.speech.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("speech service down"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Runtime) handleReady(w http.ResponseWriter, _ *http.Request) {
	if r.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
