package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"robocon-bot/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"golang.org/x/sync/errgroup"
)

const (
	WebhookPath  = "/telegram/webhook"
	HealthPath   = "/healthz"
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
)

type WebhookConfig struct {
	Addr string
	// PublicURL is registered with setWebhook on start when non-empty.
	PublicURL       string
	Secret          string
	Concurrency     int
	LogJSON         bool
	ShutdownTimeout time.Duration
}

func DefaultWebhookConfig() WebhookConfig {
	return WebhookConfig{
		Addr:            ":8080",
		Concurrency:     8,
		LogJSON:         true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// WebhookServer receives updates pushed by Telegram.
type WebhookServer struct {
	client     *Client
	dispatcher *Dispatcher
	logger     output.LoggerPort
	cfg        WebhookConfig

	group   errgroup.Group
	baseCtx context.Context
}

func NewWebhookServer(client *Client, dispatcher *Dispatcher, logger output.LoggerPort, cfg WebhookConfig) *WebhookServer {
	def := DefaultWebhookConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	s := &WebhookServer{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		baseCtx:    context.Background(),
	}
	s.group.SetLimit(cfg.Concurrency)
	return s
}

// Router exposes the HTTP routes.
func (s *WebhookServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httplog.NewLogger("robocon-bot", httplog.Options{
		JSON: s.cfg.LogJSON,
	})))
	r.Use(middleware.Recoverer)

	r.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post(WebhookPath, s.handleUpdate)
	return r
}

func (s *WebhookServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Secret != "" {
		got := r.Header.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.Secret)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	var update Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&update); err != nil {
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}

	// Telegram retries deliveries that are not acknowledged quickly, so the
	// turn runs after the response is written. When every slot is busy the
	// delivery is refused and Telegram redelivers it later.
	ctx := s.baseCtx
	started := s.group.TryGo(func() error {
		s.dispatcher.Dispatch(ctx, update)
		return nil
	})
	if !started {
		s.logger.Warn("Webhook busy, refusing update", "updateId", update.UpdateID)
		http.Error(w, "busy", http.StatusTooManyRequests)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Run serves until ctx is cancelled, then drains in-flight turns.
func (s *WebhookServer) Run(ctx context.Context) error {
	s.baseCtx = ctx

	if s.cfg.PublicURL != "" {
		if err := s.client.SetWebhook(ctx, s.cfg.PublicURL, s.cfg.Secret); err != nil {
			return err
		}
		s.logger.Info("Webhook registered", "url", s.cfg.PublicURL)
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Webhook server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		_ = s.group.Wait()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Webhook server shutdown", "error", err)
	}
	_ = s.group.Wait()
	return ctx.Err()
}
