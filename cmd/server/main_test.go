package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayemen27/siteledger/internal/adapter/http/middleware"
	"github.com/ayemen27/siteledger/internal/infrastructure/config"
	"github.com/ayemen27/siteledger/internal/infrastructure/eventpublisher"
)

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:         "9090",
		HTTPReadTimeout:  5 * time.Second,
		HTTPWriteTimeout: 6 * time.Second,
		HTTPIdleTimeout:  7 * time.Second,
	}

	srv := newHTTPServer(cfg, http.NotFoundHandler())
	if srv.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", srv.Addr)
	}
	if srv.ReadTimeout != 5*time.Second || srv.WriteTimeout != 6*time.Second || srv.IdleTimeout != 7*time.Second {
		t.Fatalf("timeouts not applied: %+v", srv)
	}
}

func TestNewRateLimiterDisabled(t *testing.T) {
	if rl := newRateLimiter(&config.Config{RateLimitRPS: 0}, nil); rl != nil {
		t.Fatalf("expected nil rate limiter when RPS is 0")
	}
	if rl := newRateLimiter(&config.Config{RateLimitRPS: 5, RateLimitBurst: 10}, nil); rl == nil {
		t.Fatalf("expected rate limiter when RPS is set")
	}
}

func TestNewEventPublisherDefaultsToLog(t *testing.T) {
	p, closeFn, err := newEventPublisher(&config.Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := p.(*eventpublisher.LogPublisher); !ok {
		t.Fatalf("expected log publisher, got %T", p)
	}
}

func TestNewEventPublisherBadAMQPURL(t *testing.T) {
	_, _, err := newEventPublisher(&config.Config{AMQPURL: "not-a-url"}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected dial error for malformed AMQP URL")
	}
}

func TestCleanupVisitorsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		cleanupVisitors(ctx, middleware.NewRateLimiter(1, 1), zerolog.Nop())
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("cleanup loop did not stop")
	}
}
