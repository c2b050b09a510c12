package eventpublisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
)

func sampleEvent(id string) domain.SnapshotSavedEvent {
	return domain.SnapshotSavedEvent{
		SnapshotID:       id,
		ProjectID:        "p1",
		Date:             "2024-01-02",
		RemainingBalance: decimal.NewFromInt(3800),
		OccurredAt:       time.Date(2024, 1, 3, 0, 5, 0, 0, time.UTC),
	}
}

type stubPublisher struct {
	mu         sync.Mutex
	published  []domain.SnapshotSavedEvent
	errorsByID map[string]error
}

func (s *stubPublisher) Publish(ctx context.Context, event domain.SnapshotSavedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errorsByID[event.SnapshotID]; err != nil {
		return err
	}
	s.published = append(s.published, event)
	return nil
}

func (s *stubPublisher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func TestPublishSnapshotSavedQueueFull(t *testing.T) {
	ep := NewEventPublisher(Config{Publisher: &stubPublisher{}, Logger: zerolog.Nop(), QueueSize: 1})
	ctx := context.Background()

	if err := ep.PublishSnapshotSaved(ctx, sampleEvent("a")); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}
	if err := ep.PublishSnapshotSaved(ctx, sampleEvent("b")); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestStartDeliversAndContinuesOnError(t *testing.T) {
	pub := &stubPublisher{errorsByID: map[string]error{"a": errors.New("broker down")}}
	ep := NewEventPublisher(Config{Publisher: pub, Logger: zerolog.Nop()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	for _, id := range []string{"a", "b", "c"} {
		if err := ep.PublishSnapshotSaved(ctx, sampleEvent(id)); err != nil {
			t.Fatalf("enqueue %s failed: %v", id, err)
		}
	}

	deadline := time.Now().Add(time.Second)
	for pub.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}

	if pub.count() != 2 {
		t.Fatalf("expected b and c to be published, got %d", pub.count())
	}
}

func TestStartDrainsQueueOnShutdown(t *testing.T) {
	pub := &stubPublisher{}
	ep := NewEventPublisher(Config{Publisher: pub, Logger: zerolog.Nop()})

	for _, id := range []string{"a", "b"} {
		if err := ep.PublishSnapshotSaved(context.Background(), sampleEvent(id)); err != nil {
			t.Fatalf("enqueue %s failed: %v", id, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = ep.Start(ctx)

	if pub.count() != 2 {
		t.Fatalf("expected queued events to be flushed, got %d", pub.count())
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLogPublisher(zerolog.New(&buf)).Publish(context.Background(), sampleEvent("snap-1")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"snapshot_id":"snap-1"`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := NewAMQPPublisher(ch, "siteledger.events", "snapshot.saved")

	if err := p.Publish(context.Background(), sampleEvent("snap-1")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if ch.exchange != "siteledger.events" || ch.key != "snapshot.saved" {
		t.Fatalf("unexpected routing: %s %s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.MessageId != "snap-1" || ch.msg.Type != domain.EventTypeSnapshotSaved {
		t.Fatalf("unexpected message properties: %+v", ch.msg)
	}

	var decoded domain.SnapshotSavedEvent
	if err := json.Unmarshal(ch.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if !decoded.RemainingBalance.Equal(decimal.NewFromInt(3800)) {
		t.Fatalf("unexpected body: %+v", decoded)
	}
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := NewAMQPPublisher(&recordingChannel{err: boom}, "x", "k")

	if err := p.Publish(context.Background(), sampleEvent("snap-1")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped channel error, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close without connection should be a no-op: %v", err)
	}
}
