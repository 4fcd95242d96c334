package cxauth

import (
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

type gateSink struct {
	gate chan struct{}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func newAuditTestEngine(t *testing.T, sink AuditSink, auditCfg AuditConfig) *Engine {
	t.Helper()

	store, _ := testCredentials(t)

	cfg := DefaultConfig()
	cfg.Token.Secret = engineTestSecret
	cfg.Password.Cost = bcrypt.MinCost
	cfg.Audit = auditCfg

	engine, err := New().
		WithConfig(cfg).
		WithCredentialStore(store).
		WithChallengeVerifier(staticVerifier{ok: true}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine
}

func TestAuditEventsDelivered(t *testing.T) {
	sink := NewChannelSink(16)
	e := newAuditTestEngine(t, sink, AuditConfig{Enabled: true, BufferSize: 16})
	t.Cleanup(e.Close)

	ctx := clientCtx("198.51.100.7")
	if _, err := e.Login(ctx, LoginRequest{Email: "sarah.mitchell@example.com", Password: "Demo2024!"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	select {
	case event := <-sink.Events():
		if event.EventType != "login.success" {
			t.Fatalf("expected login.success, got %q", event.EventType)
		}
		if event.ClientID != "198.51.100.7" {
			t.Fatalf("expected client ID in event, got %q", event.ClientID)
		}
		if !event.Success {
			t.Fatal("expected success event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestAuditFailureEventOmitsCredentialDetail(t *testing.T) {
	sink := NewChannelSink(16)
	e := newAuditTestEngine(t, sink, AuditConfig{Enabled: true, BufferSize: 16})
	t.Cleanup(e.Close)

	_, _ = e.Login(clientCtx("198.51.100.7"), LoginRequest{
		Email:    "nobody@example.com",
		Password: "WrongPassword",
	})

	select {
	case event := <-sink.Events():
		if event.EventType != "login.failure" {
			t.Fatalf("expected login.failure, got %q", event.EventType)
		}
		if event.Metadata["cause"] != "unknown_email" {
			t.Fatalf("expected internal cause in metadata, got %v", event.Metadata)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestAuditCloseFlushesBuffer(t *testing.T) {
	sink := &countingSink{}
	e := newAuditTestEngine(t, sink, AuditConfig{Enabled: true, BufferSize: 64})

	ctx := clientCtx("198.51.100.7")
	const logins = 10
	for i := 0; i < logins; i++ {
		_, _ = e.Login(ctx, LoginRequest{Email: "sarah.mitchell@example.com", Password: "WrongPassword"})
	}

	e.Close()

	if got := sink.count.Load(); got != logins {
		t.Fatalf("expected %d events after close, got %d", logins, got)
	}
}

func TestAuditDropsWhenFull(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	e := newAuditTestEngine(t, sink, AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true})
	t.Cleanup(func() {
		close(sink.gate)
		e.Close()
	})

	ctx := clientCtx("198.51.100.7")
	for i := 0; i < 8; i++ {
		_, _ = e.Login(ctx, LoginRequest{Email: "sarah.mitchell@example.com", Password: "WrongPassword"})
	}

	if e.AuditDropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}
}

func TestJSONWriterSinkOutput(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: "login.success",
		UserID:    "user-1",
		ClientID:  "198.51.100.7",
		Success:   true,
	})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("sink output is not valid JSON: %v", err)
	}
	if decoded["event_type"] != "login.success" {
		t.Fatalf("unexpected event_type: %v", decoded["event_type"])
	}
}
