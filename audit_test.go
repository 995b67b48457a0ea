package goShield

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	sink := &countingSink{}
	cfg := guardTestConfig()
	cfg.Audit.Enabled = false

	// WithConfig last so the disabled flag survives the sink registration.
	guard, err := New().WithRedis(rdb).WithAuditSink(sink).WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := requestContext("203.0.113.1", "ua-v1")
	info, err := guard.InitializeSession(ctx, Principal{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitializeSession failed: %v", err)
	}
	if _, err := guard.ValidateSession(ctx, info.SessionID); err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	guard.Record(ctx, "CUSTOM_EVENT", nil)
	guard.Close()

	if got := sink.Count(); got != 0 {
		t.Fatalf("expected no sink calls with audit disabled, got %d", got)
	}
	if got := guard.AuditDropped(); got != 0 {
		t.Fatalf("expected no drops with audit disabled, got %d", got)
	}
}

func TestRecordAuthPrefixesEventType(t *testing.T) {
	sink := newCaptureSink(16)
	guard, _, done := buildTestGuard(t, guardTestConfig(), sink)
	defer done()

	ctx := requestContext("203.0.113.1", "ua-v1")
	guard.RecordAuth(ctx, "LOGIN_SUCCESS", "u1", map[string]string{"method": "password"})

	ev := waitForEvent(t, sink, "AUTH_LOGIN_SUCCESS")
	if ev.UserID != "u1" || ev.IP != "203.0.113.1" || ev.UserAgent != "ua-v1" {
		t.Fatalf("unexpected event payload: %+v", ev)
	}
	if ev.Details["method"] != "password" {
		t.Fatalf("unexpected details: %+v", ev.Details)
	}
}

func TestRecordAccessPrefixesAndCarriesResource(t *testing.T) {
	sink := newCaptureSink(16)
	guard, _, done := buildTestGuard(t, guardTestConfig(), sink)
	defer done()

	guard.RecordAccess(context.Background(), "DELETE", "u1", "/products/42", nil)

	ev := waitForEvent(t, sink, "ACCESS_DELETE")
	if ev.UserID != "u1" || ev.Details["resource"] != "/products/42" {
		t.Fatalf("unexpected event payload: %+v", ev)
	}
}

func TestAuditDropIfFullCountsDrops(t *testing.T) {
	cfg := guardTestConfig()
	cfg.Audit.BufferSize = 1
	cfg.Audit.DropIfFull = true

	sink := newGateSink()
	guard, mr, _ := buildTestGuard(t, cfg, sink)
	defer mr.Close()

	// The worker blocks on the first event, the buffer holds one more, the
	// rest must be dropped without blocking the caller.
	for i := 0; i < 10; i++ {
		guard.Record(context.Background(), "CUSTOM_EVENT", nil)
	}

	deadline := time.After(2 * time.Second)
	for guard.AuditDropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected dropped events with a full buffer")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	close(sink.gate)
	guard.Close()
}

func TestCloseDrainsBufferedEvents(t *testing.T) {
	sink := NewChannelSink(16)
	guard, mr, _ := buildTestGuard(t, guardTestConfig(), sink)
	defer mr.Close()

	ctx := context.Background()
	guard.Record(ctx, "EVENT_A", nil)
	guard.Record(ctx, "EVENT_B", nil)
	guard.Record(ctx, "EVENT_C", nil)
	guard.Close()

	got := 0
	for {
		select {
		case <-sink.Events():
			got++
		default:
			if got != 3 {
				t.Fatalf("expected 3 drained events, got %d", got)
			}
			return
		}
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Unix(1_700_000_000, 0).UTC(),
		EventType: EventSessionInitialized,
		UserID:    "u1",
		SessionID: "s1",
	})
	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Unix(1_700_000_060, 0).UTC(),
		EventType: EventSessionCleaned,
		UserID:    "u1",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var ev AuditEvent
	if err := json.Unmarshal(lines[0], &ev); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ev.EventType != EventSessionInitialized || ev.UserID != "u1" || ev.SessionID != "s1" {
		t.Fatalf("unexpected decoded event: %+v", ev)
	}
}
