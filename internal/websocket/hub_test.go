package websocket

import (
	"context"
	"testing"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }
func (quietLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (quietLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

func (h *Hub) clientCount(tenantId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[tenantId])
}

func runSummary(runId string) dto.RunSummary {
	return dto.RunSummary{RunId: runId, Status: "running"}
}

func TestHubDeliversToRegisteredClient(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	client := &Client{Hub: h, TenantId: "acme", Send: make(chan []byte, 8)}
	h.register <- client
	require.Eventually(t, func() bool { return h.clientCount("acme") == 1 },
		time.Second, 5*time.Millisecond)

	h.PublishRunEvent(context.Background(), "acme", "ingestion_run_started", runSummary("run-1"))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "run-1")
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	// other tenants stay silent
	h.PublishRunEvent(context.Background(), "globex", "ingestion_run_started", runSummary("run-2"))
	select {
	case msg := <-client.Send:
		t.Fatalf("cross-tenant delivery: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsSlowClientWithoutPanicking(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	// one-slot buffer that nobody drains
	slow := &Client{Hub: h, TenantId: "acme", Send: make(chan []byte, 1)}
	h.register <- slow
	require.Eventually(t, func() bool { return h.clientCount("acme") == 1 },
		time.Second, 5*time.Millisecond)

	ctx := context.Background()
	h.PublishRunEvent(ctx, "acme", "ingestion_run_started", runSummary("run-1"))
	h.PublishRunEvent(ctx, "acme", "ingestion_run_finished", runSummary("run-1"))

	// the hub must survive and unregister the stalled session exactly once
	require.Eventually(t, func() bool { return h.clientCount("acme") == 0 },
		time.Second, 5*time.Millisecond)

	// Send is closed by the unregister branch after the buffered event
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)

	// a healthy client still receives afterwards
	healthy := &Client{Hub: h, TenantId: "acme", Send: make(chan []byte, 8)}
	h.register <- healthy
	require.Eventually(t, func() bool { return h.clientCount("acme") == 1 },
		time.Second, 5*time.Millisecond)

	h.PublishRunEvent(ctx, "acme", "ingestion_run_failed", runSummary("run-2"))
	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "run-2")
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a slow client")
	}
}
