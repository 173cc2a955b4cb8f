//go:build system

package system_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"time"

	"recording-logs/internal/api"
	"recording-logs/internal/config"
	"recording-logs/internal/domain"
	"recording-logs/internal/storage"
)

// recordingDispatcher stands in for the Temporal hand-off; the blackbox suite
// runs without pipeline infrastructure and only asserts on emitted signals.
type recordingDispatcher struct {
	mu       sync.Mutex
	requeued []string
}

func (d *recordingDispatcher) RequeueConversion(_ context.Context, taskID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requeued = append(d.requeued, taskID)
	return nil
}

func (d *recordingDispatcher) Requeued() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.requeued))
	copy(out, d.requeued)
	return out
}

type noopDocs struct{}

func (noopDocs) GetConvertedDocument(context.Context, string) ([]byte, error) {
	return nil, nil
}

type systemHarness struct {
	store      *storage.SQLiteStore
	dispatcher *recordingDispatcher
	server     *httptest.Server
}

func startHarness(dir string) (*systemHarness, error) {
	store, err := storage.NewSQLiteStore(filepath.Join(dir, "recording_logs.db"))
	if err != nil {
		return nil, err
	}

	dispatcher := &recordingDispatcher{}
	h := api.NewHandler(config.Config{}, store, noopDocs{}, dispatcher)
	server := httptest.NewServer(api.NewRouter(h))

	return &systemHarness{store: store, dispatcher: dispatcher, server: server}, nil
}

func (h *systemHarness) stop() {
	h.server.Close()
	_ = h.store.Close()
}

func (h *systemHarness) seed(taskID, createdOn string, status domain.Status, failureMessage string) error {
	created, err := time.Parse(time.RFC3339, createdOn)
	if err != nil {
		return err
	}
	return h.store.PutRecord(context.Background(), domain.ConversionRecord{
		TaskID:         taskID,
		AgentName:      "agent-smith",
		FormName:       "intake-form",
		Program:        "medicaid",
		CaseNumber:     "C-100",
		AppNumber:      "A-200",
		CaseUUID:       "11111111-2222-3333-4444-555555555555",
		CreatedOn:      created,
		UpdatedAt:      created,
		Status:         status,
		FailureMessage: failureMessage,
	})
}
