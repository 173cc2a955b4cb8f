package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"recording-logs/internal/config"
	"recording-logs/internal/domain"
	"recording-logs/internal/storage"
)

const dateLayout = "2006-01-02"

type Handler struct {
	cfg      config.Config
	store    storage.RecordStore
	docs     documentStore
	pipeline requeueDispatcher
}

type documentStore interface {
	GetConvertedDocument(ctx context.Context, documentumID string) ([]byte, error)
}

type requeueDispatcher interface {
	RequeueConversion(ctx context.Context, taskID string) error
}

type requeueRequest struct {
	TaskID string `json:"taskId"`
}

func NewHandler(cfg config.Config, store storage.RecordStore, docs documentStore, pipeline requeueDispatcher) *Handler {
	return &Handler{cfg: cfg, store: store, docs: docs, pipeline: pipeline}
}

// GetRecordingLogs returns every conversion record created inside the
// requested date range, end date inclusive of its whole calendar day.
func (h *Handler) GetRecordingLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Start and end dates are required"})
		return
	}

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	log.Printf("recording-log query: startDate=%s endDate=%s window=[%s, %s]",
		startDate, endDate, start.Format(time.RFC3339), end.Format(time.RFC3339))

	records, err := h.store.ListByCreatedRange(ctx, start, end)
	if err != nil {
		log.Printf("recording-log query failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to fetch recording logs",
			"message": err.Error(),
		})
		return
	}
	if records == nil {
		records = []domain.ConversionRecord{}
	}

	log.Printf("recording-log query: %d records", len(records))
	writeJSON(w, http.StatusOK, records)
}

// RequeueRecording moves a failed conversion to FAILURE_RETRY and signals the
// pipeline workflow to pick it up again.
func (h *Handler) RequeueRecording(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req requeueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if req.TaskID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "taskId is required"})
		return
	}

	rec, err := h.store.GetRecord(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "recording not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to fetch recording"})
		return
	}
	if rec.Status != domain.StatusFailure && rec.Status != domain.StatusFailureRetry {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "recording is not in a failed state"})
		return
	}

	if err := h.store.UpdateStatus(ctx, req.TaskID, domain.StatusFailureRetry); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to update recording status"})
		return
	}
	if err := h.pipeline.RequeueConversion(ctx, req.TaskID); err != nil {
		log.Printf("requeue signal failed for %s: %v", req.TaskID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to signal conversion pipeline"})
		return
	}

	log.Printf("requeued recording %s", req.TaskID)
	writeJSON(w, http.StatusAccepted, map[string]any{
		"taskId": req.TaskID,
		"status": domain.StatusFailureRetry,
	})
}

// GetConvertedDocument streams the converted document for a completed
// conversion out of object storage.
func (h *Handler) GetConvertedDocument(w http.ResponseWriter, r *http.Request, taskID string) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	rec, err := h.store.GetRecord(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "recording not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to fetch recording"})
		return
	}
	if rec.Status != domain.StatusSuccess {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "conversion has not completed"})
		return
	}
	if rec.DocumentumID == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no converted document recorded"})
		return
	}

	body, err := h.docs.GetConvertedDocument(ctx, rec.DocumentumID)
	if err != nil {
		if storage.IsObjectMissing(err) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "converted document not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to fetch converted document"})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// parseDateRange widens two calendar dates to the UTC instant range
// [start 00:00:00, end 23:59:59] so the end date covers its full day.
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q", endDate)
	}
	return start, end.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
