// Package viewer holds the log viewer's data and state logic: the current
// date range, the fetched records, and the loading flag. Rendering is left to
// the caller.
package viewer

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"recording-logs/internal/client"
	"recording-logs/internal/domain"
)

const dateLayout = "2006-01-02"

// Fetcher is the slice of the API client the viewer needs.
type Fetcher interface {
	FetchRecords(ctx context.Context, startDate, endDate string) ([]client.Record, error)
	RequeueRecording(ctx context.Context, taskID string) (json.RawMessage, error)
}

// Notifier surfaces transient user-facing notifications.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// FailureDetail is what the failure view shows for a failed row.
type FailureDetail struct {
	TaskID         string
	FailureMessage string
}

type Viewer struct {
	api    Fetcher
	notify Notifier
	now    func() time.Time

	mu        sync.Mutex
	records   []client.Record
	loading   bool
	startDate string
	endDate   string
	// fetchSeq makes overlapping fetches last-request-wins: stale results
	// are discarded instead of clobbering a newer fetch.
	fetchSeq uint64
}

// New builds a viewer with the default date range of the last seven days.
func New(api Fetcher, notify Notifier) *Viewer {
	v := &Viewer{api: api, notify: notify, now: time.Now}
	v.resetDateRange()
	return v
}

func (v *Viewer) resetDateRange() {
	today := v.now()
	v.startDate = today.AddDate(0, 0, -7).Format(dateLayout)
	v.endDate = today.Format(dateLayout)
}

func (v *Viewer) Records() []client.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]client.Record, len(v.records))
	copy(out, v.records)
	return out
}

func (v *Viewer) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *Viewer) DateRange() (string, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.startDate, v.endDate
}

func (v *Viewer) SetDateRange(startDate, endDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.startDate = startDate
	v.endDate = endDate
}

// Search validates that both dates are entered before fetching. Missing dates
// warn locally and send no request.
func (v *Viewer) Search(ctx context.Context) {
	v.mu.Lock()
	start, end := v.startDate, v.endDate
	v.mu.Unlock()

	if start == "" || end == "" {
		v.notify.Warning("Please select both start and end dates")
		return
	}
	v.fetch(ctx, start, end)
}

// Refresh refetches with the current date range.
func (v *Viewer) Refresh(ctx context.Context) {
	v.mu.Lock()
	start, end := v.startDate, v.endDate
	v.mu.Unlock()

	v.fetch(ctx, start, end)
	v.notify.Success("Recording log table data refreshed.")
}

func (v *Viewer) fetch(ctx context.Context, startDate, endDate string) {
	v.mu.Lock()
	v.fetchSeq++
	seq := v.fetchSeq
	v.loading = true
	v.mu.Unlock()

	records, err := v.api.FetchRecords(ctx, startDate, endDate)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.fetchSeq {
		// a newer fetch owns the state now
		return
	}
	v.loading = false
	if err != nil {
		log.Printf("fetch recording logs: %v", err)
		v.records = nil
		v.notify.Error("Failed to load recording logs")
		return
	}
	v.records = records
}

// FailureDetail returns the detail view content for a failed row.
func (v *Viewer) FailureDetail(taskID string) (FailureDetail, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, rec := range v.records {
		if rec.TaskID != taskID {
			continue
		}
		if rec.Status != domain.StatusFailure && rec.Status != domain.StatusFailureRetry {
			return FailureDetail{}, false
		}
		return FailureDetail{TaskID: rec.TaskID, FailureMessage: rec.FailureMessage}, true
	}
	return FailureDetail{}, false
}

// Requeue resubmits a failed conversion and refreshes nothing on its own; the
// caller decides when to refetch.
func (v *Viewer) Requeue(ctx context.Context, taskID string) (json.RawMessage, error) {
	ack, err := v.api.RequeueRecording(ctx, taskID)
	if err != nil {
		v.notify.Error("Failed to requeue recording")
		return nil, err
	}
	v.notify.Success("Recording " + taskID + " requeued.")
	return ack, nil
}
