package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"recording-logs/internal/client"
	"recording-logs/internal/domain"
)

type fakeFetcher struct {
	mu         sync.Mutex
	fetchCalls int
	records    []client.Record
	err        error
	// when set, FetchRecords blocks until released
	block chan struct{}

	requeued []string
	ack      json.RawMessage
}

func (f *fakeFetcher) FetchRecords(_ context.Context, startDate, endDate string) ([]client.Record, error) {
	f.mu.Lock()
	f.fetchCalls++
	block := f.block
	records, err := f.records, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return records, err
}

func (f *fakeFetcher) RequeueRecording(_ context.Context, taskID string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.requeued = append(f.requeued, taskID)
	return f.ack, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Warning(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func TestDefaultDateRange(t *testing.T) {
	v := New(&fakeFetcher{}, &recordingNotifier{})
	v.now = func() time.Time {
		return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	}
	v.resetDateRange()

	start, end := v.DateRange()
	require.Equal(t, "2024-05-08", start)
	require.Equal(t, "2024-05-15", end)
}

func TestSearchRequiresBothDates(t *testing.T) {
	api := &fakeFetcher{}
	notify := &recordingNotifier{}
	v := New(api, notify)

	v.SetDateRange("", "2024-05-15")
	v.Search(context.Background())
	v.SetDateRange("2024-05-08", "")
	v.Search(context.Background())

	require.Equal(t, 0, api.fetchCalls)
	require.Equal(t, []string{
		"Please select both start and end dates",
		"Please select both start and end dates",
	}, notify.warnings)
}

func TestSearchFetchesRecords(t *testing.T) {
	api := &fakeFetcher{records: []client.Record{{TaskID: "task-1", Status: domain.StatusSuccess}}}
	v := New(api, &recordingNotifier{})

	v.SetDateRange("2024-05-08", "2024-05-15")
	v.Search(context.Background())

	require.Equal(t, 1, api.fetchCalls)
	require.False(t, v.Loading())
	records := v.Records()
	require.Len(t, records, 1)
	require.Equal(t, "task-1", records[0].TaskID)
}

func TestFetchFailureResetsRecords(t *testing.T) {
	api := &fakeFetcher{records: []client.Record{{TaskID: "task-1"}}}
	notify := &recordingNotifier{}
	v := New(api, notify)

	v.Refresh(context.Background())
	require.Len(t, v.Records(), 1)

	api.mu.Lock()
	api.err = errors.New("connection refused")
	api.mu.Unlock()

	v.Refresh(context.Background())
	require.Empty(t, v.Records())
	require.False(t, v.Loading())
	require.Equal(t, []string{"Failed to load recording logs"}, notify.errors)
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	api := &fakeFetcher{
		records: []client.Record{{TaskID: "stale"}},
		block:   make(chan struct{}),
	}
	v := New(api, &recordingNotifier{})
	v.SetDateRange("2024-05-08", "2024-05-15")

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		v.Search(context.Background())
		close(done)
	}()
	<-started
	// let the first fetch reach the fetcher before issuing the second
	for {
		api.mu.Lock()
		calls := api.fetchCalls
		api.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	api.mu.Lock()
	stale := api.block
	api.block = nil
	api.records = []client.Record{{TaskID: "fresh"}}
	api.mu.Unlock()

	v.Search(context.Background())
	records := v.Records()
	require.Len(t, records, 1)
	require.Equal(t, "fresh", records[0].TaskID)

	// release the stale fetch; its result must not clobber the fresh one
	close(stale)
	<-done
	records = v.Records()
	require.Len(t, records, 1)
	require.Equal(t, "fresh", records[0].TaskID)
}

func TestFailureDetail(t *testing.T) {
	api := &fakeFetcher{records: []client.Record{
		{TaskID: "task-ok", Status: domain.StatusSuccess},
		{TaskID: "task-bad", Status: domain.StatusFailure, FailureMessage: "ffmpeg exited with code 1\nstderr: broken pipe"},
	}}
	v := New(api, &recordingNotifier{})
	v.Refresh(context.Background())

	detail, ok := v.FailureDetail("task-bad")
	require.True(t, ok)
	require.Equal(t, "task-bad", detail.TaskID)
	require.Equal(t, "ffmpeg exited with code 1\nstderr: broken pipe", detail.FailureMessage)

	_, ok = v.FailureDetail("task-ok")
	require.False(t, ok)
	_, ok = v.FailureDetail("no-such-task")
	require.False(t, ok)
}

func TestRequeue(t *testing.T) {
	api := &fakeFetcher{ack: json.RawMessage(`{"taskId":"task-bad","status":5}`)}
	notify := &recordingNotifier{}
	v := New(api, notify)

	ack, err := v.Requeue(context.Background(), "task-bad")
	require.NoError(t, err)
	require.JSONEq(t, `{"taskId":"task-bad","status":5}`, string(ack))
	require.Equal(t, []string{"task-bad"}, api.requeued)

	api.mu.Lock()
	api.err = errors.New("workflow not found")
	api.mu.Unlock()

	_, err = v.Requeue(context.Background(), "task-bad")
	require.Error(t, err)
	require.Equal(t, []string{"Failed to requeue recording"}, notify.errors)
}
