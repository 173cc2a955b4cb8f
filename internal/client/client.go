// Package client is the HTTP client the log viewer talks to the query
// service through. It normalizes the response envelope and maps store field
// names to the display vocabulary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"recording-logs/internal/domain"
)

// Record is a conversion record in the display vocabulary.
type Record struct {
	TaskID         string        `json:"TaskId"`
	AgentName      string        `json:"AgentName"`
	FormName       string        `json:"FormName"`
	Program        string        `json:"Program"`
	DocumentumID   string        `json:"DocumentumID"`
	CaseNumber     string        `json:"CaseNumber"`
	AppNumber      string        `json:"AppNumber"`
	CaseUUID       string        `json:"CaseUUID"`
	UploadedOn     string        `json:"UploadedOn"`
	Status         domain.Status `json:"Status"`
	FailureMessage string        `json:"FailureMessage,omitempty"`
}

type rawRecord struct {
	TaskID         string        `json:"taskId"`
	AgentName      string        `json:"agentName"`
	FormName       string        `json:"formName"`
	Program        string        `json:"program"`
	DocumentumID   string        `json:"documentumId"`
	CaseNumber     string        `json:"caseNumber"`
	AppNumber      string        `json:"appNumber"`
	CaseUUID       string        `json:"caseUUID"`
	UpdatedAt      string        `json:"updatedAt"`
	Status         domain.Status `json:"status"`
	FailureMessage string        `json:"failureMessage"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// FetchRecords queries the recording log for the date range and returns the
// records display-mapped. Transport and decode failures propagate to the
// caller; an unrecognized envelope degrades to an empty result instead.
func (c *Client) FetchRecords(ctx context.Context, startDate, endDate string) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/recording-log?startDate=%s&endDate=%s",
		c.baseURL, url.QueryEscape(startDate), url.QueryEscape(endDate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recording-log query failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	raws, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, mapRecord(raw))
	}
	return records, nil
}

// RequeueRecording posts the task id to the requeue endpoint and returns the
// backend acknowledgement unchanged.
func (c *Client) RequeueRecording(ctx context.Context, taskID string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"taskId": taskID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recording", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("requeue failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.RawMessage(body), nil
}

type envelopeShape int

const (
	shapeArray envelopeShape = iota
	shapeNestedRecords
	shapeFlatRecords
	shapeUnrecognized
)

type wrappedEnvelope struct {
	Data *struct {
		Records []rawRecord `json:"records"`
	} `json:"data"`
	Records []rawRecord `json:"records"`
}

// decodeEnvelope extracts the record array from one of the tolerated response
// shapes: a bare array, {data:{records:[...]}}, or {records:[...]}. Anything
// else decodes to an empty sequence; the backend's wrapping format is not
// contractually fixed.
func decodeEnvelope(body []byte) ([]rawRecord, error) {
	raws, _, err := decodeEnvelopeShape(body)
	return raws, err
}

func decodeEnvelopeShape(body []byte) ([]rawRecord, envelopeShape, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []rawRecord
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, shapeArray, err
		}
		return raws, shapeArray, nil
	}

	var env wrappedEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, shapeUnrecognized, err
	}
	switch {
	case env.Data != nil && env.Data.Records != nil:
		return env.Data.Records, shapeNestedRecords, nil
	case env.Records != nil:
		return env.Records, shapeFlatRecords, nil
	default:
		return []rawRecord{}, shapeUnrecognized, nil
	}
}

func mapRecord(raw rawRecord) Record {
	status := raw.Status
	if status == 0 {
		status = domain.StatusProcessing
	}
	return Record{
		TaskID:         raw.TaskID,
		AgentName:      raw.AgentName,
		FormName:       raw.FormName,
		Program:        raw.Program,
		DocumentumID:   raw.DocumentumID,
		CaseNumber:     raw.CaseNumber,
		AppNumber:      raw.AppNumber,
		CaseUUID:       raw.CaseUUID,
		UploadedOn:     raw.UpdatedAt,
		Status:         status,
		FailureMessage: raw.FailureMessage,
	}
}
