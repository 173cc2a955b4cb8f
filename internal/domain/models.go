package domain

import "time"

// ConversionRecord is one recording-to-document conversion job as stored in
// the record store. Field names follow the store vocabulary; the API client
// maps them to the display vocabulary.
type ConversionRecord struct {
	TaskID         string    `json:"taskId"`
	AgentName      string    `json:"agentName"`
	FormName       string    `json:"formName"`
	Program        string    `json:"program"`
	CaseNumber     string    `json:"caseNumber"`
	AppNumber      string    `json:"appNumber"`
	CaseUUID       string    `json:"caseUUID"`
	DocumentumID   string    `json:"documentumId"`
	CreatedOn      time.Time `json:"createdOn"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Status         Status    `json:"status,omitempty"`
	FailureMessage string    `json:"failureMessage,omitempty"`
}
