package pipeline

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"
)

// RequeueSignalName is the signal the conversion pipeline's per-task workflow
// listens on to resubmit a failed conversion.
const RequeueSignalName = "requeueConversion"

type RequeueSignal struct {
	TaskID string `json:"taskId"`
}

// Dispatcher hands failed conversions back to the external pipeline. The
// pipeline owns the workflows; this side only signals them.
type Dispatcher struct {
	temporal         client.Client
	workflowIDPrefix string
}

func NewDispatcher(temporalClient client.Client, workflowIDPrefix string) *Dispatcher {
	return &Dispatcher{temporal: temporalClient, workflowIDPrefix: workflowIDPrefix}
}

func (d *Dispatcher) WorkflowID(taskID string) string {
	return fmt.Sprintf("%s-%s", d.workflowIDPrefix, taskID)
}

func (d *Dispatcher) RequeueConversion(ctx context.Context, taskID string) error {
	return d.temporal.SignalWorkflow(ctx, d.WorkflowID(taskID), "", RequeueSignalName, RequeueSignal{TaskID: taskID})
}
