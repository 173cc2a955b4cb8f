package domain

// Status tracks a conversion job through the external pipeline. The pipeline
// owns all transitions except FAILURE -> FAILURE_RETRY, which a requeue
// request performs here.
type Status int

const (
	StatusQueued       Status = 1
	StatusSuccess      Status = 2
	StatusFailure      Status = 3
	StatusProcessing   Status = 4
	StatusFailureRetry Status = 5
)

func (s Status) Valid() bool {
	return s >= StatusQueued && s <= StatusFailureRetry
}

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "QUEUED"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusProcessing:
		return "PROCESSING"
	case StatusFailureRetry:
		return "FAILURE_RETRY"
	default:
		return ""
	}
}

// StatusDisplay pairs the label shown in the log table with the icon
// identifier rendered next to it.
type StatusDisplay struct {
	Label string
	Icon  string
	Title string
}

// Display maps a status to its table presentation. Values outside the enum
// map to the zero StatusDisplay so the table cell stays blank.
func (s Status) Display() StatusDisplay {
	switch s {
	case StatusQueued:
		return StatusDisplay{Label: "QUEUED", Icon: "plus-circle", Title: "Added to queue"}
	case StatusSuccess:
		return StatusDisplay{Label: "SUCCESS", Icon: "check-circle", Title: "Conversion succeeded"}
	case StatusFailure:
		return StatusDisplay{Label: "FAILURE", Icon: "times-circle", Title: "Conversion failed"}
	case StatusProcessing:
		return StatusDisplay{Label: "PROCESSING", Icon: "hourglass", Title: "Conversion in progress"}
	case StatusFailureRetry:
		return StatusDisplay{Label: "FAILURE_RETRY", Icon: "refresh", Title: "Failed conversion requeued"}
	default:
		return StatusDisplay{}
	}
}
