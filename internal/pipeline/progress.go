package pipeline

// Severity classifies a progress message for whatever front-end is attached.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWorking Severity = "working"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Reporter receives progress updates during pipeline execution. It is invoked
// synchronously from the pipeline's goroutine; the pipeline never blocks on it
// and never reads anything back.
type Reporter func(message string, severity Severity)

// ProgressEvent is a recorded progress update. Front-ends that buffer events
// instead of handling them inline can collect these.
type ProgressEvent struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
