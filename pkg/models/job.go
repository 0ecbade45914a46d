package models

// Job represents a processing job as returned by the service. Timestamps
// are carried verbatim in the service's own format; the client displays
// them but never parses them.
type Job struct {
	ID          string                 `json:"id"`
	InputFile   string                 `json:"input_file"`
	OutputFile  string                 `json:"output_file,omitempty"`
	Operation   string                 `json:"operation"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	Status      JobStatus              `json:"status"`
	Progress    float64                `json:"progress"` // 0-100%
	CreatedAt   string                 `json:"created_at,omitempty"`
	StartedAt   string                 `json:"started_at,omitempty"`
	CompletedAt string                 `json:"completed_at,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Result      map[string]interface{} `json:"result,omitempty"`
}

// JobRequest represents a request to create a new job
type JobRequest struct {
	InputFile  string                 `json:"input_file"`
	Operation  string                 `json:"operation"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	OutputFile string                 `json:"output_file,omitempty"`
}

// ProfileJobRequest creates a job whose operation and parameters come from
// a named profile resolved on the service side
type ProfileJobRequest struct {
	InputFile  string `json:"input_file"`
	Profile    string `json:"profile"`
	OutputFile string `json:"output_file,omitempty"`
}

// WorkflowJobRequest expands a named workflow into one job per step
type WorkflowJobRequest struct {
	InputFile string `json:"input_file"`
	Workflow  string `json:"workflow"`
}

// JobCreated is the service's acknowledgement of a single-job submission
type JobCreated struct {
	JobID   string `json:"job_id"`
	Profile string `json:"profile,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// WorkflowJobRef identifies one job created by a workflow expansion
type WorkflowJobRef struct {
	JobID   string `json:"job_id"`
	Profile string `json:"profile"`
}

// WorkflowCreated is the service's acknowledgement of a workflow submission.
// Jobs is reported in the service's expansion order; no execution ordering
// is implied.
type WorkflowCreated struct {
	Workflow  string           `json:"workflow"`
	Jobs      []WorkflowJobRef `json:"jobs"`
	TotalJobs int              `json:"total_jobs"`
	Message   string           `json:"message,omitempty"`
}
