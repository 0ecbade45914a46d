package models

// ProfileInfo summarizes a processing profile as listed by the service
type ProfileInfo struct {
	Name        string `json:"name"`
	Operation   string `json:"operation"`
	Description string `json:"description"`
}

// WorkflowInfo summarizes a workflow as listed by the service
type WorkflowInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Jobs        int    `json:"jobs"`
}

// QueueStats reports the service's queue counters
type QueueStats struct {
	TotalJobs      int `json:"total_jobs"`
	CompletedJobs  int `json:"completed_jobs"`
	FailedJobs     int `json:"failed_jobs"`
	ProcessingJobs int `json:"processing_jobs"`
	QueueSize      int `json:"queue_size"`
	ActiveWorkers  int `json:"active_workers"`
}

// Stats is the service-wide statistics snapshot
type Stats struct {
	Queue     QueueStats `json:"queue"`
	Profiles  int        `json:"profiles"`
	Workflows int        `json:"workflows"`
}

// Health is the service health report
type Health struct {
	Status     string     `json:"status"`
	QueueStats QueueStats `json:"queue_stats"`
}

// Message is a bare acknowledgement body, returned by job cancellation
type Message struct {
	Message string `json:"message"`
}
