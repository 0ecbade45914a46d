package models

// JobStatus represents the status of a job as reported by the processing
// service. The set is closed: the client never invents a status, it echoes
// what the service returned.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"     // Job accepted, waiting for a worker
	JobStatusProcessing JobStatus = "processing" // Job actively running
	JobStatusCompleted  JobStatus = "completed"  // Job finished successfully
	JobStatusFailed     JobStatus = "failed"     // Job failed permanently
	JobStatusCancelled  JobStatus = "cancelled"  // Job cancelled by the user
)

// IsTerminalState returns true if the state is terminal (no further transitions)
func IsTerminalState(state JobStatus) bool {
	return state == JobStatusCompleted || state == JobStatusFailed || state == JobStatusCancelled
}

// IsActiveState returns true if the job is still moving through the queue
func IsActiveState(state JobStatus) bool {
	return state == JobStatusQueued || state == JobStatusProcessing
}
