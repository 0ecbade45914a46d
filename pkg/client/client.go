package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/robinrj6/FFmpeg-batch/pkg/logging"
	"github.com/robinrj6/FFmpeg-batch/pkg/models"
)

// Client talks to the batch processor API. All calls are synchronous: one
// request, one decoded response, errors surfaced immediately to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// New creates a client for the processor API at baseURL. The underlying
// HTTP client carries no timeout: an unresponsive service blocks the call
// rather than failing a long poll spuriously.
func New(baseURL string, log *logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// BaseURL returns the configured API address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON performs one API call. A nil body sends no payload, a nil out
// discards the response body after the status check.
func (c *Client) doJSON(method, path string, body interface{}, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug(fmt.Sprintf("%s %s", method, path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to processor API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// CreateJob submits a raw processing job
func (c *Client) CreateJob(req *models.JobRequest) (*models.JobCreated, error) {
	var created models.JobCreated
	if err := c.doJSON("POST", "/jobs/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateJobFromProfile submits a job whose operation and parameters the
// service resolves from a named profile
func (c *Client) CreateJobFromProfile(req *models.ProfileJobRequest) (*models.JobCreated, error) {
	var created models.JobCreated
	if err := c.doJSON("POST", "/jobs/profile/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateWorkflowJobs expands a named workflow into one job per step. The
// service reports the created jobs; none of them is watched here.
func (c *Client) CreateWorkflowJobs(req *models.WorkflowJobRequest) (*models.WorkflowCreated, error) {
	var created models.WorkflowCreated
	if err := c.doJSON("POST", "/jobs/workflow/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetJob fetches the current state of a job
func (c *Client) GetJob(id string) (*models.Job, error) {
	var job models.Job
	if err := c.doJSON("GET", "/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs fetches all jobs, optionally filtered by status
func (c *Client) ListJobs(status string) ([]models.Job, error) {
	path := "/jobs/"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var jobs []models.Job
	if err := c.doJSON("GET", path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CancelJob asks the service to cancel a job
func (c *Client) CancelJob(id string) (*models.Message, error) {
	var msg models.Message
	if err := c.doJSON("DELETE", "/jobs/"+url.PathEscape(id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListProfiles fetches the profiles the service has loaded
func (c *Client) ListProfiles() ([]models.ProfileInfo, error) {
	var profiles []models.ProfileInfo
	if err := c.doJSON("GET", "/profiles/", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListWorkflows fetches the workflows the service has loaded
func (c *Client) ListWorkflows() ([]models.WorkflowInfo, error) {
	var workflows []models.WorkflowInfo
	if err := c.doJSON("GET", "/workflows/", nil, &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

// GetStats fetches the service statistics snapshot
func (c *Client) GetStats() (*models.Stats, error) {
	var stats models.Stats
	if err := c.doJSON("GET", "/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health performs the service health check
func (c *Client) Health() (*models.Health, error) {
	var health models.Health
	if err := c.doJSON("GET", "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
