// Package clickup sends converted tasks to the ClickUp task API.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// DefaultBaseURL is the public ClickUp API v2 root.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// ErrMissingCredentials indicates a client configured without token or list.
var ErrMissingCredentials = errors.New("clickup token and list id are required")

// Config configures a Client.
type Config struct {
	BaseURL         string
	Token           string
	ListID          string
	Timeout         time.Duration
	// MaxRetries is the number of retries per task. Zero means the default;
	// a negative value disables retries.
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultConfig returns retry and timeout defaults; Token and ListID are left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         15 * time.Second,
		MaxRetries:      4,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// Client creates tasks in one ClickUp list.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Task is the subset of the ClickUp task response we keep.
type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIError is a non-2xx ClickUp response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clickup api returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed when repeated.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type createTaskRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Assignees     []int    `json:"assignees,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Status        string   `json:"status,omitempty"`
	Priority      int      `json:"priority,omitempty"`
	DueDate       int64    `json:"due_date,omitempty"`
	DueDateTime   bool     `json:"due_date_time"`
	StartDate     int64    `json:"start_date,omitempty"`
	StartDateTime bool     `json:"start_date_time"`
}

// priorityCodes maps task priorities to ClickUp's numeric scale.
var priorityCodes = map[models.Priority]int{
	models.PriorityUrgent: 1,
	models.PriorityHigh:   2,
	models.PriorityNormal: 3,
	models.PriorityLow:    4,
}

// NewClient validates cfg and fills unset fields from DefaultConfig.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" || cfg.ListID == "" {
		return nil, ErrMissingCredentials
	}
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = def.MaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = def.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = def.MaxInterval
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Sink names the list endpoint for error reporting.
func (c *Client) Sink() string {
	return fmt.Sprintf("%s/list/%s/task", c.cfg.BaseURL, c.cfg.ListID)
}

// Emit creates every task of result in order. On failure it returns a
// *models.EmitError carrying the number of tasks already created; those tasks
// are not rolled back.
func (c *Client) Emit(ctx context.Context, result *models.ConversionResult) error {
	for i, task := range result.Tasks {
		created, err := c.CreateTask(ctx, task)
		if err != nil {
			return &models.EmitError{Sink: c.Sink(), Emitted: i, Err: fmt.Errorf("task %q: %w", task.Name, err)}
		}
		log.Debug().
			Str("id", created.ID).
			Str("name", task.Name).
			Msg("Created ClickUp task")
	}
	log.Info().
		Str("list", c.cfg.ListID).
		Int("tasks", len(result.Tasks)).
		Msg("Pushed tasks to ClickUp")
	return nil
}

// CreateTask creates one task, retrying rate limits, server errors and
// transport failures with exponential backoff.
func (c *Client) CreateTask(ctx context.Context, task models.TaskRecord) (*Task, error) {
	body, err := json.Marshal(newCreateTaskRequest(task))
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialInterval
	b.MaxInterval = c.cfg.MaxInterval
	b.MaxElapsedTime = 0
	// #nosec G115 -- MaxRetries is clamped to be non-negative in NewClient
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx)

	var created *Task
	operation := func() error {
		t, err := c.post(ctx, body)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.Retryable() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		created = t
		return nil
	}
	notify := func(err error, delay time.Duration) {
		log.Warn().
			Err(err).
			Dur("delay", delay).
			Str("task", task.Name).
			Msg("Retrying ClickUp request")
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Sink(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode clickup response: %w", err)
	}
	return &t, nil
}

func newCreateTaskRequest(task models.TaskRecord) createTaskRequest {
	req := createTaskRequest{
		Name:        task.Name,
		Description: task.Description,
		Tags:        task.Tags,
		Status:      strings.ToLower(task.Status),
		Priority:    priorityCodes[task.Priority],
	}
	if t, err := task.DueDate.Time(); err == nil {
		req.DueDate = t.UnixMilli()
	}
	if t, err := task.StartDate.Time(); err == nil {
		req.StartDate = t.UnixMilli()
	}
	// ClickUp assigns by numeric user id only.
	if id, err := strconv.Atoi(task.Assignee); err == nil {
		req.Assignees = []int{id}
	}
	return req
}
