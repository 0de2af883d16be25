package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// CreateThreadRequest starts the backend's research thread for a course.
type CreateThreadRequest struct {
	CourseID       string `json:"course_id"`
	Topic          string `json:"topic"`
	KnowledgeLevel string `json:"knowledge_level"`
}

// StatusResult is one poll of the generation status endpoint.
type StatusResult struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
}

// TriggerResult is the outcome of the generation trigger call.
type TriggerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client provides access to the course-generation backend.
type Client interface {
	// CreateInitialThread registers the course topic with the backend.
	CreateInitialThread(ctx context.Context, req CreateThreadRequest) error

	// CheckStatus polls the generation status for a course.
	CheckStatus(ctx context.Context, courseID string) (*StatusResult, error)

	// TriggerGeneration asks the backend to start generating the course.
	TriggerGeneration(ctx context.Context, courseID string) (*TriggerResult, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// httpClient implements Client over the backend's JSON HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client for the configured backend endpoint.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) CreateInitialThread(ctx context.Context, req CreateThreadRequest) error {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.call(ctx, "create_initial_thread", req.CourseID,
		http.MethodPost, "/material/create-initial-thread", req, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}
	return nil
}

func (c *httpClient) CheckStatus(ctx context.Context, courseID string) (*StatusResult, error) {
	path := "/material/status/" + url.PathEscape(courseID)
	var out StatusResult
	if err := c.call(ctx, "check_status", courseID, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) TriggerGeneration(ctx context.Context, courseID string) (*TriggerResult, error) {
	body := map[string]string{"course_id": courseID}
	var out TriggerResult
	if err := c.call(ctx, "trigger_generation", courseID, http.MethodPost, "/material/generate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// call runs one backend operation with timeout, retries and observability.
func (c *httpClient) call(ctx context.Context, op, courseID, method, path string, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		err := c.doRequest(ctx, method, path, body, out)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Operation: op,
				CourseID:  courseID,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout.
		if ctx.Err() != nil {
			break
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Operation: op,
		CourseID:  courseID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})

	if ctx.Err() != nil {
		return ErrTimeout
	}
	if isConnectionError(lastErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return lastErr
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case isConnectionError(err):
		return "unavailable"
	default:
		return "request_failed"
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
