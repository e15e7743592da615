// Package client is a small typed HTTP client for the ProcessCraft API,
// used by the smoke driver and by anything embedding the board controller
// outside the server process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"processcraft/internal/domain"
	"processcraft/internal/service"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
	}
}

type apiResult struct {
	Status      string              `json:"status"`
	Message     string              `json:"message"`
	Data        json.RawMessage     `json:"data"`
	FieldErrors map[string][]string `json:"field_errors"`
}

// APIError is a non-success result from the server, carrying the message
// the board surfaces in its error notification.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var result apiResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if result.Status != "success" {
		return &APIError{
			StatusCode:  res.StatusCode,
			Message:     result.Message,
			FieldErrors: result.FieldErrors,
		}
	}
	if out != nil && len(result.Data) > 0 {
		return json.Unmarshal(result.Data, out)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, nil)
}

// Login stores the session token on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var data struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &data)
	if err != nil {
		return err
	}
	c.Token = data.Token
	return nil
}

func (c *Client) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	var p domain.Project
	err := c.do(ctx, http.MethodPost, "/api/v1/projects",
		map[string]string{"name": name, "description": description}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*service.ProjectWithTasks, error) {
	var result service.ProjectWithTasks
	if err := c.do(ctx, http.MethodGet, "/api/v1/projects/"+projectID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateTask(ctx context.Context, projectID, title, description string, status domain.Status) (*domain.Task, error) {
	var t domain.Task
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks", map[string]any{
		"project_id":  projectID,
		"title":       title,
		"description": description,
		"status":      string(status),
	}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatusAndOrder satisfies the board controller's Mover interface.
func (c *Client) UpdateStatusAndOrder(ctx context.Context, taskID string, status domain.Status, order int) (*domain.Task, error) {
	var t domain.Task
	err := c.do(ctx, http.MethodPatch, "/api/v1/tasks/"+taskID+"/move", map[string]any{
		"status": string(status),
		"order":  order,
	}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DashboardSummary(ctx context.Context) (domain.TaskCounts, error) {
	var counts domain.TaskCounts
	err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/summary", nil, &counts)
	return counts, err
}
