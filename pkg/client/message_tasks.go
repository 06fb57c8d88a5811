package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const messageTasksPath = "/wx/message_tasks"

// DefaultPageLimit is used when a listing omits or zeroes the limit.
const DefaultPageLimit = 10

// MessageTask is a scheduled notification pushed to a webhook when new
// articles arrive for the subscribed accounts.
type MessageTask struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MpsID           string `json:"mps_id,omitempty"`
	MessageType     int    `json:"message_type"`
	MessageTemplate string `json:"message_template,omitempty"`
	WebHookURL      string `json:"web_hook_url,omitempty"`
	CronExp         string `json:"cron_exp,omitempty"`
	Status          int    `json:"status"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// MessageTaskUpdate is the writable subset of MessageTask. Pointer fields are
// omitted from the payload when nil.
type MessageTaskUpdate struct {
	Name            *string `json:"name,omitempty"`
	MpsID           *string `json:"mps_id,omitempty"`
	MessageType     *int    `json:"message_type,omitempty"`
	MessageTemplate *string `json:"message_template,omitempty"`
	WebHookURL      *string `json:"web_hook_url,omitempty"`
	CronExp         *string `json:"cron_exp,omitempty"`
	Status          *int    `json:"status,omitempty"`
}

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

// Normalize fills the limit with DefaultPageLimit when it is zero. Other
// values, negative ones included, are forwarded for the server to judge.
func (p *Page) Normalize() Page {
	if p == nil {
		return Page{Limit: DefaultPageLimit}
	}
	out := *p
	if out.Limit == 0 {
		out.Limit = DefaultPageLimit
	}
	return out
}

// ListMessageTasks fetches a page of tasks. A nil page uses the defaults.
func (c *Client) ListMessageTasks(ctx context.Context, page *Page) (*Response, error) {
	p := page.Normalize()
	query := url.Values{}
	query.Set("offset", strconv.Itoa(p.Offset))
	query.Set("limit", strconv.Itoa(p.Limit))
	return c.do(ctx, http.MethodGet, messageTasksPath, query, nil, nil)
}

// GetMessageTask fetches a single task.
func (c *Client) GetMessageTask(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, taskPath(id), nil, nil, nil)
}

// RunMessageTask triggers a task immediately. isTest asks the server to run a
// dry delivery.
func (c *Client) RunMessageTask(ctx context.Context, id int64, isTest bool) (*Response, error) {
	query := url.Values{}
	query.Set("isTest", strconv.FormatBool(isTest))
	return c.do(ctx, http.MethodGet, taskPath(id)+"/run", query, nil, nil)
}

// CreateMessageTask creates a task.
func (c *Client) CreateMessageTask(ctx context.Context, data MessageTaskUpdate) (*Response, error) {
	return c.do(ctx, http.MethodPost, messageTasksPath, nil, data, nil)
}

// UpdateMessageTask replaces the writable fields of a task.
func (c *Client) UpdateMessageTask(ctx context.Context, id int64, data MessageTaskUpdate) (*Response, error) {
	return c.do(ctx, http.MethodPut, taskPath(id), nil, data, nil)
}

// RefreshJobs reloads every scheduled job on the server.
func (c *Client) RefreshJobs(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPut, messageTasksPath+"/job/fresh", nil, nil, nil)
}

// RefreshJob reloads the scheduled job of one task.
func (c *Client) RefreshJob(ctx context.Context, id int64, data MessageTaskUpdate) (*Response, error) {
	return c.do(ctx, http.MethodPut, messageTasksPath+"/job/fresh/"+strconv.FormatInt(id, 10), nil, data, nil)
}

// DeleteMessageTask removes a task.
func (c *Client) DeleteMessageTask(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

func taskPath(id int64) string {
	return messageTasksPath + "/" + strconv.FormatInt(id, 10)
}
