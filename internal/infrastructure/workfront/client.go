package workfront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/docsync/backend/internal/config"
	"github.com/docsync/backend/internal/domain"
	"github.com/docsync/backend/internal/infrastructure/logger"
)

const (
	apiVersion    = "v19.0"
	defaultLimit  = 100
	headerAPIKey  = "apiKey"
	headerSession = "sessionID"
)

// Client wraps the Workfront REST API: task search, document download and
// document/task updates. Every call carries the API key and the session
// credential; a call without a session fails fast instead of going out.
type Client struct {
	baseURL    string
	apiKey     string
	session    *domain.SessionCredential
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg config.WorkfrontConfig, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     log,
	}
}

// SetSession installs the credential for the run. Called exactly once, right
// after authentication and before any API call.
func (c *Client) SetSession(cred *domain.SessionCredential) {
	c.session = cred
}

func (c *Client) apiURL(parts ...string) string {
	u := fmt.Sprintf("%s/attask/api/%s", c.baseURL, apiVersion)
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

func (c *Client) do(ctx context.Context, method, requestURL string, payload any) ([]byte, error) {
	if c.session == nil || c.session.Token == "" {
		return nil, &AuthError{Reason: "no session credential, refusing to issue request"}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerSession, c.session.Token)

	c.logger.Debugw("workfront request", "method", method, "url", requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Method: method, URL: requestURL, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// SearchTasks returns up to limit tasks in the given status that are not yet
// complete, with their documents inlined. Ordering follows the server's
// status sort so runs are deterministic.
func (c *Client) SearchTasks(ctx context.Context, status domain.TaskStatus, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	q := url.Values{}
	q.Set("fields", "*,documents")
	q.Set("isComplete", "false")
	q.Set("status", string(status))
	q.Set("status_Sort", "desc")
	q.Set("$$LIMIT", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, c.apiURL("TASK", "search")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []domain.Task `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse task search response: %w", err)
	}

	c.logger.Infow("task search completed", "status", status, "found", len(result.Data))
	return result.Data, nil
}

// DownloadDocument fetches the raw bytes of a document. Downloads go through
// the document endpoint outside the versioned API and authenticate with the
// session credential.
func (c *Client) DownloadDocument(ctx context.Context, documentID string) ([]byte, error) {
	if c.session == nil || c.session.Token == "" {
		return nil, &AuthError{Reason: "no session credential, refusing to issue request"}
	}

	q := url.Values{}
	q.Set("ID", documentID)
	downloadURL := fmt.Sprintf("%s/document/download?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerSession, c.session.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download document %s: %w", documentID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &RequestError{Method: http.MethodGet, URL: downloadURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", documentID, err)
	}

	c.logger.Infow("document downloaded", "document_id", documentID, "bytes", len(content))
	return content, nil
}

// UpdateDocument replaces the document's description with the given text.
// Callers append to the existing description rather than overwriting it.
func (c *Client) UpdateDocument(ctx context.Context, documentID, description string) error {
	payload := map[string]string{"description": description}
	if _, err := c.do(ctx, http.MethodPut, c.apiURL("document", documentID), payload); err != nil {
		return err
	}
	c.logger.Infow("document updated", "document_id", documentID)
	return nil
}

// UpdateTaskStatus sets the task's terminal status for this run.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	payload := map[string]string{"status": string(status)}
	if _, err := c.do(ctx, http.MethodPut, c.apiURL("task", taskID), payload); err != nil {
		return err
	}
	c.logger.Infow("task status updated", "task_id", taskID, "status", status)
	return nil
}
