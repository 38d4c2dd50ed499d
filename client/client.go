package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flowmap/flowmap/config"
	"github.com/flowmap/flowmap/logger"
	"go.uber.org/zap"
)

// ApiError carries the best available message from a failed host call:
// the server-provided error text when the body parses, else a generic one.
type ApiError struct {
	Status  int
	Message string
}

func (e ApiError) Error() string {
	return fmt.Sprintf("host api error (%d): %s", e.Status, e.Message)
}

// Client talks to the host's item storage:
// GET/POST/PATCH /items/<collection>[/<id>] with JSON bodies wrapped in a
// {"data": ...} envelope.
type Client struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

func NewClient(conf config.HostApiConfig) *Client {
	return &Client{
		baseUrl: conf.BaseUrl,
		token:   conf.StaticToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) GetItems(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%s", collection), nil, out)
}

func (c *Client) GetItem(ctx context.Context, collection string, id string, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%s/%s", collection, id), nil, out)
}

func (c *Client) CreateItem(ctx context.Context, collection string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/items/%s", collection), payload, out)
}

func (c *Client) UpdateItem(ctx context.Context, collection string, id string, payload any, out any) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/items/%s/%s", collection, id), payload, out)
}

func (c *Client) GetFields(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/fields/%s", collection), nil, out)
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, method string, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("host api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return ApiError{Status: resp.StatusCode, Message: extractErrorMessage(raw)}
	}

	if out == nil {
		return nil
	}

	// responses arrive wrapped in a data envelope; some deployments return
	// the record bare, so fall back to the raw body
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

func extractErrorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Errors) > 0 && body.Errors[0].Message != "" {
		return body.Errors[0].Message
	}
	return "request failed"
}
