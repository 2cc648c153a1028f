package back4app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Back4App Parse REST endpoint.
const DefaultBaseURL = "https://parseapi.back4app.com"

const requestTimeout = 30 * time.Second

// Pointer is the Parse typed reference used to serialize foreign keys.
type Pointer struct {
	Type      string `json:"__type"`
	ClassName string `json:"className"`
	ObjectID  string `json:"objectId"`
}

// NewPointer builds a Pointer to an object of the given class.
func NewPointer(className, objectID string) Pointer {
	return Pointer{Type: "Pointer", ClassName: className, ObjectID: objectID}
}

// Client talks to the Parse REST API. Authentication is two static headers
// supplied at construction. Every call blocks, is bounded by a 30s timeout
// and is never retried.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL, applicationID, restAPIKey string, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("X-Parse-Application-Id", applicationID).
		SetHeader("X-Parse-REST-API-Key", restAPIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, logger: logger}
}

type createResponse struct {
	ObjectID string `json:"objectId"`
}

// CreateObject POSTs one record to /classes/<class> and returns the
// server-assigned objectId. Any non-success status is an error.
func (c *Client) CreateObject(ctx context.Context, class string, body map[string]any) (string, error) {
	var out createResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/classes/" + class)
	if err != nil {
		return "", fmt.Errorf("back4app: create %s: %w", class, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("back4app: create %s: unexpected status %d: %s", class, resp.StatusCode(), resp.String())
	}
	if out.ObjectID == "" {
		return "", fmt.Errorf("back4app: create %s: response missing objectId", class)
	}
	return out.ObjectID, nil
}

type functionResponse struct {
	Result json.RawMessage `json:"result"`
}

// CallFunction POSTs to /functions/<name> and unmarshals the "result"
// payload into result. A nil body sends an empty JSON object, which Parse
// requires.
func (c *Client) CallFunction(ctx context.Context, name string, body map[string]any, result any) error {
	if body == nil {
		body = map[string]any{}
	}
	var out functionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/functions/" + name)
	if err != nil {
		return fmt.Errorf("back4app: call %s: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("back4app: call %s: unexpected status %d: %s", name, resp.StatusCode(), resp.String())
	}
	if len(out.Result) == 0 {
		return fmt.Errorf("back4app: call %s: response missing result", name)
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("back4app: call %s: decode result: %w", name, err)
	}
	c.logger.Debug("cloud function returned", zap.String("function", name))
	return nil
}
