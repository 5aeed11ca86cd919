package roadmap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hokaccha/go-prettyjson"
	"github.com/leg100/roadmap/internal/logging"
)

const (
	SkillsPath    = "/api/v1/openai/generate-skills"
	ResourcesPath = "/api/v1/openai/generate-resources"
	EmailPath     = "/api/v1/email/send-roadmap-email"

	// DefaultURL is the address of a locally running service.
	DefaultURL = "http://localhost:8080"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

type ClientOptions struct {
	// BaseURL is the scheme and host of the service, e.g.
	// http://localhost:8080
	BaseURL string
	// Timeout is the overall timeout for each request. Zero means no timeout
	// beyond those of the transport.
	Timeout time.Duration
	// HTTPClient overrides the default pooled client.
	HTTPClient *http.Client
	Logger     logging.Interface
}

// Client calls the roadmap service. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  logging.Interface
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultURL
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing service url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid service url scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service url is missing a host: %s", opts.BaseURL)
	}
	client := opts.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = opts.Timeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}
	return &Client{baseURL: u, client: client, logger: logger}, nil
}

// GenerateSkills retrieves the skills needed to learn a topic.
func (c *Client) GenerateSkills(ctx context.Context, topic string) ([]Skill, error) {
	var skills []Skill
	if _, err := c.post(ctx, SkillsPath, struct {
		Topic string `json:"topic"`
	}{topic}, &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []Skill{}
	}
	return skills, nil
}

// GenerateResources retrieves learning resources for a skill.
func (c *Client) GenerateResources(ctx context.Context, skill string) ([]Resource, error) {
	var resources []Resource
	if _, err := c.post(ctx, ResourcesPath, struct {
		SkillName string `json:"skillName"`
	}{skill}, &resources); err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []Resource{}
	}
	return resources, nil
}

// SendRoadmapEmail asks the service to email the roadmap. The service's
// acknowledgment is returned verbatim.
func (c *Client) SendRoadmapEmail(ctx context.Context, rm Roadmap) (string, error) {
	body, err := c.post(ctx, EmailPath, rm, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// post sends a JSON body to the endpoint at path. When out is non-nil the
// response is decoded into it. The raw response body is returned.
func (c *Client) post(ctx context.Context, path string, in, out any) ([]byte, error) {
	reqID := uuid.NewString()

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	c.logger.Debug("sending request", "endpoint", path, "request_id", reqID)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("received response",
		"endpoint", path,
		"request_id", reqID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if out == nil {
		c.logger.Debug("response body", "endpoint", path, "request_id", reqID, "body", prettify(body))
		return body, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) && len(body) == 0 {
			return nil, fmt.Errorf("POST %s: empty response", path)
		}
		return nil, fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return body, nil
}

// prettify formats a JSON body for the logs, leaving anything else as is.
func prettify(body []byte) string {
	f := prettyjson.NewFormatter()
	f.DisabledColor = true
	if formatted, err := f.Format(body); err == nil {
		return string(formatted)
	}
	return string(body)
}
