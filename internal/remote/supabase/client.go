// Package supabase implements the remote envelope service on a hosted
// PostgREST endpoint.
package supabase

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

	"github.com/rs/zerolog/log"
)

const (
	mediaTypeObject = "application/vnd.pgrst.object+json"
	preferReturn    = "return=representation"
)

var (
	ErrURLRequired    = errors.New("the Supabase URL is required")
	ErrAPIKeyRequired = errors.New("the Supabase API key is required")
)

// Client sends requests to the PostgREST API of a project.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	httpClient  *http.Client
}

type Config struct {
	URL         string
	APIKey      string
	AccessToken string // Token of the signed in user. The API key is used if empty
	HTTPClient  *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrURLRequired
	}
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.URL, "/"),
		apiKey:      cfg.APIKey,
		accessToken: cfg.AccessToken,
		httpClient:  httpClient,
	}, nil
}

// Response is a response of the API with the body already read.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Error returns an error if the response indicates failure.
func (r *Response) Error() error {
	if r.StatusCode < 400 {
		return nil
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &errResp); err == nil {
		if errResp.Message != "" {
			return &APIError{StatusCode: r.StatusCode, Message: errResp.Message}
		}
		if errResp.Error != "" {
			return &APIError{StatusCode: r.StatusCode, Message: errResp.Error}
		}
	}
	return &APIError{StatusCode: r.StatusCode}
}

// APIError is a failed request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("supabase error: %s", e.Message)
}

// request describes a call on a table.
type request struct {
	method  string
	table   string
	filters url.Values
	body    any
	single  bool
}

func (c *Client) execute(ctx context.Context, r request) (*Response, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, r.table)
	if len(r.filters) > 0 {
		reqURL += "?" + r.filters.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal data: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setHeaders(req)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.method != http.MethodGet {
		req.Header.Set("Prefer", preferReturn)
	}
	if r.single {
		req.Header.Set("Accept", mediaTypeObject)
	}

	log.Debug().Str("method", r.method).Str("table", r.table).Str("query", r.filters.Encode()).Msg("supabase")
	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	token := c.accessToken
	if token == "" {
		token = c.apiKey
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

// eq builds an equality filter.
func eq(column, value string) url.Values {
	return url.Values{column: []string{"eq." + value}}
}
