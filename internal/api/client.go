package api

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
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 60 * time.Second

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the meeting tracker API. It never retries and keeps no
// cache; every call is one round-trip.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: hc,
		log:        opts.Logger,
	}
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the {success, data, error} wrapper every endpoint uses.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do sends req and returns the raw response body on a 2xx status. Every
// failure comes back as *Error.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, &Error{Op: req.op, Message: pickMessage("", err.Error()), Err: fmt.Errorf("marshal %s request: %w", req.op, err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(callCtx, req.method, target, body)
	if err != nil {
		return nil, &Error{Op: req.op, Message: pickMessage("", err.Error()), Err: fmt.Errorf("create %s request: %w", req.op, err)}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(ctx, callCtx, req, requestID, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	c.log.Debug().
		Str("op", req.op).
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Str("request_id", requestID).
		Msg("api call")

	if readErr != nil {
		return nil, c.transportError(ctx, callCtx, req, requestID, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(req, requestID, resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) transportError(parent, callCtx context.Context, req request, requestID string, err error) error {
	out := &Error{Op: req.op, Err: err}
	switch {
	case parent.Err() != nil:
		// caller cancelled; not a timeout
		out.Err = fmt.Errorf("%s: %w", req.op, parent.Err())
		out.Message = pickMessage("", parent.Err().Error())
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		out.Err = fmt.Errorf("%s: %w", req.op, ErrTimeout)
		out.Message = fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds())
	default:
		out.Message = pickMessage("", err.Error())
	}
	c.log.Warn().
		Str("op", req.op).
		Str("request_id", requestID).
		Err(err).
		Msg("api transport failure")
	return out
}

func (c *Client) statusError(req request, requestID string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	var env envelope
	_ = json.Unmarshal(body, &env)

	out := &Error{
		Op:      req.op,
		Status:  status,
		Message: pickMessage(strings.TrimSpace(env.Error), statusMessage(status)),
	}
	if status == http.StatusNotFound {
		out.Err = fmt.Errorf("%s: %w", req.op, ErrNotFound)
	} else {
		out.Err = fmt.Errorf("%s: status %d", req.op, status)
	}
	c.log.Warn().
		Str("op", req.op).
		Int("status", status).
		Str("request_id", requestID).
		Str("message", out.Message).
		Msg("api call failed")
	return out
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(op string, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Op: op, Message: pickMessage("", "invalid response from server"), Err: fmt.Errorf("parse %s response: %w", op, err)}
	}
	if env.Success != nil && !*env.Success {
		return &Error{Op: op, Message: pickMessage(env.Error, ""), Err: fmt.Errorf("%s: server reported failure", op)}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Op: op, Message: pickMessage("", "invalid response from server"), Err: fmt.Errorf("parse %s data: %w", op, err)}
	}
	return nil
}
