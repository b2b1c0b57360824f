// Package httpask talks to the question-answering backend over HTTP.
package httpask

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/logger"
)

var _ output.AskBackend = (*Client)(nil)

const DefaultEndpoint = "http://127.0.0.1:8000/ask"

// ErrMissingAnswer is returned for a JSON body without a string "answer".
var ErrMissingAnswer = errors.New("httpask: response has no answer")

// Client posts questions to a fixed endpoint. It never retries and sets no
// timeout of its own.
type Client struct {
	endpoint string
	http     *http.Client
	logger   output.LoggerPort
}

type Option func(*Client)

func WithEndpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.endpoint = u
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l output.LoggerPort) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{},
		logger:   logger.NewNopLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Ask(ctx context.Context, question entity.Question) entity.Result {
	answer, err := c.do(ctx, question)
	if err != nil {
		kind := entity.FailureTransport
		var decodeErr *decodeError
		switch {
		case errors.Is(err, ErrMissingAnswer):
			kind = entity.FailureMissingAnswer
		case errors.As(err, &decodeErr):
			kind = entity.FailureDecode
		}
		return entity.Failed{Kind: kind, Err: err}
	}
	return entity.Answered{Answer: *answer}
}

func (c *Client) do(ctx context.Context, question entity.Question) (*entity.Answer, error) {
	body, err := json.Marshal(question)
	if err != nil {
		return nil, fmt.Errorf("marshal question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend responded", "status", resp.StatusCode, "contentType", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeAnswer(raw)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// decodeAnswer accepts any JSON object with a string "answer". A non-string
// "source" is ignored rather than rejected.
func decodeAnswer(raw []byte) (*entity.Answer, error) {
	var payload struct {
		Answer *json.RawMessage `json:"answer"`
		Source json.RawMessage  `json:"source"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &decodeError{err: err}
	}
	if payload.Answer == nil {
		return nil, ErrMissingAnswer
	}

	var answer entity.Answer
	if err := json.Unmarshal(*payload.Answer, &answer.Answer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingAnswer, err)
	}
	if len(payload.Source) > 0 {
		_ = json.Unmarshal(payload.Source, &answer.Source)
	}
	return &answer, nil
}
