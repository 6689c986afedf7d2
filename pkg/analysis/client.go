package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultEndpoint = "/review"
	DefaultMaxText  = 5000
)

var (
	// ErrUnavailable is returned when the service could not produce an analysis.
	ErrUnavailable = errors.New("analysis: service unavailable")
	// ErrTextTooLong is returned before sending a buffer above the length cap.
	ErrTextTooLong = errors.New("analysis: text exceeds maximum length")
)

// Analyzer turns a buffer snapshot into a Document.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Document, error)
}

// Client talks to the review endpoint of the analysis service.
type Client struct {
	baseURL  string
	endpoint string
	maxText  int
	timeout  time.Duration
	client   *http.Client
}

// NewClient creates a Client. Zero values fall back to the defaults.
func NewClient(baseURL, endpoint string, maxText int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if maxText <= 0 {
		maxText = DefaultMaxText
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		endpoint: endpoint,
		maxText:  maxText,
		timeout:  timeout,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        8,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// MaxText returns the rune cap applied to outgoing buffers.
func (c *Client) MaxText() int { return c.maxText }

// Analyze posts text and decodes the returned document.
// An empty or missing document is not an error here; reconcile decides what it means.
func (c *Client) Analyze(ctx context.Context, text string) (*Document, error) {
	if n := utf8.RuneCountInString(text); n > c.maxText {
		return nil, fmt.Errorf("%w: %d > %d", ErrTextTooLong, n, c.maxText)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(Request{InputText: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	log.Debugf("analysis: %d runes -> %d tokens in %v", utf8.RuneCountInString(text), doc.TokenCount(), time.Since(start))
	return doc, nil
}

// Decode reads a review response. Both the {"doc": ...} envelope and a bare
// document are accepted. A body without paragraphs yields an empty Document.
func Decode(raw []byte) (*Document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Document{}, nil
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("analysis: decode response: %w", err)
	}
	if env.Doc != nil {
		return env.Doc, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("analysis: decode response: %w", err)
	}
	return &doc, nil
}
