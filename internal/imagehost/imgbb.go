package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the ImgBB upload API.
	DefaultEndpoint = "https://api.imgbb.com/1/upload"
	// DefaultTimeout bounds a single upload round trip.
	DefaultTimeout = 30 * time.Second

	fallbackMessage = "Failed to upload image"
	maxResponseSize = 1 << 20
)

// ErrMissingAPIKey is returned when no ImgBB key is configured.
var ErrMissingAPIKey = errors.New("image hosting API key is not configured")

// Uploader stores an image with a hosting provider and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// UpstreamError carries the failure reported by the hosting provider.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("image host returned %d: %s", e.StatusCode, e.Message)
}

// ImgBBClient uploads images to ImgBB.
type ImgBBClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// Option configures an ImgBBClient.
type Option func(*ImgBBClient)

// WithEndpoint overrides the upload URL.
func WithEndpoint(endpoint string) Option {
	return func(c *ImgBBClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient replaces the HTTP client used for uploads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ImgBBClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewImgBBClient creates a client for the given API key.
func NewImgBBClient(apiKey string, timeout time.Duration, opts ...Option) *ImgBBClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &ImgBBClient{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the image as multipart form data and returns the hosted URL.
func (c *ImgBBClient) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, contentType, err := encodeForm(data, filename, c.apiKey)
	if err != nil {
		return "", fmt.Errorf("encode upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	var parsed imgbbResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", &UpstreamError{StatusCode: resp.StatusCode, Message: fallbackMessage}
		}
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !parsed.Success {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
	if parsed.Data.URL == "" {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "response did not include an image URL"}
	}
	return parsed.Data.URL, nil
}

func encodeForm(data []byte, filename, apiKey string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("key", apiKey); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
