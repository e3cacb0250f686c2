package httputils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"dao-watchdog/lib/logger"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTimeout    = 20 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 3 * time.Second
)

// Client wraps outbound HTTP calls with a bounded retry policy. The delay is
// fixed, no jitter and no growth, because the upstream rate limits are
// coarse. Exported knobs exist so tests can run with a zero delay.
type Client struct {
	MaxRetries int
	RetryDelay time.Duration

	http   *http.Client
	header map[string]string
	log    logger.Logger
}

func NewClient(header map[string]string, log logger.Logger) *Client {
	return &Client{
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		http:       &http.Client{Timeout: DefaultTimeout},
		header:     header,
		log:        log,
	}
}

// SetHeaders replaces the default headers sent with every request. Clients
// call this once their config file is loaded.
func (c *Client) SetHeaders(header map[string]string) {
	c.header = header
}

// Execute performs the request, retrying retryable failures up to
// MaxRetries times. On exhaustion the last observed error is returned as-is,
// not wrapped, so callers can still classify it. Non-retryable errors
// propagate immediately.
func (c *Client) Execute(method, rawUrl, contentType string, body []byte) ([]byte, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		res, err := c.attempt(method, rawUrl, contentType, body)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= c.MaxRetries || !IsRetryable(err) {
			return nil, lastErr
		}
		c.log.Info(fmt.Sprintf("network error (attempt %d/%d): %s", attempt+1, c.MaxRetries+1, err))
		c.log.Info(fmt.Sprintf("retrying in %s...", c.RetryDelay))
		time.Sleep(c.RetryDelay)
	}
	return nil, lastErr
}

func (c *Client) attempt(method, rawUrl, contentType string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, rawUrl, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{
			Code:   res.StatusCode,
			Status: res.Status,
			Body:   string(b),
		}
	}
	return b, nil
}

// FetchJSON executes the request and decodes the response into T,
// optionally running validators over the decoded value.
func FetchJSON[T any](
	c *Client,
	method, rawUrl, contentType string,
	body []byte,
	validators ...*validator.Validate,
) (*T, error) {
	b, err := c.Execute(method, rawUrl, contentType, body)
	if err != nil {
		return nil, err
	}

	buf := new(T)
	if err := json.Unmarshal(b, buf); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, v := range validators {
		if err := v.Struct(buf); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func MakeUrl(baseUrl string, queryParams map[string]string) (*url.URL, error) {
	url, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	if queryParams != nil {
		q := url.Query()
		for key, val := range queryParams {
			q.Add(key, val)
		}

		url.RawQuery = q.Encode()
	}

	return url, nil
}

// MultipartForm encodes plain string fields the way the governance platform
// expects its paginated listing payloads.
func MultipartForm(fields map[string]string) (contentType string, body []byte, err error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}
