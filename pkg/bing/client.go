package bing

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"bingrab/pkg/errors"
	"bingrab/pkg/logger"
)

// Client performs HTTP requests against the search endpoint and image hosts.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new search client. The endpoint rejects requests
// without a browser-like User-Agent, so one is always set.
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (X11; Fedora; Linux x86_64; rv:60.0) Gecko/20100101 Firefox/60.0",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		baseURL: BaseURL,
		logger:  log,
	}
}

// SetHeader sets a custom header for the client.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetBaseURL overrides the search endpoint host. Used by tests to point
// at a local server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// doRequest performs an HTTP request with the configured headers.
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("sending HTTP request")

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		}).Error("HTTP request failed")
		return nil, errors.Newf(errors.ErrorTypeNetwork, "request failed: %v", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// Get performs a GET request to the specified URL.
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeUnknown, "failed to create request: %v", err)
	}
	return c.doRequest(req)
}

// checkResponseStatus maps non-2xx responses to typed network errors.
func (c *Client) checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	c.logger.WithFields(map[string]interface{}{
		"status": resp.StatusCode,
		"url":    resp.Request.URL.String(),
	}).Warn("unexpected response status")

	return errors.WithCode(errors.ErrorTypeNetwork, resp.StatusCode,
		fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
}

// FetchResultPage fetches one result page for the given request and
// returns the raw body text. There is no retry here: a transient failure
// surfaces as a network error and the caller decides how to proceed.
func (c *Client) FetchResultPage(r SearchRequest) (string, error) {
	url := c.baseURL + SearchPath(r)

	c.logger.WithFields(map[string]interface{}{
		"query":  r.Query,
		"offset": r.Offset,
		"url":    url,
	}).Debug("fetching result page")

	resp, err := c.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WithCode(errors.ErrorTypeNetwork, resp.StatusCode,
			fmt.Sprintf("failed to read response body: %v", err))
	}

	return string(body), nil
}

// DownloadImage downloads image bytes from the given URL.
func (c *Client) DownloadImage(imageURL string) ([]byte, error) {
	c.logger.WithField("url", imageURL).Debug("downloading image")

	resp, err := c.Get(imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeNetwork, "failed to read image data: %v", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"url":  imageURL,
		"size": len(data),
	}).Debug("image downloaded")

	return data, nil
}
