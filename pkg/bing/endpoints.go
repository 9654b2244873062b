package bing

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for Bing.
	BaseURL = "https://www.bing.com"

	// SearchEndpoint is the async image search endpoint.
	SearchEndpoint = "/images/async"

	// DefaultPageSize is the number of results requested per page.
	DefaultPageSize = 35
)

// SearchRequest holds the parameters for one result page request.
// Values are immutable; the pipeline advances pagination with WithOffset.
type SearchRequest struct {
	Query       string
	AdultFilter bool
	Filters     string
	Offset      int
	Count       int
}

// WithOffset returns a copy of the request positioned at the given offset.
func (r SearchRequest) WithOffset(offset int) SearchRequest {
	r.Offset = offset
	return r
}

// SearchURL constructs the result page URL for a request. It is a pure
// function of its input: equal requests produce equal URLs.
func SearchURL(r SearchRequest) string {
	return BaseURL + SearchPath(r)
}

// SearchPath constructs the endpoint path and query string for a request,
// without the host. The client joins it with its configured base URL so
// tests can point at a local server.
func SearchPath(r SearchRequest) string {
	count := r.Count
	if count <= 0 {
		count = DefaultPageSize
	}

	// adlt is empty when the adult filter is active and "off" when the
	// caller disabled it; the endpoint treats absence and empty alike.
	adult := ""
	if !r.AdultFilter {
		adult = "off"
	}

	params := url.Values{}
	params.Set("q", r.Query)
	params.Set("first", fmt.Sprintf("%d", r.Offset))
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("adlt", adult)
	params.Set("qft", r.Filters)

	return fmt.Sprintf("%s?%s", SearchEndpoint, params.Encode())
}
