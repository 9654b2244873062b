package bing

// ImageResult is a single image reference extracted from a result page.
type ImageResult struct {
	// URL is the direct full-resolution image link ("murl" in the
	// embedded metadata).
	URL string

	// ThumbnailURL is the preview link ("turl"), empty when the page
	// fragment did not carry one.
	ThumbnailURL string
}
