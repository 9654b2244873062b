// Package bing talks to the Bing image search internal endpoint.
//
// The endpoint returns paginated HTML fragments with per-image metadata
// embedded as escaped JSON attributes. That format is an external,
// undocumented contract which changes without notice, so extraction is
// isolated behind the Extractor interface and tolerates partial parse
// failures: a fragment that cannot be understood is skipped, never fatal.
//
// The package provides:
//   - SearchRequest and SearchURL: pure construction of request URLs
//   - Client: HTTP access to result pages and image bytes
//   - MetadataExtractor, TagExtractor: URL extraction strategies
package bing
