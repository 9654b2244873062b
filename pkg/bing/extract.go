package bing

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Extractor pulls image references out of raw result page text. The page
// format is an external contract that changes without notice; keeping the
// parsing strategy behind this interface lets it be swapped without
// touching the rest of the pipeline.
type Extractor interface {
	Extract(body string) []ImageResult
}

// Result pages embed per-image metadata as an HTML-escaped JSON attribute,
// so the direct link usually appears as murl&quot;:&quot;...&quot;. The
// unescaped form shows up when the endpoint responds with plain JSON.
var (
	murlEscaped   = regexp.MustCompile(`murl&quot;:&quot;(.*?)&quot;`)
	murlUnescaped = regexp.MustCompile(`"murl":"(.*?)"`)
	turlEscaped   = regexp.MustCompile(`turl&quot;:&quot;(.*?)&quot;`)
	turlUnescaped = regexp.MustCompile(`"turl":"(.*?)"`)
)

// MetadataExtractor extracts direct image links from the embedded
// metadata markers of a result page.
type MetadataExtractor struct{}

// Extract returns the image references found in body, in document order.
// Malformed or empty fragments yield no results rather than an error.
func (MetadataExtractor) Extract(body string) []ImageResult {
	urls := matchAll(murlEscaped, body)
	thumbs := matchAll(turlEscaped, body)
	if len(urls) == 0 {
		urls = matchAll(murlUnescaped, body)
		thumbs = matchAll(turlUnescaped, body)
	}

	results := make([]ImageResult, 0, len(urls))
	for i, u := range urls {
		if u == "" {
			continue
		}
		r := ImageResult{URL: u}
		// Thumbnails pair up positionally; when counts disagree the
		// fragment is partially broken and thumbnails are dropped.
		if len(thumbs) == len(urls) {
			r.ThumbnailURL = thumbs[i]
		}
		results = append(results, r)
	}
	return results
}

func matchAll(re *regexp.Regexp, body string) []string {
	matches := re.FindAllStringSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		u := stdhtml.UnescapeString(m[1])
		if !strings.HasPrefix(u, "http") {
			continue
		}
		out = append(out, u)
	}
	return out
}

// TagExtractor is a fallback strategy that tokenizes the page as HTML and
// collects absolute <img src> links. It catches pages where the metadata
// markers are absent or renamed.
type TagExtractor struct{}

// Extract returns image references for every absolute <img src> in body.
func (TagExtractor) Extract(body string) []ImageResult {
	var results []ImageResult

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Includes io.EOF; a truncated document still yields
			// everything seen up to the error.
			return results
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if string(name) != "img" || !hasAttr {
			continue
		}

		for {
			key, val, more := z.TagAttr()
			if string(key) == "src" {
				src := string(val)
				if strings.HasPrefix(src, "http") {
					results = append(results, ImageResult{URL: src})
				}
				break
			}
			if !more {
				break
			}
		}
	}
}

// ChainExtractor tries each strategy in order and returns the first
// non-empty result set.
type ChainExtractor []Extractor

// Extract implements Extractor.
func (c ChainExtractor) Extract(body string) []ImageResult {
	for _, e := range c {
		if results := e.Extract(body); len(results) > 0 {
			return results
		}
	}
	return nil
}

// NewExtractor returns the default extraction strategy: embedded metadata
// first, plain <img> tags as a fallback.
func NewExtractor() Extractor {
	return ChainExtractor{MetadataExtractor{}, TagExtractor{}}
}
