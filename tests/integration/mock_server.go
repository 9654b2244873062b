package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// jpegBytes is a minimal payload that content sniffing reports as image/jpeg.
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

// MockBingServer simulates the image search endpoint and a CDN serving the
// referenced images.
type MockBingServer struct {
	server       *httptest.Server
	totalImages  int
	searchStatus int32
	errorImages  map[string]int
	delays       map[string]time.Duration
	requestCount int32
	searchCount  int32
	mu           sync.RWMutex
}

// NewMockBingServer creates a mock server with the given number of images
// available across all result pages.
func NewMockBingServer(totalImages int) *MockBingServer {
	m := &MockBingServer{
		totalImages:  totalImages,
		searchStatus: http.StatusOK,
		errorImages:  make(map[string]int),
		delays:       make(map[string]time.Duration),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/images/async", m.handleSearch)
	mux.HandleFunc("/media/", m.handleImage)

	m.server = httptest.NewServer(mux)
	return m
}

// handleSearch serves one result page. The page body mimics the production
// endpoint: an HTML fragment with JSON metadata blobs whose quotes are
// HTML-escaped.
func (m *MockBingServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)
	atomic.AddInt32(&m.searchCount, 1)

	if delay := m.getDelay("/images/async"); delay > 0 {
		time.Sleep(delay)
	}

	if status := atomic.LoadInt32(&m.searchStatus); status != http.StatusOK {
		w.WriteHeader(int(status))
		return
	}

	first, _ := strconv.Atoi(r.URL.Query().Get("first"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	if count <= 0 {
		count = 35
	}

	var page strings.Builder
	page.WriteString(`<div id="mmComponent_images_2"><ul>`)
	for i := first; i < first+count && i < m.totalImages; i++ {
		murl := fmt.Sprintf("%s/media/%d.jpg", m.server.URL, i)
		turl := fmt.Sprintf("%s/media/th/%d.jpg", m.server.URL, i)
		fmt.Fprintf(&page,
			`<li><a class="iusc" m="{&quot;turl&quot;:&quot;%s&quot;,&quot;murl&quot;:&quot;%s&quot;,&quot;md5&quot;:&quot;x&quot;}"></a></li>`,
			turl, murl)
	}
	page.WriteString(`</ul></div>`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page.String())
}

// handleImage serves image bytes for /media/ URLs.
func (m *MockBingServer) handleImage(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if delay := m.getDelay(r.URL.Path); delay > 0 {
		time.Sleep(delay)
	}

	if code := m.getErrorResponse(r.URL.Path); code > 0 {
		if code == http.StatusOK {
			// Configured to succeed with a non-image body.
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body>image moved</body></html>")
			return
		}
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(jpegBytes)
}

// SetSearchStatus makes the search endpoint answer with the given status.
func (m *MockBingServer) SetSearchStatus(code int) {
	atomic.StoreInt32(&m.searchStatus, int32(code))
}

// SetErrorResponse configures an image path to return a specific status.
// http.StatusOK configures a successful response carrying a non-image body.
func (m *MockBingServer) SetErrorResponse(path string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorImages[path] = code
}

// SetDelay configures a response delay for a path.
func (m *MockBingServer) SetDelay(path string, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[path] = delay
}

func (m *MockBingServer) getErrorResponse(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errorImages[path]
}

func (m *MockBingServer) getDelay(path string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.delays[path]
}

// GetURL returns the base URL of the mock server.
func (m *MockBingServer) GetURL() string {
	return m.server.URL
}

// GetRequestCount returns the total number of requests served.
func (m *MockBingServer) GetRequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// GetSearchCount returns the number of result page requests served.
func (m *MockBingServer) GetSearchCount() int {
	return int(atomic.LoadInt32(&m.searchCount))
}

// ResetCounters resets all request counters.
func (m *MockBingServer) ResetCounters() {
	atomic.StoreInt32(&m.requestCount, 0)
	atomic.StoreInt32(&m.searchCount, 0)
}

// Close shuts down the mock server.
func (m *MockBingServer) Close() {
	m.server.Close()
}
