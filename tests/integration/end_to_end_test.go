package integration

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"bingrab/pkg/config"
	"bingrab/pkg/errors"
	"bingrab/pkg/scraper"
	"bingrab/pkg/ui"
)

func TestMain(m *testing.M) {
	ui.SetQuietMode(true)
	os.Exit(m.Run())
}

func newTestConfig(t *testing.T, limit, threads, pageSize int) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Download.Limit = limit
	cfg.Download.Threads = threads
	cfg.Search.PageSize = pageSize
	cfg.Output.Directory = t.TempDir()
	return cfg
}

func newTestScraper(t *testing.T, cfg *config.Config, server *MockBingServer) *scraper.Scraper {
	t.Helper()
	s, err := scraper.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create scraper: %v", err)
	}
	s.Client().SetBaseURL(server.GetURL())
	return s
}

// TestFullPipeline exercises the complete flow: search pagination,
// URL extraction, concurrent download, and files on disk.
func TestFullPipeline(t *testing.T) {
	mockServer := NewMockBingServer(25)
	defer mockServer.Close()

	cfg := newTestConfig(t, 10, 4, 8)
	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("golden retriever")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Collected != 10 {
		t.Errorf("Expected 10 collected URLs, got %d", summary.Collected)
	}
	if summary.Downloaded != 10 {
		t.Errorf("Expected 10 downloads, got %d", summary.Downloaded)
	}
	if summary.Failed != 0 {
		t.Errorf("Expected no failures, got %d", summary.Failed)
	}

	entries, err := os.ReadDir(cfg.Output.Directory)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("Expected 10 files on disk, got %d", len(entries))
	}

	// Every file holds the JPEG payload the mock CDN serves.
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", e.Name(), err)
		}
		if !bytes.Equal(data, jpegBytes) {
			t.Errorf("File %s does not contain the expected image bytes", e.Name())
		}
	}
}

// TestPaginationAdvances verifies the scraper walks pages until the limit
// is met rather than refetching the first page.
func TestPaginationAdvances(t *testing.T) {
	mockServer := NewMockBingServer(30)
	defer mockServer.Close()

	cfg := newTestConfig(t, 15, 4, 5)
	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("city skyline")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Collected != 15 {
		t.Errorf("Expected 15 collected URLs, got %d", summary.Collected)
	}
	if mockServer.GetSearchCount() < 3 {
		t.Errorf("Expected at least 3 result pages for 15 images at page size 5, got %d", mockServer.GetSearchCount())
	}
}

// TestPartialFailures verifies one bad image does not sink the run.
func TestPartialFailures(t *testing.T) {
	mockServer := NewMockBingServer(5)
	defer mockServer.Close()

	mockServer.SetErrorResponse("/media/1.jpg", http.StatusNotFound)
	mockServer.SetErrorResponse("/media/3.jpg", http.StatusInternalServerError)

	cfg := newTestConfig(t, 5, 2, 10)
	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("puppy")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Downloaded != 3 {
		t.Errorf("Expected 3 downloads, got %d", summary.Downloaded)
	}
	if summary.Failed != 2 {
		t.Errorf("Expected 2 failures, got %d", summary.Failed)
	}

	entries, err := os.ReadDir(cfg.Output.Directory)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 files on disk, got %d", len(entries))
	}
}

// TestNonImagePayloadRejected verifies a 200 response carrying HTML is
// counted as a failure and never written to disk.
func TestNonImagePayloadRejected(t *testing.T) {
	mockServer := NewMockBingServer(3)
	defer mockServer.Close()

	mockServer.SetErrorResponse("/media/0.jpg", http.StatusOK)

	cfg := newTestConfig(t, 3, 2, 10)
	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("puppy")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Downloaded != 2 {
		t.Errorf("Expected 2 downloads, got %d", summary.Downloaded)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failure, got %d", summary.Failed)
	}

	entries, err := os.ReadDir(cfg.Output.Directory)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", e.Name(), err)
		}
		if bytes.Contains(data, []byte("<html>")) {
			t.Errorf("HTML payload was written to disk as %s", e.Name())
		}
	}
}

// TestSearchOutage verifies a dead search endpoint fails the run with a
// network error before anything touches the download pool.
func TestSearchOutage(t *testing.T) {
	mockServer := NewMockBingServer(5)
	defer mockServer.Close()

	mockServer.SetSearchStatus(http.StatusServiceUnavailable)

	cfg := newTestConfig(t, 5, 2, 10)
	s := newTestScraper(t, cfg, mockServer)

	_, err := s.Run("puppy")
	if err == nil {
		t.Fatal("Expected an error when the search endpoint is down")
	}
	if !errors.IsType(err, errors.ErrorTypeNetwork) {
		t.Errorf("Expected a network error, got: %v", err)
	}

	entries, readErr := os.ReadDir(cfg.Output.Directory)
	if readErr != nil {
		t.Fatalf("Failed to read output directory: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files after a failed search, got %d", len(entries))
	}
}

// TestNoResults verifies an empty result set is a clean, successful run.
func TestNoResults(t *testing.T) {
	mockServer := NewMockBingServer(0)
	defer mockServer.Close()

	cfg := newTestConfig(t, 10, 2, 10)
	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("qwxzv no such thing")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Collected != 0 || summary.Downloaded != 0 || summary.Failed != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}

// TestQueryFolderNaming verifies the per-query folder derives from the
// query with spaces replaced.
func TestQueryFolderNaming(t *testing.T) {
	mockServer := NewMockBingServer(2)
	defer mockServer.Close()

	baseDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Download.Limit = 2
	cfg.Download.Threads = 2
	cfg.Output.BaseDirectory = baseDir
	cfg.Output.Directory = ""

	s := newTestScraper(t, cfg, mockServer)

	summary, err := s.Run("red panda cub")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expectedDir := filepath.Join(baseDir, "red_panda_cub")
	if summary.OutputDir != expectedDir {
		t.Errorf("Expected output dir %s, got %s", expectedDir, summary.OutputDir)
	}
	if _, err := os.Stat(expectedDir); err != nil {
		t.Errorf("Expected query folder to exist: %v", err)
	}
}
