// Package scraper wires the pipeline together: build the search request,
// page through results, extract and collect image URLs, then fan the
// downloads out over a bounded worker pool.
package scraper

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bingrab/internal/downloader"
	"bingrab/pkg/bing"
	"bingrab/pkg/config"
	"bingrab/pkg/errors"
	"bingrab/pkg/logger"
	"bingrab/pkg/storage"
	"bingrab/pkg/ui"
)

// Scraper orchestrates the scrape-and-download pipeline.
type Scraper struct {
	client    *bing.Client
	extractor bing.Extractor
	config    *config.Config
	logger    logger.Logger
	tui       ui.TUI
}

// Summary reports the outcome of one run.
type Summary struct {
	Query      string
	Collected  int
	Downloaded int
	Failed     int
	OutputDir  string
}

// New creates a Scraper from configuration. The config is passed in
// explicitly so tests can run independent pipelines in one process.
func New(cfg *config.Config) (*Scraper, error) {
	log := logger.GetLogger().WithField("run_id", uuid.NewString())

	client := bing.NewClient(cfg.Search.Timeout, log)
	if cfg.Search.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.Search.UserAgent)
	}

	return &Scraper{
		client:    client,
		extractor: bing.NewExtractor(),
		config:    cfg,
		logger:    log,
	}, nil
}

// SetTUI attaches a live terminal view for the run.
func (s *Scraper) SetTUI(t ui.TUI) {
	s.tui = t
}

// Client returns the underlying search client, letting callers redirect
// it at a test server.
func (s *Scraper) Client() *bing.Client {
	return s.client
}

// Run executes the pipeline for a query and returns a run summary.
// Individual download failures are reflected in the summary, not in the
// returned error: only setup failures (bad query, unwritable output
// directory, total search failure) abort the run.
func (s *Scraper) Run(query string) (*Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrorTypeInvalidArgument, "query must not be empty")
	}

	s.logger.WithFields(map[string]interface{}{
		"query":   query,
		"limit":   s.config.Download.Limit,
		"threads": s.config.Download.Threads,
	}).Info("starting run")

	outputDir := s.config.Output.DirFor(query)
	store, err := storage.NewManager(outputDir)
	if err != nil {
		s.logger.WithError(err).Error("failed to prepare output directory")
		return nil, err
	}

	collected, err := s.collectURLs(query)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Query:     query,
		Collected: len(collected),
		OutputDir: outputDir,
	}

	if len(collected) == 0 {
		s.logger.WithField("query", query).Warn("search returned no results")
		return summary, nil
	}

	if s.tui != nil {
		s.tui.SetTotal(len(collected))
	}
	tracker := ui.NewStatusTracker(len(collected))

	pool := downloader.NewWorkerPool(s.config.Download.Threads, s.client, store, s.logger)
	pool.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.processResults(pool.Results(), tracker, summary)
	}()

	for i, img := range collected {
		job := downloader.DownloadJob{
			URL:      img.URL,
			Filename: storage.FilenameForURL(img.URL),
			Index:    i,
		}
		if err := pool.Submit(job); err != nil {
			s.logger.WithError(err).WithField("url", img.URL).Error("failed to submit download job")
			continue
		}
		if s.tui != nil {
			s.tui.JobQueued(job.Filename, job.Filename)
		}
	}

	// Drain: close the queue, join the workers, then wait for the
	// result processor to finish counting.
	pool.Stop()
	wg.Wait()

	tracker.PrintSummary(outputDir)

	s.logger.WithFields(map[string]interface{}{
		"query":      query,
		"collected":  summary.Collected,
		"downloaded": summary.Downloaded,
		"failed":     summary.Failed,
	}).Info("run completed")

	return summary, nil
}

// collectURLs pages through the search endpoint until the limit is met or
// a page contributes nothing new. A page failure after something was
// collected is logged and the pipeline proceeds with what it has;
// total search failure is fatal.
func (s *Scraper) collectURLs(query string) ([]bing.ImageResult, error) {
	req := bing.SearchRequest{
		Query:       query,
		AdultFilter: s.config.Search.AdultFilter,
		Filters:     s.config.Search.Filters,
		Count:       s.config.Search.PageSize,
	}

	coll := newCollector(s.config.Download.Limit)
	offset := 0
	pagesFetched := 0

	for !coll.Full() {
		body, err := s.client.FetchResultPage(req.WithOffset(offset))
		if err != nil {
			if pagesFetched == 0 {
				return nil, fmt.Errorf("search endpoint unreachable: %w", err)
			}
			s.logger.WithError(err).WithField("offset", offset).Warn("result page failed, proceeding with collected URLs")
			break
		}
		pagesFetched++

		batch := s.extractor.Extract(body)
		added := coll.AddAll(batch)

		s.logger.WithFields(map[string]interface{}{
			"offset":    offset,
			"extracted": len(batch),
			"added":     added,
			"collected": coll.Len(),
		}).Debug("result page processed")

		// No new URLs means the endpoint ran dry or started repeating.
		if added == 0 {
			break
		}
		offset += len(batch)
	}

	return coll.Results(), nil
}

// processResults consumes pool results until the result channel closes.
func (s *Scraper) processResults(results <-chan downloader.DownloadResult, tracker *ui.StatusTracker, summary *Summary) {
	for result := range results {
		if result.Success {
			summary.Downloaded++
			tracker.IncrementCompleted()
			if s.tui != nil {
				s.tui.JobCompleted(result.Job.Filename, int64(result.Size))
			} else {
				tracker.PrintProgress()
			}
			continue
		}

		summary.Failed++
		tracker.IncrementFailed()
		s.logger.WithFields(map[string]interface{}{
			"url":   result.Job.URL,
			"error": result.Error.Error(),
		}).Warn("download failed, skipping")
		if s.tui != nil {
			s.tui.JobFailed(result.Job.Filename, result.Error)
		} else {
			tracker.PrintProgress()
		}
	}
}
