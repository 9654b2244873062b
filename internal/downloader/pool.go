package downloader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"bingrab/pkg/errors"
	"bingrab/pkg/logger"
)

// DownloadJob represents a single download task. Filename is pre-assigned
// at dispatch time so workers share no naming state.
type DownloadJob struct {
	URL      string
	Filename string
	Index    int
}

// DownloadResult represents the outcome of a download job.
type DownloadResult struct {
	Job      DownloadJob
	Success  bool
	Error    error
	Duration time.Duration
	Size     int
}

// ImageFetcher fetches image bytes from a URL.
type ImageFetcher interface {
	DownloadImage(url string) ([]byte, error)
}

// ImageStorage persists image bytes under a filename.
type ImageStorage interface {
	SaveImage(r io.Reader, filename string) error
}

// WorkerPool manages concurrent download workers. Jobs are consumed in
// submission order; completion order across workers is unspecified.
type WorkerPool struct {
	numWorkers  int
	jobQueue    chan DownloadJob
	resultQueue chan DownloadResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	fetcher     ImageFetcher
	storage     ImageStorage
	logger      logger.Logger
}

// NewWorkerPool creates a new download worker pool.
func NewWorkerPool(numWorkers int, fetcher ImageFetcher, storage ImageStorage, log logger.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.GetLogger()
	}

	return &WorkerPool{
		numWorkers:  numWorkers,
		jobQueue:    make(chan DownloadJob, numWorkers*2),
		resultQueue: make(chan DownloadResult, numWorkers),
		ctx:         ctx,
		cancel:      cancel,
		fetcher:     fetcher,
		storage:     storage,
		logger:      log,
	}
}

// Start initializes and starts all workers.
func (wp *WorkerPool) Start() {
	wp.logger.WithField("num_workers", wp.numWorkers).Info("starting worker pool")

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop shuts down the pool: the job queue is closed, all workers drain the
// remaining jobs, then the result queue closes. The caller blocks here
// until every worker has finished.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()

	wp.logger.Info("worker pool stopped")
}

// Submit adds a new download job to the queue.
func (wp *WorkerPool) Submit(job DownloadJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	}
}

// Results returns the result channel for consuming download results.
func (wp *WorkerPool) Results() <-chan DownloadResult {
	return wp.resultQueue
}

// QueueSize returns the current number of jobs waiting in the queue.
func (wp *WorkerPool) QueueSize() int {
	return len(wp.jobQueue)
}

// worker is the main worker routine.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobQueue {
		select {
		case <-wp.ctx.Done():
			return
		default:
		}

		result := wp.processJob(job, id)

		select {
		case wp.resultQueue <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob handles a single download job. Any failure is reported in
// the result and isolated to this job; sibling workers keep running.
func (wp *WorkerPool) processJob(job DownloadJob, workerID int) DownloadResult {
	start := time.Now()
	result := DownloadResult{Job: job}

	data, err := wp.fetcher.DownloadImage(job.URL)
	if err != nil {
		result.Error = fmt.Errorf("download failed: %w", err)
		result.Duration = time.Since(start)

		wp.logger.WithFields(map[string]interface{}{
			"worker_id": workerID,
			"url":       job.URL,
			"error":     err.Error(),
		}).Error("worker failed to download image")

		return result
	}

	result.Size = len(data)

	// The endpoint sometimes hands back an HTML error page in place of
	// image bytes; sniff and reject those instead of saving them.
	if !isImagePayload(data) {
		result.Error = errors.Newf(errors.ErrorTypeParse,
			"payload is not an image (%s)", http.DetectContentType(sniffPrefix(data)))
		result.Duration = time.Since(start)

		wp.logger.WithFields(map[string]interface{}{
			"worker_id": workerID,
			"url":       job.URL,
			"size":      result.Size,
		}).Warn("discarding non-image payload")

		return result
	}

	if err := wp.storage.SaveImage(bytes.NewReader(data), job.Filename); err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		result.Duration = time.Since(start)

		wp.logger.WithFields(map[string]interface{}{
			"worker_id": workerID,
			"filename":  job.Filename,
			"error":     err.Error(),
		}).Error("worker failed to save image")

		return result
	}

	result.Success = true
	result.Duration = time.Since(start)

	wp.logger.WithFields(map[string]interface{}{
		"worker_id": workerID,
		"filename":  job.Filename,
		"size":      result.Size,
		"duration":  result.Duration,
	}).Debug("worker completed job")

	return result
}

// isImagePayload reports whether data sniffs as an image or SVG document.
func isImagePayload(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	ct := http.DetectContentType(sniffPrefix(data))
	if len(ct) >= 6 && ct[:6] == "image/" {
		return true
	}
	// SVG sniffs as text/xml
	return bytes.Contains(sniffPrefix(data), []byte("<svg"))
}

func sniffPrefix(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
