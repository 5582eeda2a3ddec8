package service

import (
	"context"
	"fmt"
)

// SummaryClient is the outbound AI surface the summary service depends on.
type SummaryClient interface {
	SummarizeURL(ctx context.Context, url string) (title string, summary string, err error)
}

// SummaryService generates AI summaries for bookmarked URLs. A bounded worker
// pool caps the number of concurrent model calls.
type SummaryService struct {
	client      SummaryClient
	maxWorkers  int
	workerQueue chan struct{}
}

// NewSummaryService creates a new summary service
func NewSummaryService(client SummaryClient, maxWorkers int) *SummaryService {
	if maxWorkers <= 0 {
		maxWorkers = 5 // Default to 5 workers
	}

	return &SummaryService{
		client:      client,
		maxWorkers:  maxWorkers,
		workerQueue: make(chan struct{}, maxWorkers),
	}
}

// Summarize produces a title and summary for the URL. It blocks while all
// workers are busy and fails if the request is cancelled before a worker
// frees up.
func (s *SummaryService) Summarize(ctx context.Context, url string) (string, string, error) {
	// Acquire a worker from the pool
	select {
	case s.workerQueue <- struct{}{}:
		defer func() {
			// Release the worker back to the pool
			<-s.workerQueue
		}()
	case <-ctx.Done():
		return "", "", fmt.Errorf("waiting for summary worker: %w", ctx.Err())
	}

	title, summary, err := s.client.SummarizeURL(ctx, url)
	if err != nil {
		return "", "", fmt.Errorf("failed to summarize url: %w", err)
	}

	return title, summary, nil
}
