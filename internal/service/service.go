// Package service implements the dataset lifecycle and lookups behind the
// HTTP transport.
package service

import (
	"sync"
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/config"
	"github.com/xiaot623/gogo/venueboard/internal/metrics"
	"github.com/xiaot623/gogo/venueboard/internal/repository"
)

// Notifier pushes messages to connected viewers.
type Notifier interface {
	BroadcastJSON(v any) error
}

type Service struct {
	store    repository.Store
	pipeline *config.Compiled
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time

	mu      sync.RWMutex
	current *Dataset
}

// New creates a Service. notifier and m may be nil.
func New(store repository.Store, pipeline *config.Compiled, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		pipeline: pipeline,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}
