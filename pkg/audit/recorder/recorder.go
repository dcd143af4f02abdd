package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"logveil-hq/logveil/pkg/audit"
	"logveil-hq/logveil/pkg/redact"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes audit records for rule firings. Records are created
// synchronously but written to storage by a background worker, so
// Record returns without waiting on the backend.
type Recorder struct {
	storage    audit.Storage
	config     *Config
	recordChan chan *audit.Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger

	mu      sync.Mutex
	dropped int64
}

// NewRecorder creates a new audit recorder with the provided storage
// backend and configuration.
func NewRecorder(storage audit.Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *audit.Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record enqueues one audit record per rule firing in matches. It
// never blocks: when the channel is full the records are dropped and
// counted.
func (r *Recorder) Record(ctx context.Context, source string, matches []redact.Match) {
	if !r.config.Enabled || len(matches) == 0 {
		return
	}

	now := time.Now().UTC()
	for _, m := range matches {
		record := &audit.Record{
			ID:              uuid.New().String(),
			Timestamp:       now,
			Source:          source,
			RuleDescription: m.Description,
			Trigger:         m.Trigger,
			MatchCount:      m.Count,
		}

		select {
		case r.recordChan <- record:
		case <-r.done:
			return
		default:
			r.mu.Lock()
			r.dropped++
			dropped := r.dropped
			r.mu.Unlock()
			r.logger.Warn("audit channel full, dropping record",
				"rule", record.RuleDescription,
				"dropped_total", dropped,
			)
		}
	}
}

// Dropped returns the number of records dropped because the channel
// was full.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close gracefully shuts down the recorder by draining the async
// channel and waiting for all pending writes to complete.
func (r *Recorder) Close() error {
	r.logger.Info("shutting down audit recorder")

	close(r.done)
	r.wg.Wait()

	r.logger.Info("audit recorder shut down complete")
	return nil
}

// worker drains the record channel and writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			// Drain remaining records from channel before exit.
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes a single audit record to storage.
func (r *Recorder) writeRecord(record *audit.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store audit record",
			"record_id", record.ID,
			"rule", record.RuleDescription,
			"error", err,
		)
		return
	}

	r.logger.Debug("audit record stored",
		"record_id", record.ID,
		"rule", record.RuleDescription,
		"match_count", record.MatchCount,
	)
}
