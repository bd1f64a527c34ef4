package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsCollected     int64
	SourceFailures     int64
	DuplicatesFiltered int64
	SeenSkipped        int64
	ExtractionFailures int64
	CandidatesScored   int64
	JudgeCalls         int64
	JudgeFailures      int64
	DigestsSent        int64
	DeliveryFailures   int64

	// Timings
	LastCycleTime    time.Duration
	TotalCycleTime   time.Duration
	AverageCycleTime time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsCollected += int64(n)
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementSeenSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeenSkipped++
}

func (m *Metrics) IncrementExtractionFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtractionFailures++
}

func (m *Metrics) IncrementCandidatesScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesScored++
}

func (m *Metrics) IncrementJudgeCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JudgeCalls++
}

func (m *Metrics) IncrementJudgeFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JudgeFailures++
}

func (m *Metrics) IncrementDigestsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsSent++
}

func (m *Metrics) IncrementDeliveryFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeliveryFailures++
}

func (m *Metrics) RecordCycleTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++

	if m.CycleCount > 0 {
		m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_collected":       m.ItemsCollected,
		"source_failures":       m.SourceFailures,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"seen_skipped":          m.SeenSkipped,
		"extraction_failures":   m.ExtractionFailures,
		"candidates_scored":     m.CandidatesScored,
		"judge_calls":           m.JudgeCalls,
		"judge_failures":        m.JudgeFailures,
		"digests_sent":          m.DigestsSent,
		"delivery_failures":     m.DeliveryFailures,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
