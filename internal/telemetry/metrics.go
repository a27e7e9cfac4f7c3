// Package telemetry collects local search telemetry for tuning scoring
// weights and the curated vocabulary. Nothing leaves the process.
package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LatencyBucket is a latency histogram bucket.
type LatencyBucket string

const (
	BucketP10   LatencyBucket = "p10"   // <10ms
	BucketP50   LatencyBucket = "p50"   // 10-50ms
	BucketP100  LatencyBucket = "p100"  // 50-100ms
	BucketP500  LatencyBucket = "p500"  // 100-500ms
	BucketP1000 LatencyBucket = "p1000" // >=500ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	ms := d.Milliseconds()
	switch {
	case ms < 10:
		return BucketP10
	case ms < 50:
		return BucketP50
	case ms < 100:
		return BucketP100
	case ms < 500:
		return BucketP500
	default:
		return BucketP1000
	}
}

// SearchEvent is one recorded search call.
type SearchEvent struct {
	Query       string
	ProjectIDs  []string
	ResultCount int
	Latency     time.Duration
	Timestamp   time.Time
}

// IsZeroResult reports whether the search returned nothing.
func (e SearchEvent) IsZeroResult() bool {
	return e.ResultCount == 0
}

// TermCount is a query term and its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Snapshot is an immutable view of the collected metrics.
type Snapshot struct {
	TotalSearches     int64                   `json:"total_searches"`
	ZeroResultCount   int64                   `json:"zero_result_count"`
	ExactRepeatCount  int64                   `json:"exact_repeat_count"`
	TopTerms          []TermCount             `json:"top_terms"`
	ZeroResultQueries []string                `json:"zero_result_queries"`
	Latencies         map[LatencyBucket]int64 `json:"latency_distribution"`
	Since             time.Time               `json:"since"`
}

// ZeroResultPercentage returns the share of zero-result searches.
func (s *Snapshot) ZeroResultPercentage() float64 {
	if s.TotalSearches == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalSearches) * 100
}

// Config sizes the bounded metric structures.
type Config struct {
	TopTermsCapacity      int // default 100
	ZeroResultsCapacity   int // default 100
	RecentQueriesCapacity int // default 500
}

// DefaultConfig returns the default capacities.
func DefaultConfig() Config {
	return Config{
		TopTermsCapacity:      100,
		ZeroResultsCapacity:   100,
		RecentQueriesCapacity: 500,
	}
}

// SearchMetrics aggregates search telemetry. Safe for concurrent use.
//
// Top terms and the repeat-query window live in LRU caches so memory
// stays bounded regardless of query diversity. Zero-result queries go
// to a fixed-size ring, oldest evicted first.
type SearchMetrics struct {
	mu sync.RWMutex

	topTerms      *lru.Cache[string, int64]
	recentQueries *lru.Cache[string, struct{}]
	zeroResults   *ring[string]
	latencies     map[LatencyBucket]int64

	totalSearches   int64
	zeroResultCount int64
	exactRepeats    int64
	startTime       time.Time
}

// NewSearchMetrics creates a collector with default capacities.
func NewSearchMetrics() *SearchMetrics {
	return NewSearchMetricsWithConfig(DefaultConfig())
}

// NewSearchMetricsWithConfig creates a collector with custom capacities.
func NewSearchMetricsWithConfig(cfg Config) *SearchMetrics {
	def := DefaultConfig()
	if cfg.TopTermsCapacity <= 0 {
		cfg.TopTermsCapacity = def.TopTermsCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = def.ZeroResultsCapacity
	}
	if cfg.RecentQueriesCapacity <= 0 {
		cfg.RecentQueriesCapacity = def.RecentQueriesCapacity
	}

	topTerms, _ := lru.New[string, int64](cfg.TopTermsCapacity)
	recentQueries, _ := lru.New[string, struct{}](cfg.RecentQueriesCapacity)

	return &SearchMetrics{
		topTerms:      topTerms,
		recentQueries: recentQueries,
		zeroResults:   newRing[string](cfg.ZeroResultsCapacity),
		latencies:     make(map[LatencyBucket]int64),
		startTime:     time.Now(),
	}
}

// Record folds one search event into the aggregates.
func (m *SearchMetrics) Record(event SearchEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSearches++
	m.latencies[LatencyToBucket(event.Latency)]++

	for _, term := range ExtractTerms(event.Query) {
		count, _ := m.topTerms.Get(term)
		m.topTerms.Add(term, count+1)
	}

	hash := hashQuery(event.Query)
	if _, seen := m.recentQueries.Get(hash); seen {
		m.exactRepeats++
	}
	m.recentQueries.Add(hash, struct{}{})

	if event.IsZeroResult() {
		m.zeroResultCount++
		m.zeroResults.add(event.Query)
	}
}

// Snapshot returns a copy of the current aggregates.
func (m *SearchMetrics) Snapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terms := make([]TermCount, 0, m.topTerms.Len())
	for _, term := range m.topTerms.Keys() {
		if count, ok := m.topTerms.Peek(term); ok {
			terms = append(terms, TermCount{Term: term, Count: count})
		}
	}

	latencies := make(map[LatencyBucket]int64, len(m.latencies))
	for bucket, count := range m.latencies {
		latencies[bucket] = count
	}

	return &Snapshot{
		TotalSearches:     m.totalSearches,
		ZeroResultCount:   m.zeroResultCount,
		ExactRepeatCount:  m.exactRepeats,
		TopTerms:          terms,
		ZeroResultQueries: m.zeroResults.items(),
		Latencies:         latencies,
		Since:             m.startTime,
	}
}

// Reset clears all aggregates and restarts the collection window.
func (m *SearchMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.topTerms.Purge()
	m.recentQueries.Purge()
	m.zeroResults.clear()
	m.latencies = make(map[LatencyBucket]int64)
	m.totalSearches = 0
	m.zeroResultCount = 0
	m.exactRepeats = 0
	m.startTime = time.Now()
}

// ExtractTerms lowercases a query and keeps words of length >= 3.
func ExtractTerms(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var terms []string
	for _, w := range strings.Fields(query) {
		if len(w) >= 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

// hashQuery normalizes a query and hashes it, so raw query text is not
// retained for repeat tracking.
func hashQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
