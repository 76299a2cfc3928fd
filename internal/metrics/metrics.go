package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Sink はエンドポイントごとの利用状況を受け取る。
// プロセス全体のmutable mapを直接触らせず、注入して差し替え・リセットできるようにする。
type Sink interface {
	ObserveRequest(method string, path string, status int, duration time.Duration)
}

// Snapshotで返す1エンドポイント分の集計
type EndpointStats struct {
	Calls       int64  `json:"calls"`
	Errors      int64  `json:"errors"`
	AvgDuration string `json:"avgDuration"`
	ErrorRate   string `json:"errorRate"`
}

type record struct {
	calls         int64
	errors        int64
	totalDuration time.Duration
}

type InMemorySink struct {
	mu      sync.Mutex
	records map[string]*record
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{records: map[string]*record{}}
}

func (s *InMemorySink) ObserveRequest(method string, path string, status int, duration time.Duration) {
	key := method + " " + path

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		rec = &record{}
		s.records[key] = rec
	}

	rec.calls++
	rec.totalDuration += duration
	if status >= 400 {
		rec.errors++
	}
}

// Snapshot は集計のコピーを返す
func (s *InMemorySink) Snapshot() map[string]EndpointStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]EndpointStats, len(s.records))
	for key, rec := range s.records {
		avg := time.Duration(0)
		if rec.calls > 0 {
			avg = rec.totalDuration / time.Duration(rec.calls)
		}
		out[key] = EndpointStats{
			Calls:       rec.calls,
			Errors:      rec.errors,
			AvgDuration: avg.String(),
			ErrorRate:   fmt.Sprintf("%.2f%%", errorRate(rec)),
		}
	}
	return out
}

// Reset はテスト用に集計を消す
func (s *InMemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = map[string]*record{}
}

func errorRate(rec *record) float64 {
	if rec.calls == 0 {
		return 0
	}
	return float64(rec.errors) / float64(rec.calls) * 100
}
