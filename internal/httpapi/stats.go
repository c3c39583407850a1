package httpapi

import "sync/atomic"

// statsCollector accumulates the non-authoritative in-process counters
// GET /stats exposes (spec §6 calls these out explicitly as
// non-authoritative: they reset on restart and are not a substitute for a
// real metrics backend — internal/httpapi's prometheus middleware covers
// that separately).
type statsCollector struct {
	requestsTotal   atomic.Int64
	requestsFailed  atomic.Int64
	batchesTotal    atomic.Int64
	batchSlidesOK   atomic.Int64
	batchSlidesAll  atomic.Int64
}

func newStatsCollector() *statsCollector {
	return &statsCollector{}
}

func (s *statsCollector) recordSuccess() {
	s.requestsTotal.Add(1)
}

func (s *statsCollector) recordFailure() {
	s.requestsTotal.Add(1)
	s.requestsFailed.Add(1)
}

func (s *statsCollector) recordBatch(total, successful int) {
	s.batchesTotal.Add(1)
	s.batchSlidesAll.Add(int64(total))
	s.batchSlidesOK.Add(int64(successful))
}

type statsSnapshot struct {
	RequestsTotal  int64 `json:"requests_total"`
	RequestsFailed int64 `json:"requests_failed"`
	BatchesTotal   int64 `json:"batches_total"`
	BatchSlidesOK  int64 `json:"batch_slides_successful"`
	BatchSlidesAll int64 `json:"batch_slides_total"`
}

func (s *statsCollector) snapshot() statsSnapshot {
	return statsSnapshot{
		RequestsTotal:  s.requestsTotal.Load(),
		RequestsFailed: s.requestsFailed.Load(),
		BatchesTotal:   s.batchesTotal.Load(),
		BatchSlidesOK:  s.batchSlidesOK.Load(),
		BatchSlidesAll: s.batchSlidesAll.Load(),
	}
}
