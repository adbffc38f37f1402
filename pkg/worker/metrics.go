package worker

import (
	"sync/atomic"
	"time"
)

type metrics struct {
	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64

	totalDuration atomic.Uint64 // nanoseconds
	maxDuration   atomic.Uint64 // nanoseconds
}

func newMetrics() *metrics {
	return &metrics{}
}

func (m *metrics) record(d time.Duration, err error) {
	if err != nil {
		m.failed.Add(1)
	} else {
		m.completed.Add(1)
	}

	nanos := uint64(d.Nanoseconds())
	m.totalDuration.Add(nanos)
	for {
		current := m.maxDuration.Load()
		if nanos <= current || m.maxDuration.CompareAndSwap(current, nanos) {
			break
		}
	}
}

// Stats is a point-in-time view of pool counters.
type Stats struct {
	Submitted       uint64        `json:"submitted"`
	Completed       uint64        `json:"completed"`
	Failed          uint64        `json:"failed"`
	Rejected        uint64        `json:"rejected"`
	AverageDuration time.Duration `json:"average_duration"`
	MaxDuration     time.Duration `json:"max_duration"`
}

func (m *metrics) snapshot() Stats {
	completed := m.completed.Load()
	failed := m.failed.Load()

	var avg time.Duration
	if finished := completed + failed; finished > 0 {
		avg = time.Duration(m.totalDuration.Load() / finished)
	}

	return Stats{
		Submitted:       m.submitted.Load(),
		Completed:       completed,
		Failed:          failed,
		Rejected:        m.rejected.Load(),
		AverageDuration: avg,
		MaxDuration:     time.Duration(m.maxDuration.Load()),
	}
}
