package pipeline

import "time"

// Adaptive tuning bounds.
const (
	// chunkDurationBudget is the per-segment duration above which the next
	// target chunk size shrinks.
	chunkDurationBudget = 500 * time.Millisecond

	// heapHighWater is the heap size above which the tuner throttles.
	heapHighWater = 1 << 30 // 1 GiB
)

// tuner adjusts chunk size and worker count between runs from measured
// per-chunk duration and observed heap usage. Worker reduction is preferred
// over chunk shrinking under memory pressure because it is cheaper to
// reverse: the next run simply uses more workers again.
type tuner struct {
	chunkSize  int
	workers    int
	maxWorkers int
}

func newTuner(chunkSize, workers int) *tuner {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if workers < 1 {
		workers = 1
	}
	return &tuner{chunkSize: chunkSize, workers: workers, maxWorkers: workers}
}

// observe feeds one run's measurements into the tuner.
func (t *tuner) observe(avgChunk time.Duration, heapBytes uint64) {
	if heapBytes > heapHighWater {
		if t.workers > 1 {
			t.workers--
		} else if t.chunkSize/2 >= MinChunkSize {
			t.chunkSize /= 2
		}
		return
	}

	// Memory is fine: recover worker count before touching chunk size.
	if t.workers < t.maxWorkers {
		t.workers++
	}

	if avgChunk > chunkDurationBudget && t.chunkSize/2 >= MinChunkSize {
		t.chunkSize /= 2
	}
}
