package utils

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// StepAggregate holds aggregate timing information for a step
type StepAggregate struct {
	Count    int
	Total    time.Duration
	Average  time.Duration
	Min      time.Duration
	Max      time.Duration
	StepName string
}

// PerformanceTracker tracks execution times of named steps across a run
type PerformanceTracker struct {
	aggregates map[string]*StepAggregate
	mu         sync.Mutex
}

func NewPerformanceTracker() *PerformanceTracker {
	return &PerformanceTracker{
		aggregates: make(map[string]*StepAggregate),
	}
}

// Track times fn and records the duration under the step name. The error
// from fn is passed through untouched.
func (pt *PerformanceTracker) Track(step string, fn func() error) error {
	start := time.Now()
	err := fn()
	pt.Record(step, time.Since(start))
	return err
}

// Record adds a single measurement for a step
func (pt *PerformanceTracker) Record(step string, d time.Duration) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	agg, exists := pt.aggregates[step]
	if !exists {
		agg = &StepAggregate{
			StepName: step,
			Min:      d,
			Max:      d,
		}
		pt.aggregates[step] = agg
	}

	agg.Count++
	agg.Total += d
	agg.Average = agg.Total / time.Duration(agg.Count)

	if d < agg.Min {
		agg.Min = d
	}
	if d > agg.Max {
		agg.Max = d
	}
}

// GenerateAggregateReport generates an aggregate performance report
func (pt *PerformanceTracker) GenerateAggregateReport() string {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("\n=== Aggregate Performance Report ===\n")

	// Sort steps by total time
	var steps []*StepAggregate
	for _, agg := range pt.aggregates {
		steps = append(steps, agg)
	}
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].Total > steps[j].Total
	})

	// Write sorted aggregates
	for _, agg := range steps {
		sb.WriteString(fmt.Sprintf(
			"Step: %s\n"+
				"  Count:   %d\n"+
				"  Total:   %v\n"+
				"  Average: %v\n"+
				"  Min:     %v\n"+
				"  Max:     %v\n",
			agg.StepName,
			agg.Count,
			agg.Total.Round(time.Millisecond),
			agg.Average.Round(time.Millisecond),
			agg.Min.Round(time.Millisecond),
			agg.Max.Round(time.Millisecond),
		))
	}

	return sb.String()
}
