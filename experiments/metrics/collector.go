package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Planner     string
	MaxDepth    int
	Duration    time.Duration
	Simulations int
	Expansions  int
	States      int
	Pruned      int
}

type StepRecord struct {
	Episode   string
	Step      int
	Action    string
	Inventory string
	Score     int
	SearchMetric
}

type EpisodeRecord struct {
	ID          string
	Planner     string
	Seed        uint64
	Steps       int
	FinalReward int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

type Collector interface {
	Start(planner string, maxDepth int)
	AddSimulation()
	AddExpansion()
	AddState()
	AddPruned()
	Complete() SearchMetric
}

type collector struct {
	planner     string
	maxDepth    int
	startTime   time.Time
	simulations atomic.Int32
	expansions  atomic.Int32
	states      atomic.Int32
	pruned      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(planner string, maxDepth int) {
	m.startTime = time.Now()
	m.planner = planner
	m.maxDepth = maxDepth
	m.simulations.Store(0)
	m.expansions.Store(0)
	m.states.Store(0)
	m.pruned.Store(0)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddState() {
	m.states.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Planner:     m.planner,
		MaxDepth:    m.maxDepth,
		Duration:    time.Since(m.startTime),
		Simulations: int(m.simulations.Load()),
		Expansions:  int(m.expansions.Load()),
		States:      int(m.states.Load()),
		Pruned:      int(m.pruned.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(planner string, maxDepth int) {}
func (m *dummyCollector) AddSimulation()                     {}
func (m *dummyCollector) AddExpansion()                      {}
func (m *dummyCollector) AddState()                          {}
func (m *dummyCollector) AddPruned()                         {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
