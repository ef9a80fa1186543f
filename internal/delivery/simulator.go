// Package delivery animates a courier between a vendor and a delivery
// address. It is a timed state machine: a fixed-speed point advances along
// the straight-line geodesic on every tick and the phase is derived from the
// fraction of total distance covered.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/Samod99/NourishFoods-sub000/internal/geo"
)

type Phase string

const (
	PhaseReady       Phase = "ready"
	PhaseConfirmed   Phase = "confirmed"
	PhasePreparing   Phase = "preparing"
	PhasePickedUp    Phase = "picked_up"
	PhaseOnTheWay    Phase = "on_the_way"
	PhaseAlmostThere Phase = "almost_there"
	PhaseDelivered   Phase = "delivered"
)

const (
	// SpeedMetersPerSecond is the courier speed, roughly 5 km/h.
	SpeedMetersPerSecond = 1.39
	// TickInterval drives the simulation loop.
	TickInterval = 500 * time.Millisecond

	// snapThreshold stops the point from overshooting the destination.
	snapThreshold = 10.0
	// deliveredFraction is the progress at which delivery completes.
	deliveredFraction = 0.95
)

func phaseFor(progress float64) Phase {
	switch {
	case progress >= deliveredFraction:
		return PhaseDelivered
	case progress >= 0.8:
		return PhaseAlmostThere
	case progress >= 0.6:
		return PhaseOnTheWay
	case progress >= 0.4:
		return PhasePickedUp
	case progress >= 0.2:
		return PhasePreparing
	default:
		return PhaseConfirmed
	}
}

// Snapshot is the externally visible simulation state.
type Snapshot struct {
	Phase             Phase     `json:"phase"`
	Position          geo.Point `json:"position"`
	Progress          float64   `json:"progress"`
	TraveledMeters    float64   `json:"traveledMeters"`
	TotalMeters       float64   `json:"totalMeters"`
	RemainingMeters   float64   `json:"remainingMeters"`
	ETA               string    `json:"eta"`
	RemainingDistance string    `json:"remainingDistance"`
	Running           bool      `json:"running"`
	Paused            bool      `json:"paused"`
}

// Simulator is single-writer: the Run loop (or a test) calls Advance, while
// readers take snapshots.
type Simulator struct {
	mu  sync.Mutex
	log *slog.Logger

	origin    geo.Point
	dest      geo.Point
	pos       geo.Point
	traveled  float64
	total     float64
	remaining float64
	phase     Phase
	running   bool
	paused    bool
	etaText   string
	distText  string
	gen       int

	listeners []func(Snapshot)
}

func NewSimulator(log *slog.Logger) *Simulator {
	return &Simulator{log: log, phase: PhaseReady}
}

// OnChange registers a callback invoked with a snapshot after every state
// change.
func (s *Simulator) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Simulator) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// Start begins tracking a leg from origin to dest. Any loop driving a
// previous leg is invalidated; only ticks for the current generation advance
// the state.
func (s *Simulator) Start(origin, dest geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.origin = origin
	s.dest = dest
	s.pos = origin
	s.total = geo.Distance(origin, dest)
	s.remaining = s.total
	s.traveled = 0
	s.phase = PhaseReady
	s.running = true
	s.paused = false
	s.updateDisplayLocked()
	s.log.Info("delivery tracking started", "total_m", s.total)
	s.notifyLocked()
}

// Advance moves the simulation forward by dt seconds. Paused ticks are
// accepted but change nothing; after delivery the state is frozen.
func (s *Simulator) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(dt)
}

func (s *Simulator) advanceLocked(dt float64) {
	if !s.running || s.paused || s.phase == PhaseDelivered {
		return
	}
	if s.total <= 0 {
		return
	}

	step := SpeedMetersPerSecond * dt
	s.traveled += step
	progress := math.Min(s.traveled/s.total, 1.0)
	s.phase = phaseFor(progress)

	if geo.Distance(s.pos, s.dest) < snapThreshold {
		s.pos = s.dest
	} else {
		s.pos = geo.Step(s.pos, s.dest, step)
	}

	s.remaining = geo.Distance(s.pos, s.dest)
	s.updateDisplayLocked()

	if s.phase == PhaseDelivered {
		s.running = false
		s.pos = s.dest
		s.remaining = 0
		s.log.Info("delivery completed", "traveled_m", s.traveled)
	}
	s.notifyLocked()
}

func (s *Simulator) updateDisplayLocked() {
	secs := s.remaining / SpeedMetersPerSecond
	s.etaText = fmt.Sprintf("%dm %02ds", int(secs)/60, int(secs)%60)
	s.distText = fmt.Sprintf("%.0f m", s.remaining)
}

// Pause freezes tick processing without changing phase.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.paused = true
	s.notifyLocked()
}

// Resume continues from exactly where the simulation left off; paused time is
// not caught up.
func (s *Simulator) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.paused = false
	s.notifyLocked()
}

// Reset stops ticking and restores the simulation to its pre-start state at
// the origin.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.running = false
	s.paused = false
	s.phase = PhaseReady
	s.traveled = 0
	s.pos = s.origin
	s.remaining = s.total
	s.etaText = ""
	s.distText = ""
	s.notifyLocked()
}

func (s *Simulator) snapshotLocked() Snapshot {
	progress := 0.0
	if s.total > 0 {
		progress = math.Min(s.traveled/s.total, 1.0)
	}
	return Snapshot{
		Phase:             s.phase,
		Position:          s.pos,
		Progress:          progress,
		TraveledMeters:    s.traveled,
		TotalMeters:       s.total,
		RemainingMeters:   s.remaining,
		ETA:               s.etaText,
		RemainingDistance: s.distText,
		Running:           s.running,
		Paused:            s.paused,
	}
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// tick advances by dt only while gen identifies the live leg, and reports
// whether the loop should keep going.
func (s *Simulator) tick(gen int, dt float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.advanceLocked(dt)
	return s.running
}

// Run drives the simulation on the tick interval until the context is
// cancelled, the delivery completes, or a newer leg supersedes this one.
func (s *Simulator) Run(ctx context.Context) {
	gen := s.generation()
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(gen, TickInterval.Seconds()) {
				return
			}
		}
	}
}
