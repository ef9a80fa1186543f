package delivery

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samod99/NourishFoods-sub000/internal/geo"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLeg starts a simulation and pins the total distance so progress
// arithmetic is exact.
func newLeg(total float64) *Simulator {
	s := NewSimulator(quietLogger())
	s.Start(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 0, Lng: 0.02})
	s.total = total
	s.remaining = total
	return s
}

func tick(s *Simulator, n int) {
	for i := 0; i < n; i++ {
		s.Advance(TickInterval.Seconds())
	}
}

func TestPhaseMapping(t *testing.T) {
	cases := []struct {
		progress float64
		want     Phase
	}{
		{0, PhaseConfirmed},
		{0.19, PhaseConfirmed},
		{0.2, PhasePreparing},
		{0.4, PhasePickedUp},
		{0.6, PhaseOnTheWay},
		{0.8, PhaseAlmostThere},
		{0.94, PhaseAlmostThere},
		{0.95, PhaseDelivered},
		{1.0, PhaseDelivered},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, phaseFor(tc.progress), "progress %v", tc.progress)
	}
}

func TestAdvanceDeterminism(t *testing.T) {
	s := newLeg(1390)

	// 500 ticks of 0.5s at 1.39 m/s: 347.5 m, progress 0.25.
	tick(s, 500)

	snap := s.Snapshot()
	assert.InDelta(t, 347.5, snap.TraveledMeters, 1e-6)
	assert.InDelta(t, 0.25, snap.Progress, 1e-6)
	assert.Equal(t, PhasePreparing, snap.Phase)
}

func TestDeliveredIsTerminal(t *testing.T) {
	s := newLeg(1390)

	// Progress reaches 0.95 at 1320.5 m, i.e. on tick 1901.
	tick(s, 1901)
	snap := s.Snapshot()
	require.Equal(t, PhaseDelivered, snap.Phase)
	assert.False(t, snap.Running)
	assert.Equal(t, s.dest, snap.Position)
	assert.Zero(t, snap.RemainingMeters)

	// Further ticks change nothing.
	tick(s, 50)
	after := s.Snapshot()
	assert.Equal(t, snap.TraveledMeters, after.TraveledMeters)
	assert.Equal(t, snap.Position, after.Position)
}

func TestSnapToDestination(t *testing.T) {
	s := NewSimulator(quietLogger())
	// About 5.5 m apart: already inside the snap threshold.
	s.Start(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 0, Lng: 0.00005})

	s.Advance(TickInterval.Seconds())
	assert.Equal(t, s.dest, s.Snapshot().Position)
}

func TestPauseFreezesState(t *testing.T) {
	s := newLeg(1390)
	tick(s, 100)
	before := s.Snapshot()

	s.Pause()
	tick(s, 200)
	frozen := s.Snapshot()
	assert.Equal(t, before.TraveledMeters, frozen.TraveledMeters)
	assert.Equal(t, before.Phase, frozen.Phase)
	assert.True(t, frozen.Paused)

	// Resume continues from exactly where it left off.
	s.Resume()
	tick(s, 1)
	resumed := s.Snapshot()
	assert.InDelta(t, before.TraveledMeters+SpeedMetersPerSecond*0.5, resumed.TraveledMeters, 1e-9)
}

func TestReset(t *testing.T) {
	s := newLeg(1390)
	tick(s, 300)

	s.Reset()
	snap := s.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.False(t, snap.Running)
	assert.Zero(t, snap.TraveledMeters)
	assert.Equal(t, s.origin, snap.Position)
	assert.Empty(t, snap.ETA)
	assert.Empty(t, snap.RemainingDistance)

	// A reset simulation ignores further ticks.
	tick(s, 10)
	assert.Zero(t, s.Snapshot().TraveledMeters)
}

func TestRestartSupersedesOldLoop(t *testing.T) {
	s := newLeg(1390)
	gen := s.generation()
	require.True(t, s.tick(gen, TickInterval.Seconds()))
	require.InDelta(t, 0.695, s.Snapshot().TraveledMeters, 1e-9)

	// A second start begins a new leg; ticks from the first loop must not
	// advance it, or the courier would move at double speed.
	s.Start(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 0, Lng: 0.02})
	s.total = 1390
	s.remaining = 1390

	assert.False(t, s.tick(gen, TickInterval.Seconds()))
	assert.Zero(t, s.Snapshot().TraveledMeters)

	require.True(t, s.tick(s.generation(), TickInterval.Seconds()))
	assert.InDelta(t, 0.695, s.Snapshot().TraveledMeters, 1e-9)
}

func TestResetStopsRunLoop(t *testing.T) {
	s := newLeg(1390)
	gen := s.generation()
	require.True(t, s.tick(gen, TickInterval.Seconds()))

	s.Reset()
	assert.False(t, s.tick(gen, TickInterval.Seconds()))
}

func TestOnChangeDeliversSnapshots(t *testing.T) {
	s := newLeg(1390)
	var phases []Phase
	s.OnChange(func(snap Snapshot) { phases = append(phases, snap.Phase) })

	tick(s, 2)
	require.Len(t, phases, 2)
	assert.Equal(t, PhaseConfirmed, phases[0])
}
