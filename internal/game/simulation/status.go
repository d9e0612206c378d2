package simulation

import (
	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/conflict"
	"rwsl-simulator/internal/game/rwsl"
	"rwsl-simulator/pkg/types"
)

const noScenario = "none"

type AircraftSnapshot struct {
	ID       types.AircraftID `json:"id"`
	Callsign string           `json:"callsign"`
	Type     string           `json:"type"`
	Position types.Vec2       `json:"position"`
	Heading  float64          `json:"heading"`
	Speed    float64          `json:"speed"`
	State    string           `json:"status"`
	Segment  string           `json:"segment"`
	// Route holds the segments still to fly, current one first.
	Route []string `json:"route"`
}

func snapshot(ac aircraft.Aircraft) AircraftSnapshot {
	return AircraftSnapshot{
		ID:       ac.ID,
		Callsign: ac.Callsign,
		Type:     ac.Category.Type,
		Position: ac.Position,
		Heading:  ac.Heading,
		Speed:    roundTenth(ac.Speed),
		State:    ac.State.String(),
		Segment:  ac.Route.Current(),
		Route:    ac.Route.Remaining(),
	}
}

type Status struct {
	IsRunning           bool               `json:"is_running"`
	SimulatedTime       float64            `json:"simulated_time"`
	Scenario            string             `json:"scenario"`
	AircraftCount       int                `json:"aircraft_count"`
	ActiveConflictCount int                `json:"active_conflicts"`
	FixtureSummary      rwsl.Summary       `json:"rwsl_status"`
	RecentEvents        []Event            `json:"recent_events"`
	Aircraft            []AircraftSnapshot `json:"aircraft"`

	// Conflicts from the last tick. Unbounded times are +Inf, which JSON
	// cannot carry.
	Conflicts []conflict.Conflict `json:"-"`
}

type Report struct {
	Scenario             string            `json:"scenario"`
	TotalSimulatedTime   float64           `json:"total_time"`
	TotalEvents          int               `json:"total_events"`
	ConflictCount        int               `json:"conflict_count"`
	SpawnCount           int               `json:"aircraft_spawned"`
	ConflictRatePercent  float64           `json:"conflict_rate"`
	RWSLActivations      int               `json:"rwsl_activations"`
	AverageAircraftCount float64           `json:"avg_aircraft_count"`
	PeakAircraftCount    int               `json:"peak_aircraft_count"`
	EventTypeHistogram   map[EventType]int `json:"event_summary"`
}

// Status returns a snapshot of the current state.
func (s *Simulation) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		IsRunning:           s.running,
		SimulatedTime:       s.simTime,
		Scenario:            s.scenarioName(),
		AircraftCount:       s.fleet.Len(),
		ActiveConflictCount: len(s.conflicts),
		FixtureSummary:      s.panel.Summary(),
		RecentEvents:        s.events.Recent(RecentEventCount),
		Aircraft:            make([]AircraftSnapshot, 0, s.fleet.Len()),
		Conflicts:           append([]conflict.Conflict(nil), s.conflicts...),
	}
	for _, ac := range s.fleet.Aircraft {
		st.Aircraft = append(st.Aircraft, snapshot(ac))
	}
	return st
}

// Aircraft returns the active aircraft with the given ID.
func (s *Simulation) Aircraft(id types.AircraftID) (AircraftSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ac, ok := s.fleet.Get(id)
	if !ok {
		return AircraftSnapshot{}, false
	}
	return snapshot(*ac), true
}

// Report aggregates the event log of the current or last run.
func (s *Simulation) Report() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Report{
		Scenario:           s.scenarioName(),
		TotalSimulatedTime: roundTenth(s.simTime),
		TotalEvents:        s.events.Len(),
		ConflictCount:      s.events.Count(ConflictDetected),
		SpawnCount:         s.events.Count(AircraftSpawn),
		RWSLActivations:    s.events.Activations(),
		PeakAircraftCount:  s.peakAircraft,
		EventTypeHistogram: s.events.Histogram(),
	}
	if r.TotalEvents > 0 {
		r.ConflictRatePercent = roundTenth(float64(r.ConflictCount) / float64(r.TotalEvents) * 100)
	}
	if s.ticks > 0 {
		r.AverageAircraftCount = roundTenth(float64(s.aircraftSum) / float64(s.ticks))
	} else {
		r.AverageAircraftCount = float64(s.fleet.Len())
	}
	return r
}

// Lights returns a copy of the light panel as of the last tick.
func (s *Simulation) Lights() *rwsl.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel.Clone()
}

// Events returns every retained event, oldest first.
func (s *Simulation) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.All()
}

func (s *Simulation) scenarioName() string {
	if s.scenario == nil {
		return noScenario
	}
	return s.scenario.Name
}
