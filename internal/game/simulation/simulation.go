package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"rwsl-simulator/internal/config"
	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/conflict"
	"rwsl-simulator/internal/game/rwsl"
	"rwsl-simulator/internal/game/traffic"
	"rwsl-simulator/pkg/types"
)

var (
	ErrNotRunning  = errors.New("simulation not running")
	ErrOutOfBounds = errors.New("position outside airport bounds")
)

const (
	// RecentEventCount bounds Status.RecentEvents.
	RecentEventCount = 10

	groundStopFactor     = 0.3
	emergencyStopBarOdds = 0.5
	eventOddsPerUnit     = 0.01
)

type Option func(*Simulation)

func WithClock(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

func WithScheduler(sch Scheduler) Option {
	return func(s *Simulation) { s.scheduler = sch }
}

// WithSeed fixes the random source; every Start replays the same run.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// Simulation owns the aircraft fleet, light panel and event log of one
// airport and advances them one tick at a time. Each tick computes the
// next state on copies and publishes it at once, so Status and Report
// never observe a half-applied tick.
type Simulation struct {
	airport   *airport.Airport
	hotSpots  []airport.HotSpot
	cfg       config.Config
	clock     Clock
	scheduler Scheduler
	seed      uint64

	conflictLog rate.Sometimes

	// runMu serializes Start and Stop so a restart cancels the previous
	// schedule before installing the next. Never held by the tick path.
	runMu sync.Mutex

	// tickMu serializes ticks, Start and Stop. It guards the engine and
	// random source, which only the tick path touches.
	tickMu sync.Mutex
	engine *traffic.Engine
	rng    *rand.Rand

	// mu guards published state.
	mu        sync.Mutex
	running   bool
	scenario  *Scenario
	simTime   float64
	fleet     traffic.Fleet
	panel     *rwsl.Panel
	conflicts []conflict.Conflict
	events    *EventLog
	cancel    func()

	ticks        int
	aircraftSum  int
	peakAircraft int
}

func New(model *airport.Airport, cfg *config.Config, opts ...Option) (*Simulation, error) {
	if model == nil {
		return nil, fmt.Errorf("simulation: nil airport model")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		airport:     model,
		hotSpots:    model.HotSpots(),
		cfg:         *cfg,
		clock:       SystemClock{},
		scheduler:   TickerScheduler{},
		seed:        cfg.Simulation.Seed,
		conflictLog: rate.Sometimes{Interval: time.Second},
		panel:       rwsl.NewPanel(model.LightFixtures()),
		events:      NewEventLog(EventLogCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulation) Airport() *airport.Airport {
	return s.airport
}

type StartResult struct {
	Status        string   `json:"status"`
	Scenario      Scenario `json:"scenario"`
	SimulatedTime float64  `json:"simulated_time"`
}

// StartByName starts the scenario with the given key.
func (s *Simulation) StartByName(key string) (StartResult, error) {
	id, err := ParseScenario(key)
	if err != nil {
		return StartResult{}, err
	}
	return s.Start(id)
}

// Start stops any running scenario, resets aircraft, lights, time and the
// event log, spawns the scenario's initial traffic and begins ticking.
func (s *Simulation) Start(id ScenarioID) (StartResult, error) {
	sc, ok := id.Scenario()
	if !ok {
		return StartResult{}, fmt.Errorf("%w: %s", ErrUnknownScenario, id)
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.stop()

	s.tickMu.Lock()
	seed := s.seed
	if seed == 0 {
		seed = uint64(s.clock.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	engine, err := traffic.NewEngine(s.airport, s.trafficSettings(), rng, aircraft.Categories, traffic.SpawnPoints)
	if err != nil {
		s.tickMu.Unlock()
		return StartResult{}, err
	}

	events := NewEventLog(EventLogCapacity)
	var fleet traffic.Fleet
	pending := []Event{s.event(0, SimulationStart, "scenario: "+sc.Name)}
	for _, ac := range engine.SpawnInitial(&fleet, sc.AircraftCount) {
		pending = append(pending, s.event(0, AircraftSpawn, fmt.Sprintf("%s (%s)", ac.Callsign, ac.Category.Type)))
	}
	for _, e := range pending {
		events.Append(e)
	}

	s.engine, s.rng = engine, rng
	s.mu.Lock()
	s.running = true
	s.scenario = &sc
	s.simTime = 0
	s.fleet = fleet
	s.panel = rwsl.NewPanel(s.airport.LightFixtures())
	s.conflicts = nil
	s.events = events
	s.ticks, s.aircraftSum, s.peakAircraft = 0, 0, fleet.Len()
	s.cancel = s.scheduler.Schedule(s.cfg.Simulation.UpdateInterval(), func() { s.Step() })
	s.mu.Unlock()
	s.tickMu.Unlock()

	s.logEvents(pending)
	log.Infof("START: %s, %d aircraft, seed %d", sc.Key, fleet.Len(), seed)

	return StartResult{Status: "STARTED", Scenario: sc, SimulatedTime: 0}, nil
}

// Stop halts ticking and keeps all state for Status and Report. Calling
// it when nothing is running does nothing.
func (s *Simulation) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.stop()
}

// stop cancels the schedule outside tickMu, since cancel waits for an
// in-flight tick. Callers hold runMu.
func (s *Simulation) stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	e := s.event(s.simTime, SimulationStop, fmt.Sprintf("total time: %.1fs", s.simTime))
	s.events.Append(e)
	s.mu.Unlock()

	s.logEvents([]Event{e})
}

// Step runs one tick and reports whether it did; it does nothing when the
// simulation is not running.
func (s *Simulation) Step() bool {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	scenario := *s.scenario
	simTime := s.simTime
	fleet := s.fleet.Clone()
	panel := s.panel.Clone()
	s.mu.Unlock()

	sim := s.cfg.Simulation
	dt := sim.TickSeconds()
	simTime += dt

	var pending []Event
	for _, ac := range s.engine.Tick(&fleet, dt) {
		pending = append(pending, s.event(simTime, AircraftDeparture, ac.Callsign+" left the airport"))
	}
	if ac, ok := s.engine.MaybeSpawn(&fleet, dt, sim.SpawnRateHz, sim.MaxAircraft); ok {
		pending = append(pending, s.event(simTime, AircraftSpawn, fmt.Sprintf("%s (%s)", ac.Callsign, ac.Category.Type)))
	}

	det := s.cfg.Detection
	conflicts := conflict.Detect(fleet.Aircraft, s.hotSpots, det.HorizonSeconds, det.RadiusMeters)
	rwsl.Apply(conflicts, panel)
	for _, c := range conflicts {
		pending = append(pending, s.event(simTime, ConflictDetected,
			fmt.Sprintf("%s - %s (%s)", c.Callsign, c.HotSpot, c.Risk)))
	}

	if e, ok := s.randomEvent(scenario, simTime, &fleet, panel); ok {
		pending = append(pending, e)
	}

	s.mu.Lock()
	s.simTime = simTime
	s.fleet = fleet
	s.panel = panel
	s.conflicts = conflicts
	for _, e := range pending {
		s.events.Append(e)
	}
	s.ticks++
	s.aircraftSum += fleet.Len()
	s.peakAircraft = max(s.peakAircraft, fleet.Len())
	s.mu.Unlock()

	s.logEvents(pending)
	return true
}

// SetTimeScale changes how many simulated seconds one tick covers,
// effective from the next tick.
func (s *Simulation) SetTimeScale(scale float64) error {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return fmt.Errorf("%w: time scale %g", config.ErrInvalid, scale)
	}
	s.tickMu.Lock()
	s.cfg.Simulation.TimeScale = scale
	s.tickMu.Unlock()
	log.Infof("SCALE: time scale set to %g", scale)
	return nil
}

// randomEvent draws at most one scenario event and applies its effect to
// the next state. Effects on lights last until the next tick re-applies
// the controller.
func (s *Simulation) randomEvent(sc Scenario, simTime float64, fleet *traffic.Fleet, panel *rwsl.Panel) (Event, bool) {
	if s.rng.Float64() >= sc.ConflictProbability*eventOddsPerUnit {
		return Event{}, false
	}

	t := RandomEvents[s.rng.IntN(len(RandomEvents))]
	desc := "scheduled check"
	switch t {
	case RunwayIncursionAlert:
		n := panel.SetWhere(func(f airport.LightFixture) bool { return f.Type == airport.ENTRANCE }, rwsl.FLASH)
		desc = fmt.Sprintf("%d runway entrance lights flashing", n)
	case GroundStop:
		fleet.ScaleSpeeds(groundStopFactor)
		desc = fmt.Sprintf("%d aircraft slowed to %.0f%%", fleet.Len(), groundStopFactor*100)
	case EmergencyVehicle:
		n := panel.SetWhere(func(f airport.LightFixture) bool {
			return f.Type == airport.STOP_BAR && s.rng.Float64() < emergencyStopBarOdds
		}, rwsl.ON)
		desc = fmt.Sprintf("%d stop bar lights on", n)
	case WeatherHold:
		desc = "weather hold"
	}
	return s.event(simTime, t, desc), true
}

// AddAircraft admits ac at its current position with the next aircraft
// ID, bypassing the random spawner. The aircraft's velocity is re-derived
// from its heading and speed.
func (s *Simulation) AddAircraft(ac aircraft.Aircraft) (types.AircraftID, error) {
	if !s.airport.Bounds().Contains(ac.Position) {
		return 0, fmt.Errorf("%w: (%.0f, %.0f)", ErrOutOfBounds, ac.Position.X, ac.Position.Y)
	}

	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0, ErrNotRunning
	}

	ac.SetSpeed(ac.Speed)
	ac = s.engine.Admit(&s.fleet, ac)
	s.events.Append(s.event(s.simTime, AircraftSpawn, fmt.Sprintf("%s (%s)", ac.Callsign, ac.Category.Type)))
	s.peakAircraft = max(s.peakAircraft, s.fleet.Len())
	return ac.ID, nil
}

func (s *Simulation) event(simTime float64, t EventType, desc string) Event {
	return Event{SimTime: simTime, WallTime: s.clock.Now(), Type: t, Description: desc}
}

func (s *Simulation) logEvents(events []Event) {
	for _, e := range events {
		switch {
		case e.Type == ConflictDetected:
			s.conflictLog.Do(func() {
				log.Warnf("CONFLICT: [%.1fs] %s", e.SimTime, e.Description)
			})
		case e.Type.Activation() || e.Type == GroundStop || e.Type == EmergencyVehicle:
			log.Warnf("%s: [%.1fs] %s", e.Type, e.SimTime, e.Description)
		default:
			log.Infof("%s: [%.1fs] %s", e.Type, e.SimTime, e.Description)
		}
	}
}

func (s *Simulation) trafficSettings() traffic.Settings {
	k := s.cfg.Kinematics
	st := traffic.DefaultSettings()
	st.JitterAlong = k.JitterAlong
	st.JitterAcross = k.JitterAcross
	st.SpeedVariation = s.cfg.Simulation.SpeedVariation
	st.Acceleration = k.Acceleration
	st.SlowdownRadius = k.SlowdownRadius
	st.CriticalRadius = k.CriticalRadius
	st.CriticalSpeedCap = k.CriticalSpeedCap
	return st
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
