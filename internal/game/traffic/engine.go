package traffic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/labstack/gommon/log"

	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/flightplan"
	"rwsl-simulator/pkg/types"
)

var (
	ErrNoCategories  = errors.New("no aircraft categories")
	ErrNoSpawnPoints = errors.New("no spawn points")
)

// SpawnPoint fixes where new aircraft appear, which way they face and the
// route they are cleared along.
type SpawnPoint struct {
	Name     string
	Position types.Vec2
	Heading  float64
	Route    []string
}

var SpawnPoints = []SpawnPoint{
	{Name: "Gate_Area", Position: types.NewVec2(1800, -400), Heading: 90, Route: []string{"P3", "P", "B1", "14R"}},
	{Name: "Runway_14R", Position: types.NewVec2(50, 0), Heading: 135, Route: []string{"B1", "P", "P6", "Gate"}},
	{Name: "Runway_32L", Position: types.NewVec2(3150, 0), Heading: 315, Route: []string{"E1", "P", "P3", "Gate"}},
	{Name: "North_Apron", Position: types.NewVec2(200, 400), Heading: 180, Route: []string{"G2", "P", "C3", "14R"}},
	{Name: "Taxiway_P", Position: types.NewVec2(1500, -120), Heading: 90, Route: []string{"D2", "14R"}},
}

type Settings struct {
	// Spawn jitter half-ranges along (x) and across (y) the runway axis.
	JitterAlong  float64
	JitterAcross float64
	// SpeedVariation is the full width of the nominal speed jitter; 0.2
	// yields speeds within ±10% of the category's nominal speed.
	SpeedVariation float64

	Acceleration float64 // m/s^2 recovery toward nominal speed

	CongestionDecelStep float64 // m/s shed per tick inside a capped band
	TakeoffAccelStep    float64 // m/s gained per tick on a takeoff roll
	TakeoffSpeedCap     float64

	SlowdownRadius   float64
	CriticalRadius   float64
	CriticalSpeedCap float64
}

func DefaultSettings() Settings {
	return Settings{
		JitterAlong:         50,
		JitterAcross:        25,
		SpeedVariation:      0.2,
		Acceleration:        1,
		CongestionDecelStep: 0.5,
		TakeoffAccelStep:    1,
		TakeoffSpeedCap:     50,
		SlowdownRadius:      100,
		CriticalRadius:      30,
		CriticalSpeedCap:    5,
	}
}

// Engine spawns, advances and retires aircraft. It is not safe for
// concurrent use; the simulation drives it from a single tick loop.
type Engine struct {
	airport     *airport.Airport
	settings    Settings
	rng         *rand.Rand
	categories  []aircraft.Category
	spawnPoints []SpawnPoint
	hotSpots    []airport.HotSpot
	runways     []airport.Runway
	taxiways    []airport.Taxiway

	nextID types.AircraftID
}

func NewEngine(ap *airport.Airport, settings Settings, rng *rand.Rand,
	categories []aircraft.Category, spawnPoints []SpawnPoint) (*Engine, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	if len(spawnPoints) == 0 {
		return nil, ErrNoSpawnPoints
	}
	if rng == nil {
		return nil, fmt.Errorf("traffic engine: nil random source")
	}
	return &Engine{
		airport:     ap,
		settings:    settings,
		rng:         rng,
		categories:  append([]aircraft.Category(nil), categories...),
		spawnPoints: append([]SpawnPoint(nil), spawnPoints...),
		hotSpots:    ap.HotSpots(),
		runways:     ap.Runways(),
		taxiways:    ap.Taxiways(),
	}, nil
}

func (e *Engine) SpawnInitial(fleet *Fleet, count int) []aircraft.Aircraft {
	spawned := make([]aircraft.Aircraft, 0, count)
	for i := 0; i < count; i++ {
		ac := e.SpawnOne()
		fleet.Add(ac)
		spawned = append(spawned, ac)
	}
	return spawned
}

func (e *Engine) SpawnOne() aircraft.Aircraft {
	cat := e.categories[e.rng.IntN(len(e.categories))]
	sp := e.spawnPoints[e.rng.IntN(len(e.spawnPoints))]

	offset := types.NewVec2(
		(e.rng.Float64()-0.5)*2*e.settings.JitterAlong,
		(e.rng.Float64()-0.5)*2*e.settings.JitterAcross)
	speed := cat.Speed * (1 + (e.rng.Float64()-0.5)*e.settings.SpeedVariation)
	state := aircraft.States[e.rng.IntN(len(aircraft.States))]
	callsign := fmt.Sprintf("KAL%d", 1000+e.rng.IntN(9000))

	e.nextID++
	ac := aircraft.NewAircraft(e.nextID, callsign, cat, sp.Position.Add(offset),
		sp.Heading, speed, state, flightplan.NewRoute(sp.Route...))
	if e.settings.Acceleration > 0 {
		ac.AccelerationRate = e.settings.Acceleration
	}

	log.Debugf("SPAWN: %s %s (%s) at %s pos (%.0f, %.0f) hdg %.0f spd %.1f %s",
		ac.ID, ac.Callsign, cat.Type, sp.Name, ac.Position.X, ac.Position.Y, ac.Heading, ac.Speed,
		aircraft.StateStringMap[ac.State])
	return *ac
}

// Admit assigns the next aircraft ID to ac and adds it to the fleet.
func (e *Engine) Admit(fleet *Fleet, ac aircraft.Aircraft) aircraft.Aircraft {
	e.nextID++
	ac.ID = e.nextID
	fleet.Add(ac)
	return ac
}

// MaybeSpawn admits at most one new aircraft: a Bernoulli draw with
// probability rateHz*dt, gated by the fleet ceiling.
func (e *Engine) MaybeSpawn(fleet *Fleet, dt, rateHz float64, maxAircraft int) (aircraft.Aircraft, bool) {
	if e.rng.Float64() >= rateHz*dt || fleet.Len() >= maxAircraft {
		return aircraft.Aircraft{}, false
	}
	ac := e.SpawnOne()
	fleet.Add(ac)
	return ac, true
}

// Tick advances every aircraft by dt seconds and returns those that left
// the airport envelope.
func (e *Engine) Tick(fleet *Fleet, dt float64) []aircraft.Aircraft {
	for i := range fleet.Aircraft {
		ac := &fleet.Aircraft[i]

		ac.Update(dt)
		ac.Recover(dt)
		// Route limits first, then hot-spot proximity.
		e.applyRouteLimits(ac)
		e.applyHotSpotSlowdown(ac)
		ac.SetSpeed(ac.Speed)

		e.advanceRoute(ac)
	}

	return fleet.RemoveOutOfBounds(e.airport.Bounds())
}

func (e *Engine) applyRouteLimits(ac *aircraft.Aircraft) {
	for i := range e.taxiways {
		twy := &e.taxiways[i]
		if twy.SpeedCap <= 0 || twy.DistanceTo(ac.Position) >= twy.CapBand {
			continue
		}
		if ac.Speed > twy.SpeedCap {
			ac.Speed = math.Max(twy.SpeedCap, ac.Speed-e.settings.CongestionDecelStep)
		}
	}

	if ac.State != aircraft.TAKEOFF {
		return
	}
	for i := range e.runways {
		if e.runways[i].LateralDistance(ac.Position) < e.runways[i].TakeoffBand {
			ac.Speed = math.Min(e.settings.TakeoffSpeedCap, ac.Speed+e.settings.TakeoffAccelStep)
			return
		}
	}
}

// applyHotSpotSlowdown caps speed linearly with distance inside the
// slowdown radius, relative to nominal speed so that successive ticks do
// not compound.
func (e *Engine) applyHotSpotSlowdown(ac *aircraft.Aircraft) {
	r := e.settings.SlowdownRadius
	for _, hs := range e.hotSpots {
		d := ac.Position.DistanceTo(hs.Location)
		if d >= r {
			continue
		}
		limit := ac.TargetSpeed * (0.5 + 0.5*d/r)
		if ac.Speed > limit {
			ac.Speed = limit
		}
		if d < e.settings.CriticalRadius && hs.Risk == airport.CRITICAL {
			ac.Speed = math.Min(ac.Speed, e.settings.CriticalSpeedCap)
		}
	}
	ac.Speed = math.Max(0, ac.Speed)
}

func (e *Engine) advanceRoute(ac *aircraft.Aircraft) {
	for i := ac.Route.CurrentSegmentIndex; i < len(ac.Route.Segments); i++ {
		name := ac.Route.Segments[i]
		if !e.airport.OnSegment(name, ac.Position) {
			continue
		}
		if i > ac.Route.CurrentSegmentIndex && ac.Route.AdvanceTo(name) {
			log.Debugf("ROUTE: %s %s now on %s", ac.ID, ac.Callsign, name)
		}
		return
	}
}
