package conflict

import (
	"math"

	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/pkg/types"
)

const (
	DefaultHorizonSeconds = 30.0
	DefaultRadiusMeters   = 50.0
)

type Kind int

const (
	HOT_SPOT_PROXIMITY Kind = iota
)

var KindStringMap = map[Kind]string{
	HOT_SPOT_PROXIMITY: "HOT_SPOT_PROXIMITY",
}

// Conflict is produced fresh each tick and never carried over.
type Conflict struct {
	Kind     Kind
	Aircraft types.AircraftID
	Callsign string
	HotSpot  string
	Risk     airport.RiskTier
	// TimeToConflict is in seconds; +Inf when the aircraft is stationary.
	TimeToConflict float64
}

// Unbounded reports whether no finite time-to-conflict could be computed.
func (c Conflict) Unbounded() bool {
	return math.IsInf(c.TimeToConflict, 1)
}

// PredictPosition extrapolates under a constant-velocity assumption.
func PredictPosition(ac *aircraft.Aircraft, seconds float64) types.Vec2 {
	return ac.Position.Add(ac.Velocity.Scale(seconds))
}

// TimeToConflict divides the current distance to target by current ground
// speed, returning +Inf for a stationary aircraft.
func TimeToConflict(ac *aircraft.Aircraft, target types.Vec2) float64 {
	speed := ac.GroundSpeed()
	if speed <= 0 {
		return math.Inf(1)
	}
	return ac.Position.DistanceTo(target) / speed
}

// Detect extrapolates each aircraft horizon seconds ahead and reports every
// hot spot that lies within radius of the predicted position. Results are
// in aircraft order, then hot-spot order; pairs are never merged.
func Detect(fleet []aircraft.Aircraft, hotSpots []airport.HotSpot, horizon, radius float64) []Conflict {
	var conflicts []Conflict
	for i := range fleet {
		ac := &fleet[i]
		predicted := PredictPosition(ac, horizon)

		for _, hs := range hotSpots {
			if predicted.DistanceTo(hs.Location) < radius {
				conflicts = append(conflicts, Conflict{
					Kind:           HOT_SPOT_PROXIMITY,
					Aircraft:       ac.ID,
					Callsign:       ac.Callsign,
					HotSpot:        hs.ID,
					Risk:           hs.Risk,
					TimeToConflict: TimeToConflict(ac, hs.Location),
				})
			}
		}
	}
	return conflicts
}
