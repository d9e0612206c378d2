package aircraft

import (
	"fmt"
	"math"

	"rwsl-simulator/internal/game/flightplan"
	"rwsl-simulator/pkg/types"
)

type AircraftState int

const (
	PUSHBACK AircraftState = iota
	TAXI
	HOLD
	TAKEOFF
	LANDING
)

var StateStringMap = map[AircraftState]string{
	PUSHBACK: "PUSHBACK",
	TAXI:     "TAXI",
	HOLD:     "HOLD",
	TAKEOFF:  "TAKEOFF",
	LANDING:  "LANDING",
}

// States lists every operational status, in declaration order.
var States = []AircraftState{PUSHBACK, TAXI, HOLD, TAKEOFF, LANDING}

func (s AircraftState) String() string {
	if str, ok := StateStringMap[s]; ok {
		return str
	}
	return fmt.Sprintf("AircraftState(%d)", int(s))
}

// Category fixes an aircraft type's nominal taxi speed (m/s) and length (m).
type Category struct {
	Type   string
	Speed  float64
	Length float64
}

var Categories = []Category{
	{Type: "B737-800", Speed: 15, Length: 39},
	{Type: "A320", Speed: 15, Length: 38},
	{Type: "B777-300", Speed: 12, Length: 74},
	{Type: "A350", Speed: 12, Length: 67},
	{Type: "B747-8F", Speed: 10, Length: 76},
}

type Aircraft struct {
	ID       types.AircraftID
	Callsign string
	Category Category

	Position types.Vec2
	Velocity types.Vec2
	Heading  float64 // degrees, counter-clockwise from +x
	Speed    float64 // m/s

	// TargetSpeed is the nominal taxi speed the aircraft recovers toward
	// once it is clear of speed restrictions.
	TargetSpeed float64

	AccelerationRate float64 // m/s^2

	State AircraftState
	Route flightplan.Route
}

func NewAircraft(id types.AircraftID, callsign string, category Category, pos types.Vec2,
	heading, speed float64, state AircraftState, route flightplan.Route) *Aircraft {
	ac := &Aircraft{
		ID:               id,
		Callsign:         callsign,
		Category:         category,
		Position:         pos,
		Heading:          math.Mod(heading+360, 360),
		Speed:            math.Max(0, speed),
		TargetSpeed:      math.Max(0, speed),
		AccelerationRate: 1.0,
		State:            state,
		Route:            route,
	}
	ac.updateVelocity()
	return ac
}

// Update integrates position over dt seconds using the velocity in effect
// at the start of the step.
func (ac *Aircraft) Update(dt float64) {
	ac.Position = ac.Position.Add(ac.Velocity.Scale(dt))
}

// Recover accelerates toward TargetSpeed. It never decelerates, so a
// takeoff roll above the nominal speed is left alone.
func (ac *Aircraft) Recover(dt float64) {
	if ac.Speed < ac.TargetSpeed {
		ac.Speed += ac.AccelerationRate * dt
		if ac.Speed > ac.TargetSpeed {
			ac.Speed = ac.TargetSpeed
		}
	}
}

// SetSpeed sets the current speed, flooring it at zero, and re-derives the
// velocity vector.
func (ac *Aircraft) SetSpeed(s float64) {
	ac.Speed = math.Max(0, s)
	ac.updateVelocity()
}

func (ac *Aircraft) SetHeading(h float64) {
	ac.Heading = math.Mod(math.Mod(h, 360)+360, 360)
	ac.updateVelocity()
}

// GroundSpeed is the magnitude of the velocity vector.
func (ac *Aircraft) GroundSpeed() float64 {
	return ac.Velocity.Length()
}

func (ac *Aircraft) updateVelocity() {
	ac.Velocity = types.HeadingVector(ac.Heading).Scale(ac.Speed)
}
