package simulation

import (
	"errors"
	"fmt"
)

var ErrUnknownScenario = errors.New("unknown scenario")

type ScenarioID int

const (
	NormalOperations ScenarioID = iota
	PeakHour
	Emergency
	LowVisibility
)

// Scenario is a named traffic setup. ConflictProbability scales the chance
// of a random scenario event on each tick.
type Scenario struct {
	ID                  ScenarioID `json:"-"`
	Key                 string     `json:"key"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	AircraftCount       int        `json:"aircraft_count"`
	ConflictProbability float64    `json:"conflict_probability"`
}

// Scenarios is indexed by ScenarioID. New scenarios are added here.
var Scenarios = []Scenario{
	NormalOperations: {
		ID: NormalOperations, Key: "normal_operations", Name: "Normal Operations",
		Description: "Typical airport operations", AircraftCount: 5, ConflictProbability: 0.1,
	},
	PeakHour: {
		ID: PeakHour, Key: "peak_hour", Name: "Peak Hour",
		Description: "Congested peak-hour traffic", AircraftCount: 15, ConflictProbability: 0.3,
	},
	Emergency: {
		ID: Emergency, Key: "emergency_scenario", Name: "Emergency",
		Description: "Elevated runway incursion risk", AircraftCount: 8, ConflictProbability: 0.8,
	},
	LowVisibility: {
		ID: LowVisibility, Key: "low_visibility", Name: "Low Visibility",
		Description: "CAT II/III operations", AircraftCount: 6, ConflictProbability: 0.4,
	},
}

func (id ScenarioID) String() string {
	if sc, ok := id.Scenario(); ok {
		return sc.Key
	}
	return fmt.Sprintf("ScenarioID(%d)", int(id))
}

func (id ScenarioID) Scenario() (Scenario, bool) {
	if id < 0 || int(id) >= len(Scenarios) {
		return Scenario{}, false
	}
	return Scenarios[id], true
}

// ParseScenario looks a scenario up by its key, e.g. "peak_hour".
func ParseScenario(key string) (ScenarioID, error) {
	for _, sc := range Scenarios {
		if sc.Key == key {
			return sc.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScenario, key)
}
