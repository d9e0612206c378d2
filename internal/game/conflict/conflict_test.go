package conflict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/flightplan"
	"rwsl-simulator/pkg/types"
)

func mk(id types.AircraftID, pos types.Vec2, heading, speed float64) aircraft.Aircraft {
	return *aircraft.NewAircraft(id, "KAL"+id.String(), aircraft.Categories[1], pos, heading, speed,
		aircraft.TAXI, flightplan.NewRoute("P"))
}

func gimpoHotSpots(t *testing.T) []airport.HotSpot {
	ap, err := airport.New(airport.GimpoRKSS())
	require.NoError(t, err)
	return ap.HotSpots()
}

func TestDetectPredictsAlongVelocity(t *testing.T) {
	hs := gimpoHotSpots(t)

	// 300 m west of HS3 heading east at 10 m/s: in 30 s it sits on HS3.
	fleet := []aircraft.Aircraft{mk(1, types.NewVec2(500, -60), 0, 10)}
	got := Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters)

	require.Len(t, got, 1)
	assert.Equal(t, HOT_SPOT_PROXIMITY, got[0].Kind)
	assert.Equal(t, "HS3", got[0].HotSpot)
	assert.Equal(t, airport.HIGH, got[0].Risk)
	assert.InDelta(t, 30.0, got[0].TimeToConflict, 1e-9)
	assert.False(t, got[0].Unbounded())

	// Heading away, nothing is predicted.
	fleet = []aircraft.Aircraft{mk(1, types.NewVec2(500, -60), 180, 10)}
	assert.Empty(t, Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters))
}

func TestDetectUsesPredictedNotCurrentPosition(t *testing.T) {
	hs := gimpoHotSpots(t)

	// Currently 10 m from HS2 but 310 m past it in 30 s.
	fleet := []aircraft.Aircraft{mk(1, types.NewVec2(2390, -60), 0, 10)}
	for _, c := range Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters) {
		assert.NotEqual(t, "HS2", c.HotSpot)
	}
}

func TestDetectStationaryIsUnbounded(t *testing.T) {
	hs := gimpoHotSpots(t)

	fleet := []aircraft.Aircraft{mk(1, types.NewVec2(2400, -20), 0, 0)}
	got := Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters)

	require.Len(t, got, 1)
	assert.Equal(t, "HS2", got[0].HotSpot)
	assert.Equal(t, airport.CRITICAL, got[0].Risk)
	assert.True(t, math.IsInf(got[0].TimeToConflict, 1))
	assert.True(t, got[0].Unbounded())
}

func TestDetectThresholdIsStrict(t *testing.T) {
	hs := gimpoHotSpots(t)

	fleet := []aircraft.Aircraft{mk(1, types.NewVec2(2400, -10), 0, 0)}
	assert.Empty(t, Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters))
}

func TestDetectOrderingAndNoDedupe(t *testing.T) {
	spots := []airport.HotSpot{
		{ID: "A", Location: types.NewVec2(0, 0), Risk: airport.MEDIUM},
		{ID: "B", Location: types.NewVec2(0, 0), Risk: airport.CRITICAL},
		{ID: "C", Location: types.NewVec2(1000, 0), Risk: airport.HIGH},
	}
	fleet := []aircraft.Aircraft{
		mk(5, types.NewVec2(10, 0), 0, 0),
		mk(2, types.NewVec2(990, 0), 0, 0),
		mk(9, types.NewVec2(20, 5), 0, 0),
	}

	got := Detect(fleet, spots, DefaultHorizonSeconds, DefaultRadiusMeters)

	var pairs [][2]string
	for _, c := range got {
		pairs = append(pairs, [2]string{c.Aircraft.String(), c.HotSpot})
	}
	assert.Equal(t, [][2]string{
		{"AC0005", "A"}, {"AC0005", "B"},
		{"AC0002", "C"},
		{"AC0009", "A"}, {"AC0009", "B"},
	}, pairs)
}

func TestDetectIsPure(t *testing.T) {
	hs := gimpoHotSpots(t)
	fleet := []aircraft.Aircraft{
		mk(1, types.NewVec2(500, -60), 0, 10),
		mk(2, types.NewVec2(2400, -20), 0, 0),
		mk(3, types.NewVec2(150, 400), 270, 8),
	}
	snapshot := append([]aircraft.Aircraft(nil), fleet...)

	first := Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters)
	second := Detect(fleet, hs, DefaultHorizonSeconds, DefaultRadiusMeters)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, fleet)
	assert.NotEmpty(t, first)
}

func TestTimeToConflict(t *testing.T) {
	ac := mk(1, types.NewVec2(0, 0), 90, 4)
	assert.InDelta(t, 25.0, TimeToConflict(&ac, types.NewVec2(60, 80)), 1e-9)

	p := PredictPosition(&ac, 10)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 40.0, p.Y, 1e-9)
}
