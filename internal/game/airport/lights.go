package airport

import (
	"fmt"

	"rwsl-simulator/pkg/types"
)

type FixtureType int

const (
	ENTRANCE FixtureType = iota
	TAKEOFF_HOLD
	STOP_BAR
)

var FixtureTypeStringMap = map[FixtureType]string{
	ENTRANCE:     "ENTRANCE",
	TAKEOFF_HOLD: "TAKEOFF_HOLD",
	STOP_BAR:     "STOP_BAR",
}

func (t FixtureType) String() string {
	if s, ok := FixtureTypeStringMap[t]; ok {
		return s
	}
	return fmt.Sprintf("FixtureType(%d)", int(t))
}

const (
	// THLSpacing is the longitudinal spacing between takeoff-hold light
	// pairs.
	THLSpacing = 38.0
	// THLStartOffset is the distance from the threshold to the first pair.
	THLStartOffset = 115.0
	// THLLateralOffset is the distance of each light from the centerline.
	THLLateralOffset = 11.5
)

type LightFixture struct {
	ID       string
	Type     FixtureType
	Position types.Vec2
	Taxiway  string // ENTRANCE and STOP_BAR
	Runway   string // runway designation, or runway end for TAKEOFF_HOLD
	HotSpot  string // empty if the fixture is not tied to a hot spot
	Side     string // "LEFT"/"RIGHT" for TAKEOFF_HOLD
}

// Installation describes a row of evenly spaced fixtures across a taxiway.
type Installation struct {
	Taxiway string
	Runway  string
	HotSpot string
	Base    types.Vec2
	// Axis is the direction the row extends in from Base. It is
	// normalized during generation; the zero value means +y.
	Axis    types.Vec2
	Count   int
	Spacing float64
}

func (ap *Airport) generateFixtures(entrances, stopBars []Installation) ([]LightFixture, error) {
	var fixtures []LightFixture

	rel, err := ap.generateRow(ENTRANCE, "REL", entrances)
	if err != nil {
		return nil, err
	}
	fixtures = append(fixtures, rel...)

	fixtures = append(fixtures, ap.generateTHL()...)

	sb, err := ap.generateRow(STOP_BAR, "SB", stopBars)
	if err != nil {
		return nil, err
	}
	fixtures = append(fixtures, sb...)

	return fixtures, nil
}

func (ap *Airport) generateRow(ft FixtureType, prefix string, installations []Installation) ([]LightFixture, error) {
	var out []LightFixture
	for _, inst := range installations {
		if inst.Count <= 0 || inst.Spacing < 0 {
			return nil, fmt.Errorf("%s %s: count %d spacing %.1f: %w", prefix, inst.Taxiway,
				inst.Count, inst.Spacing, ErrBadInstallation)
		}
		if inst.HotSpot != "" {
			if _, ok := ap.HotSpot(inst.HotSpot); !ok {
				return nil, fmt.Errorf("%s %s: %q: %w", prefix, inst.Taxiway, inst.HotSpot, ErrUnknownHotSpot)
			}
		}
		if inst.Runway != "" {
			if _, ok := ap.Runway(inst.Runway); !ok {
				return nil, fmt.Errorf("%s %s: %q: %w", prefix, inst.Taxiway, inst.Runway, ErrUnknownRunway)
			}
		}

		axis := inst.Axis.Normalized()
		if axis == (types.Vec2{}) {
			axis = types.NewVec2(0, 1)
		}
		for i := 0; i < inst.Count; i++ {
			out = append(out, LightFixture{
				ID:       fmt.Sprintf("%s_%s_%03d", prefix, inst.Taxiway, i+1),
				Type:     ft,
				Position: inst.Base.Add(axis.Scale(float64(i) * inst.Spacing)),
				Taxiway:  inst.Taxiway,
				Runway:   inst.Runway,
				HotSpot:  inst.HotSpot,
			})
		}
	}
	return out, nil
}

// generateTHL lays out takeoff-hold light pairs starting THLStartOffset
// from each threshold and proceeding toward the opposite end.
func (ap *Airport) generateTHL() []LightFixture {
	var out []LightFixture
	for _, rwy := range ap.runways {
		axis := rwy.Axis()
		lateral := axis.Perp()

		for _, end := range []struct {
			th  Threshold
			dir types.Vec2
		}{
			{rwy.Low, axis},
			{rwy.High, axis.Scale(-1)},
		} {
			for i := 0; i < end.th.THLPairs; i++ {
				along := THLStartOffset + float64(i)*THLSpacing
				center := end.th.Position.Add(end.dir.Scale(along))

				out = append(out, LightFixture{
					ID:       fmt.Sprintf("THL_%s_L_%03d", end.th.ID, i+1),
					Type:     TAKEOFF_HOLD,
					Position: center.Sub(lateral.Scale(THLLateralOffset)),
					Runway:   end.th.ID,
					Side:     "LEFT",
				})
				out = append(out, LightFixture{
					ID:       fmt.Sprintf("THL_%s_R_%03d", end.th.ID, i+1),
					Type:     TAKEOFF_HOLD,
					Position: center.Add(lateral.Scale(THLLateralOffset)),
					Runway:   end.th.ID,
					Side:     "RIGHT",
				})
			}
		}
	}
	return out
}
