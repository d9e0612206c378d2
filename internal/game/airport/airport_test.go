package airport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwsl-simulator/pkg/types"
)

func loadGimpo(t *testing.T) *Airport {
	t.Helper()
	ap, err := New(GimpoRKSS())
	require.NoError(t, err)
	return ap
}

func TestToLocalReferencePoint(t *testing.T) {
	ap := loadGimpo(t)

	x, y := ap.ToLocal(ap.ARP.Lat, ap.ARP.Lon)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestToLocalRoundTrip(t *testing.T) {
	ap := loadGimpo(t)

	for _, off := range []types.Vec2{
		{X: 100, Y: 0},
		{X: 0, Y: -2500},
		{X: 7000, Y: 7000},
		{X: -9999, Y: 150},
	} {
		lat, lon := ap.ToGeo(off.X, off.Y)
		x, y := ap.ToLocal(lat, lon)
		assert.InDelta(t, off.X, x, 1.0, "%v", off)
		assert.InDelta(t, off.Y, y, 1.0, "%v", off)
	}
}

func TestToLocalScale(t *testing.T) {
	g := GeoRef{Lat: 0, Lon: 0}

	x, y := g.ToLocal(0.01, 0.01)
	assert.InDelta(t, 1113.2, x, 1e-6)
	assert.InDelta(t, 1105.4, y, 1e-6)
}

func TestRunwayLookup(t *testing.T) {
	ap := loadGimpo(t)

	for _, name := range []string{"14R/32L", "14R", "32l"} {
		rwy, ok := ap.Runway(name)
		require.True(t, ok, name)
		assert.Equal(t, "14R/32L", rwy.Designation)
		assert.Equal(t, 3200.0, rwy.Length)
	}

	_, ok := ap.Runway("09/27")
	assert.False(t, ok)

	rwy, _ := ap.Runway("14L")
	assert.InDelta(t, 25.0, rwy.LateralDistance(types.NewVec2(900, 125)), 1e-9)
	assert.InDelta(t, 25.0, rwy.LateralDistance(types.NewVec2(900, 175)), 1e-9)
}

func TestTaxiwayLookup(t *testing.T) {
	ap := loadGimpo(t)

	p, ok := ap.Taxiway("p")
	require.True(t, ok)
	assert.Equal(t, 10.0, p.SpeedCap)
	assert.InDelta(t, 15.0, p.DistanceTo(types.NewVec2(1000, -105)), 1e-9)

	_, ok = ap.Taxiway("Z9")
	assert.False(t, ok)
}

func TestHotSpots(t *testing.T) {
	ap := loadGimpo(t)

	hs := ap.HotSpots()
	require.Len(t, hs, 7)
	assert.Equal(t, "HS1", hs[0].ID)

	hs2, ok := ap.HotSpot("HS2")
	require.True(t, ok)
	assert.Equal(t, CRITICAL, hs2.Risk)
	assert.Equal(t, "CRITICAL", hs2.Risk.String())

	// Mutating the returned slice must not reach the model.
	hs[0].Risk = CRITICAL
	again, _ := ap.HotSpot("HS1")
	assert.Equal(t, HIGH, again.Risk)
}

func TestFixtureGeneration(t *testing.T) {
	ap := loadGimpo(t)

	assert.Len(t, ap.LightFixtures(ENTRANCE), 130)
	assert.Len(t, ap.LightFixtures(TAKEOFF_HOLD), 4*12*2)
	assert.Len(t, ap.LightFixtures(STOP_BAR), 5*15)
	assert.Len(t, ap.LightFixtures(), 130+96+75)
	assert.Len(t, ap.LightFixtures(ENTRANCE, STOP_BAR), 130+75)

	ids := map[string]bool{}
	for _, f := range ap.LightFixtures() {
		assert.False(t, ids[f.ID], "duplicate fixture %s", f.ID)
		ids[f.ID] = true
	}

	rel := ap.LightFixtures(ENTRANCE)
	assert.Equal(t, "REL_B1_001", rel[0].ID)
	assert.Equal(t, "HS3", rel[0].HotSpot)
	assert.Equal(t, types.NewVec2(800, -45), rel[0].Position)
	assert.Equal(t, types.NewVec2(800, -42), rel[1].Position)
}

func TestTakeoffHoldLayout(t *testing.T) {
	ap := loadGimpo(t)

	byID := map[string]LightFixture{}
	for _, f := range ap.LightFixtures(TAKEOFF_HOLD) {
		byID[f.ID] = f
	}

	l1 := byID["THL_14R_L_001"]
	r1 := byID["THL_14R_R_001"]
	l2 := byID["THL_14R_L_002"]
	assert.Equal(t, types.NewVec2(115, -11.5), l1.Position)
	assert.Equal(t, types.NewVec2(115, 11.5), r1.Position)
	assert.InDelta(t, THLSpacing, l1.Position.DistanceTo(l2.Position), 1e-9)

	// Pairs from the far threshold run back toward the near one.
	far := byID["THL_32R_L_001"]
	farNext := byID["THL_32R_L_002"]
	assert.InDelta(t, 3485.0, far.Position.X, 1e-9)
	assert.InDelta(t, 3485.0-THLSpacing, farNext.Position.X, 1e-9)
	assert.InDelta(t, 150-THLLateralOffset, far.Position.Y, 1e-9)
}

func TestNewValidation(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Definition)
		err    error
	}{
		{"no runways", func(d *Definition) { d.Runways = nil }, ErrEmptyTable},
		{"no taxiways", func(d *Definition) { d.Taxiways = nil }, ErrEmptyTable},
		{"no hot spots", func(d *Definition) { d.HotSpots = nil }, ErrEmptyTable},
		{"unknown hot spot", func(d *Definition) { d.Entrances[0].HotSpot = "HS99" }, ErrUnknownHotSpot},
		{"unknown runway", func(d *Definition) { d.StopBars[0].Runway = "09/27" }, ErrUnknownRunway},
		{"zero count", func(d *Definition) { d.Entrances[0].Count = 0 }, ErrBadInstallation},
	} {
		t.Run(tc.name, func(t *testing.T) {
			def := GimpoRKSS()
			tc.mutate(&def)
			_, err := New(def)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	def := GimpoRKSS()
	def.Bounds = Bounds{}
	_, err := New(def)
	assert.Error(t, err)
}

func TestBoundsContains(t *testing.T) {
	b := GimpoRKSS().Bounds

	assert.True(t, b.Contains(types.NewVec2(0, 0)))
	assert.True(t, b.Contains(types.NewVec2(4000, 600)))
	assert.False(t, b.Contains(types.NewVec2(4000.1, 0)))
	assert.False(t, b.Contains(types.NewVec2(0, math.Inf(-1))))
}
