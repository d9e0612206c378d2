package rwsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/conflict"
)

func newGimpoPanel(t *testing.T) *Panel {
	t.Helper()
	ap, err := airport.New(airport.GimpoRKSS())
	require.NoError(t, err)
	return NewPanel(ap.LightFixtures())
}

func hotSpotConflict(hs string, risk airport.RiskTier) conflict.Conflict {
	return conflict.Conflict{Kind: conflict.HOT_SPOT_PROXIMITY, Aircraft: 1, HotSpot: hs, Risk: risk}
}

func TestApplyEmptyResetsEverything(t *testing.T) {
	p := newGimpoPanel(t)
	p.SetWhere(func(airport.LightFixture) bool { return true }, FLASH)
	p.set("SB_B1_001", ON)

	Apply(nil, p)

	for _, s := range p.States() {
		assert.Equal(t, OFF, s)
	}
	assert.Equal(t, 0, p.Summary().Active)
}

func TestApplyRiskTierMapping(t *testing.T) {
	p := newGimpoPanel(t)

	Apply([]conflict.Conflict{
		hotSpotConflict("HS2", airport.CRITICAL),
		hotSpotConflict("HS3", airport.HIGH),
	}, p)

	hs2 := p.HotSpotFixtures("HS2")
	require.Len(t, hs2, 20)
	for _, id := range hs2 {
		s, ok := p.State(id)
		require.True(t, ok)
		assert.Equal(t, FLASH, s, id)
	}
	for _, id := range p.HotSpotFixtures("HS3") {
		s, _ := p.State(id)
		assert.Equal(t, ON, s, id)
	}

	// Fixtures without a matching conflict stay dark.
	for _, id := range append(p.HotSpotFixtures("HS7"), "REL_B2_001", "THL_14R_L_001", "SB_C3_001") {
		s, ok := p.State(id)
		require.True(t, ok, id)
		assert.Equal(t, OFF, s, id)
	}

	sum := p.Summary()
	assert.Equal(t, 40, sum.Active)
	assert.Equal(t, 20, sum.ByType["ENTRANCE"].Flashing)
	assert.Equal(t, 40, sum.ByType["ENTRANCE"].Active)
	assert.Equal(t, 130, sum.ByType["ENTRANCE"].Total)
	assert.Equal(t, 0, sum.ByType["TAKEOFF_HOLD"].Active)
}

func TestApplyIsIdempotentAndStateless(t *testing.T) {
	p := newGimpoPanel(t)
	conflicts := []conflict.Conflict{hotSpotConflict("HS4", airport.HIGH)}

	Apply(conflicts, p)
	first := p.States()
	Apply(conflicts, p)
	assert.Equal(t, first, p.States())

	// A conflict that disappears leaves nothing behind.
	Apply([]conflict.Conflict{hotSpotConflict("HS5", airport.HIGH)}, p)
	for _, id := range p.HotSpotFixtures("HS4") {
		s, _ := p.State(id)
		assert.Equal(t, OFF, s)
	}
}

func TestApplyCriticalNeverOn(t *testing.T) {
	p := newGimpoPanel(t)

	for _, order := range [][]conflict.Conflict{
		{hotSpotConflict("HS7", airport.CRITICAL), hotSpotConflict("HS7", airport.CRITICAL)},
		{hotSpotConflict("HS3", airport.HIGH), hotSpotConflict("HS7", airport.CRITICAL)},
	} {
		Apply(order, p)
		for _, id := range p.HotSpotFixtures("HS7") {
			s, _ := p.State(id)
			assert.Equal(t, FLASH, s)
		}
	}
}

func TestPanelBasics(t *testing.T) {
	p := newGimpoPanel(t)
	assert.Equal(t, 301, p.Len())
	assert.Len(t, p.Fixtures(), 301)

	_, ok := p.State("nope")
	assert.False(t, ok)
	assert.False(t, p.set("nope", ON))

	c := p.Clone()
	c.set("REL_B1_001", FLASH)
	s, _ := p.State("REL_B1_001")
	assert.Equal(t, OFF, s)

	n := p.SetWhere(func(f airport.LightFixture) bool { return f.Type == airport.STOP_BAR }, ON)
	assert.Equal(t, 75, n)

	assert.Equal(t, "FLASH", FLASH.String())
	assert.Equal(t, FLASH, StateForRisk(airport.CRITICAL))
	assert.Equal(t, ON, StateForRisk(airport.MEDIUM))
}
