package rwsl

import (
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/conflict"
)

// StateForRisk is the only state a hot-spot conflict of the given tier may
// drive its fixtures to.
func StateForRisk(r airport.RiskTier) LightState {
	if r == airport.CRITICAL {
		return FLASH
	}
	return ON
}

// Apply re-evaluates the panel from scratch: every fixture goes OFF, then
// each hot-spot conflict lights the fixtures tied to its hot spot. Nothing
// from a previous call survives, so oscillating conflicts flicker.
func Apply(conflicts []conflict.Conflict, p *Panel) {
	p.Reset()

	for _, c := range conflicts {
		if c.Kind != conflict.HOT_SPOT_PROXIMITY {
			continue
		}
		s := StateForRisk(c.Risk)
		for _, i := range p.byHotSpot[c.HotSpot] {
			// Result must not depend on conflict order.
			if s > p.states[i] {
				p.states[i] = s
			}
		}
	}
}
