package rwsl

import (
	"fmt"

	"rwsl-simulator/internal/game/airport"
)

type LightState int

const (
	OFF LightState = iota
	ON
	FLASH
)

var LightStateStringMap = map[LightState]string{
	OFF:   "OFF",
	ON:    "ON",
	FLASH: "FLASH",
}

func (s LightState) String() string {
	if str, ok := LightStateStringMap[s]; ok {
		return str
	}
	return fmt.Sprintf("LightState(%d)", int(s))
}

// Panel holds the state of every light fixture at an airport. The fixture
// set is fixed when the panel is created; only states change.
type Panel struct {
	fixtures  []airport.LightFixture
	index     map[string]int
	byHotSpot map[string][]int
	states    []LightState
}

func NewPanel(fixtures []airport.LightFixture) *Panel {
	p := &Panel{
		fixtures:  append([]airport.LightFixture(nil), fixtures...),
		index:     make(map[string]int, len(fixtures)),
		byHotSpot: make(map[string][]int),
		states:    make([]LightState, len(fixtures)),
	}
	for i, f := range p.fixtures {
		p.index[f.ID] = i
		if f.HotSpot != "" {
			p.byHotSpot[f.HotSpot] = append(p.byHotSpot[f.HotSpot], i)
		}
	}
	return p
}

// Clone returns a panel sharing the immutable fixture tables with p but
// with its own copy of the states.
func (p *Panel) Clone() *Panel {
	c := *p
	c.states = append([]LightState(nil), p.states...)
	return &c
}

func (p *Panel) Len() int {
	return len(p.fixtures)
}

func (p *Panel) Fixtures() []airport.LightFixture {
	return append([]airport.LightFixture(nil), p.fixtures...)
}

func (p *Panel) State(id string) (LightState, bool) {
	i, ok := p.index[id]
	if !ok {
		return OFF, false
	}
	return p.states[i], true
}

// States returns fixture states in the same order as Fixtures.
func (p *Panel) States() []LightState {
	return append([]LightState(nil), p.states...)
}

func (p *Panel) set(id string, s LightState) bool {
	i, ok := p.index[id]
	if ok {
		p.states[i] = s
	}
	return ok
}

// SetWhere sets every fixture for which match returns true and returns
// the number changed.
func (p *Panel) SetWhere(match func(airport.LightFixture) bool, s LightState) int {
	n := 0
	for i, f := range p.fixtures {
		if match(f) {
			p.states[i] = s
			n++
		}
	}
	return n
}

func (p *Panel) Reset() {
	clear(p.states)
}

// HotSpotFixtures returns the IDs of fixtures tied to hot spot id.
func (p *Panel) HotSpotFixtures(id string) []string {
	var ids []string
	for _, i := range p.byHotSpot[id] {
		ids = append(ids, p.fixtures[i].ID)
	}
	return ids
}

type TypeSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Flashing int `json:"flashing"`
}

type Summary struct {
	ByType map[string]TypeSummary `json:"by_type"`
	Active int                    `json:"active"`
	Total  int                    `json:"total"`
}

// Summary counts fixtures and non-OFF fixtures per type.
func (p *Panel) Summary() Summary {
	s := Summary{ByType: make(map[string]TypeSummary), Total: len(p.fixtures)}
	for i, f := range p.fixtures {
		ts := s.ByType[f.Type.String()]
		ts.Total++
		if p.states[i] != OFF {
			ts.Active++
			s.Active++
		}
		if p.states[i] == FLASH {
			ts.Flashing++
		}
		s.ByType[f.Type.String()] = ts
	}
	return s
}
