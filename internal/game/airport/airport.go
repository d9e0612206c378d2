package airport

import (
	"errors"
	"fmt"
	"strings"

	"rwsl-simulator/pkg/types"
)

var (
	ErrEmptyTable      = errors.New("empty airport table")
	ErrUnknownHotSpot  = errors.New("unknown hot spot")
	ErrUnknownRunway   = errors.New("unknown runway")
	ErrBadInstallation = errors.New("invalid fixture installation")
)

type RiskTier int

const (
	MEDIUM RiskTier = iota
	HIGH
	CRITICAL
)

var RiskTierStringMap = map[RiskTier]string{
	MEDIUM:   "MEDIUM",
	HIGH:     "HIGH",
	CRITICAL: "CRITICAL",
}

func (r RiskTier) String() string {
	if s, ok := RiskTierStringMap[r]; ok {
		return s
	}
	return fmt.Sprintf("RiskTier(%d)", int(r))
}

// Bounds is the modeled airport envelope in the local frame. Aircraft
// outside of it are retired.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b Bounds) Contains(p types.Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

type Threshold struct {
	ID        string // runway end, e.g. "14R"
	Lat       float64
	Lon       float64
	Elevation float64
	Position  types.Vec2
	// THLPairs is the number of left/right takeoff-hold light pairs
	// installed outward from this threshold.
	THLPairs int
}

type Runway struct {
	Designation string // "14R/32L"
	Low, High   Threshold
	Length      float64
	Width       float64
	Surface     string
	// TakeoffBand is the lateral distance from the centerline within
	// which an aircraft is considered to be rolling on the runway.
	TakeoffBand float64
}

// Axis returns the unit vector from the low threshold toward the high one.
func (r *Runway) Axis() types.Vec2 {
	return r.High.Position.Sub(r.Low.Position).Normalized()
}

// LateralDistance is the distance from p to the runway's extended
// centerline.
func (r *Runway) LateralDistance(p types.Vec2) float64 {
	n := r.Axis().Perp()
	d := p.Sub(r.Low.Position).Dot(n)
	if d < 0 {
		return -d
	}
	return d
}

// Contains reports whether p lies on the runway surface.
func (r *Runway) Contains(p types.Vec2) bool {
	along := p.Sub(r.Low.Position).Dot(r.Axis())
	return along >= 0 && along <= r.Length && r.LateralDistance(p) <= r.Width/2
}

type TaxiwayKind string

const (
	ParallelTaxiway   TaxiwayKind = "parallel"
	ConnectingTaxiway TaxiwayKind = "connecting"
	RapidExitTaxiway  TaxiwayKind = "rapid_exit"
)

type Taxiway struct {
	Designation string
	Kind        TaxiwayKind
	Waypoints   []types.Vec2
	Width       float64
	CodeLetter  string // largest aircraft code the taxiway accepts
	// SpeedCap, if non-zero, is the congestion-zone cap in m/s applied to
	// aircraft within CapBand meters of the centerline.
	SpeedCap float64
	CapBand  float64
}

// DistanceTo returns the distance from p to the taxiway centerline.
func (t *Taxiway) DistanceTo(p types.Vec2) float64 {
	switch len(t.Waypoints) {
	case 0:
		return 0
	case 1:
		return p.DistanceTo(t.Waypoints[0])
	}
	d := p.DistanceToSegment(t.Waypoints[0], t.Waypoints[1])
	for i := 1; i < len(t.Waypoints)-1; i++ {
		if di := p.DistanceToSegment(t.Waypoints[i], t.Waypoints[i+1]); di < d {
			d = di
		}
	}
	return d
}

func (t *Taxiway) Contains(p types.Vec2) bool {
	return t.DistanceTo(p) <= t.Width/2
}

type HotSpot struct {
	ID          string
	Location    types.Vec2
	Risk        RiskTier
	Kind        string
	Description string
	Taxiways    []string
}

// Airport is the static surface model. It is never modified after New
// returns, so it may be shared freely between goroutines.
type Airport struct {
	ICAO string
	IATA string
	Name string
	ARP  GeoRef

	bounds   Bounds
	runways  []Runway
	taxiways []Taxiway
	hotSpots []HotSpot
	fixtures []LightFixture
}

// Definition is the construction table for an Airport.
type Definition struct {
	ICAO, IATA, Name string
	ARP              GeoRef
	Bounds           Bounds
	Runways          []Runway
	Taxiways         []Taxiway
	HotSpots         []HotSpot
	Entrances        []Installation
	StopBars         []Installation
}

func New(def Definition) (*Airport, error) {
	if len(def.Runways) == 0 {
		return nil, fmt.Errorf("runways: %w", ErrEmptyTable)
	}
	if len(def.Taxiways) == 0 {
		return nil, fmt.Errorf("taxiways: %w", ErrEmptyTable)
	}
	if len(def.HotSpots) == 0 {
		return nil, fmt.Errorf("hot spots: %w", ErrEmptyTable)
	}
	if def.Bounds.MinX >= def.Bounds.MaxX || def.Bounds.MinY >= def.Bounds.MaxY {
		return nil, fmt.Errorf("%s: degenerate bounds %+v", def.ICAO, def.Bounds)
	}

	ap := &Airport{
		ICAO:     def.ICAO,
		IATA:     def.IATA,
		Name:     def.Name,
		ARP:      def.ARP,
		bounds:   def.Bounds,
		runways:  append([]Runway(nil), def.Runways...),
		taxiways: append([]Taxiway(nil), def.Taxiways...),
		hotSpots: append([]HotSpot(nil), def.HotSpots...),
	}

	fixtures, err := ap.generateFixtures(def.Entrances, def.StopBars)
	if err != nil {
		return nil, err
	}
	ap.fixtures = fixtures
	return ap, nil
}

// Runway looks a runway up either by its full designation ("14R/32L") or
// by one of its ends ("32L").
func (ap *Airport) Runway(designation string) (Runway, bool) {
	designation = strings.ToUpper(designation)
	for _, rwy := range ap.runways {
		if rwy.Designation == designation || rwy.Low.ID == designation || rwy.High.ID == designation {
			return rwy, true
		}
	}
	return Runway{}, false
}

func (ap *Airport) Runways() []Runway {
	return append([]Runway(nil), ap.runways...)
}

func (ap *Airport) Taxiway(designation string) (Taxiway, bool) {
	designation = strings.ToUpper(designation)
	for _, twy := range ap.taxiways {
		if twy.Designation == designation {
			return twy, true
		}
	}
	return Taxiway{}, false
}

func (ap *Airport) Taxiways() []Taxiway {
	return append([]Taxiway(nil), ap.taxiways...)
}

// HotSpots returns the hot spots in table order.
func (ap *Airport) HotSpots() []HotSpot {
	return append([]HotSpot(nil), ap.hotSpots...)
}

func (ap *Airport) HotSpot(id string) (HotSpot, bool) {
	for _, hs := range ap.hotSpots {
		if hs.ID == id {
			return hs, true
		}
	}
	return HotSpot{}, false
}

// LightFixtures returns the fixtures of the given types, or all of them if
// no type is given. Order is stable across calls.
func (ap *Airport) LightFixtures(filter ...FixtureType) []LightFixture {
	if len(filter) == 0 {
		return append([]LightFixture(nil), ap.fixtures...)
	}
	var out []LightFixture
	for _, f := range ap.fixtures {
		for _, t := range filter {
			if f.Type == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// OnSegment reports whether p lies on the named taxiway or runway. Unknown
// segment names (gates, aprons) never contain anything.
func (ap *Airport) OnSegment(name string, p types.Vec2) bool {
	if twy, ok := ap.Taxiway(name); ok {
		return twy.Contains(p)
	}
	if rwy, ok := ap.Runway(name); ok {
		return rwy.Contains(p)
	}
	return false
}

func (ap *Airport) Bounds() Bounds {
	return ap.bounds
}

// ToLocal converts geodetic coordinates to the airport's local frame.
func (ap *Airport) ToLocal(lat, lon float64) (x, y float64) {
	return ap.ARP.ToLocal(lat, lon)
}

func (ap *Airport) ToGeo(x, y float64) (lat, lon float64) {
	return ap.ARP.ToGeo(x, y)
}
