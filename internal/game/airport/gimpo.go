package airport

import "rwsl-simulator/pkg/types"

// GimpoRKSS returns the surface model for Seoul/Gimpo International. Local
// positions are in the airport's schematic frame: x runs along the
// 14/32 runways from the 14 thresholds, y is positive toward 14L.
func GimpoRKSS() Definition {
	return Definition{
		ICAO: "RKSS",
		IATA: "GMP",
		Name: "Seoul/Gimpo International",
		ARP:  GeoRef{Lat: 37.5569444, Lon: 126.7975000, Elevation: 18},
		Bounds: Bounds{
			MinX: -500, MaxX: 4000,
			MinY: -1000, MaxY: 600,
		},

		Runways: []Runway{
			{
				Designation: "14R/32L",
				Low: Threshold{ID: "14R", Lat: 37.5683333, Lon: 126.7755556, Elevation: 10.5,
					Position: types.NewVec2(0, 0), THLPairs: 12},
				High: Threshold{ID: "32L", Lat: 37.5480556, Lon: 126.8011111, Elevation: 12.6,
					Position: types.NewVec2(3200, 0), THLPairs: 12},
				Length:      3200,
				Width:       60,
				Surface:     "Asphalt",
				TakeoffBand: 40,
			},
			{
				Designation: "14L/32R",
				Low: Threshold{ID: "14L", Lat: 37.5708333, Lon: 126.7783333, Elevation: 11.6,
					Position: types.NewVec2(0, 150), THLPairs: 12},
				High: Threshold{ID: "32R", Lat: 37.5477778, Lon: 126.8072222, Elevation: 12.8,
					Position: types.NewVec2(3600, 150), THLPairs: 12},
				Length:      3600,
				Width:       45,
				Surface:     "Asphalt/Concrete",
				TakeoffBand: 30,
			},
		},

		Taxiways: []Taxiway{
			{
				Designation: "P", Kind: ParallelTaxiway, Width: 30, CodeLetter: "F",
				Waypoints: []types.Vec2{{X: 150, Y: -120}, {X: 2850, Y: -120}},
				SpeedCap:  10, CapBand: 20,
			},
			{
				Designation: "G2", Kind: ParallelTaxiway, Width: 40, CodeLetter: "F",
				Waypoints: []types.Vec2{{X: 150, Y: 400}, {X: 150, Y: -120}},
			},
			{
				Designation: "A", Kind: ParallelTaxiway, Width: 35, CodeLetter: "E",
				Waypoints: []types.Vec2{{X: 3450, Y: -250}, {X: 3450, Y: 300}},
			},
			{
				Designation: "B1", Kind: ConnectingTaxiway, Width: 30, CodeLetter: "F",
				Waypoints: []types.Vec2{{X: 800, Y: 0}, {X: 800, Y: -120}},
			},
			{
				Designation: "B2", Kind: ConnectingTaxiway, Width: 35, CodeLetter: "F",
				Waypoints: []types.Vec2{{X: 1200, Y: 0}, {X: 1200, Y: -120}},
			},
			{
				Designation: "C1", Kind: RapidExitTaxiway, Width: 35, CodeLetter: "E",
				Waypoints: []types.Vec2{{X: 1950, Y: 0}, {X: 2090, Y: -120}},
			},
			{
				Designation: "E1", Kind: RapidExitTaxiway, Width: 35, CodeLetter: "E",
				Waypoints: []types.Vec2{{X: 1215, Y: 0}, {X: 1075, Y: -120}},
			},
		},

		HotSpots: []HotSpot{
			{ID: "HS1", Location: types.NewVec2(300, -60), Risk: HIGH, Kind: "runway_incursion_risk",
				Description: "Runway incursion risk, frequent aircraft encounters", Taxiways: []string{"G1"}},
			{ID: "HS2", Location: types.NewVec2(2400, -60), Risk: CRITICAL, Kind: "intersection_complex",
				Description: "Four-way taxiway intersection (C3, D2, P, R)", Taxiways: []string{"C3", "D2", "P", "R"}},
			{ID: "HS3", Location: types.NewVec2(800, -60), Risk: HIGH, Kind: "runway_incursion_risk",
				Description: "Runway incursion risk, frequent aircraft encounters", Taxiways: []string{"B1"}},
			{ID: "HS4", Location: types.NewVec2(1400, -60), Risk: HIGH, Kind: "runway_incursion_risk",
				Description: "Runway incursion risk", Taxiways: []string{"W1"}},
			{ID: "HS5", Location: types.NewVec2(1700, -60), Risk: HIGH, Kind: "runway_incursion_risk",
				Description: "Runway incursion risk", Taxiways: []string{"W2"}},
			{ID: "HS6", Location: types.NewVec2(150, 200), Risk: MEDIUM, Kind: "congestion_area",
				Description: "Congestion area, extra care for towed aircraft", Taxiways: []string{"G2"}},
			{ID: "HS7", Location: types.NewVec2(2800, -60), Risk: CRITICAL, Kind: "incursion_history",
				Description: "Site of previous runway incursions", Taxiways: []string{"D2"}},
		},

		Entrances: []Installation{
			{Taxiway: "B1", HotSpot: "HS3", Runway: "14R/32L", Base: types.NewVec2(800, -45), Count: 20, Spacing: 3},
			{Taxiway: "B2", Runway: "14R/32L", Base: types.NewVec2(1200, -45), Count: 20, Spacing: 3},
			{Taxiway: "W1", HotSpot: "HS4", Runway: "14R/32L", Base: types.NewVec2(1400, -45), Count: 15, Spacing: 3},
			{Taxiway: "W2", HotSpot: "HS5", Runway: "14R/32L", Base: types.NewVec2(1700, -45), Count: 15, Spacing: 3},
			{Taxiway: "C3", HotSpot: "HS2", Runway: "14R/32L", Base: types.NewVec2(2400, -45), Count: 20, Spacing: 3},
			{Taxiway: "D1", Runway: "14R/32L", Base: types.NewVec2(2600, -45), Count: 20, Spacing: 3},
			{Taxiway: "D2", HotSpot: "HS7", Runway: "14R/32L", Base: types.NewVec2(2800, -45), Count: 20, Spacing: 3},
		},

		// Stop bars span y = -35..35 across the runway entrance.
		StopBars: []Installation{
			{Taxiway: "B1", Runway: "14R/32L", Base: types.NewVec2(800, -35), Count: 15, Spacing: 5},
			{Taxiway: "B2", Runway: "14R/32L", Base: types.NewVec2(1200, -35), Count: 15, Spacing: 5},
			{Taxiway: "C3", Runway: "14R/32L", Base: types.NewVec2(2400, -35), Count: 15, Spacing: 5},
			{Taxiway: "D1", Runway: "14R/32L", Base: types.NewVec2(2600, -35), Count: 15, Spacing: 5},
			{Taxiway: "D2", Runway: "14R/32L", Base: types.NewVec2(2800, -35), Count: 15, Spacing: 5},
		},
	}
}
