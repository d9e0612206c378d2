package airport

import "math"

const (
	metersPerDegLonEquator = 111_320.0
	metersPerDegLat        = 110_540.0
)

// GeoRef is the airport reference point the local frame is derived from.
// Conversion is a small-angle equirectangular approximation, good to about
// a meter within 10 km of the reference point.
type GeoRef struct {
	Lat       float64
	Lon       float64
	Elevation float64
}

func (g GeoRef) metersPerDegLon() float64 {
	return metersPerDegLonEquator * math.Cos(g.Lat*math.Pi/180.0)
}

// ToLocal returns x (east) and y (north) in meters relative to g.
func (g GeoRef) ToLocal(lat, lon float64) (x, y float64) {
	x = (lon - g.Lon) * g.metersPerDegLon()
	y = (lat - g.Lat) * metersPerDegLat
	return
}

func (g GeoRef) ToGeo(x, y float64) (lat, lon float64) {
	lat = g.Lat + y/metersPerDegLat
	lon = g.Lon + x/g.metersPerDegLon()
	return
}
