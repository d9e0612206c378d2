package types

import (
	"fmt"
	"math"
)

// AircraftID is a handle into the active fleet. IDs increase monotonically
// and are never reused within a simulation run.
type AircraftID uint32

func (id AircraftID) String() string {
	return fmt.Sprintf("AC%04d", uint32(id))
}

// Vec2 is a point or displacement in the airport's local frame, in meters.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{v1.X + v2.X, v1.Y + v2.Y}
}

func (v1 Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v1.X - v2.X, v1.Y - v2.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns the unit vector in the direction of v, or the zero
// vector if v has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

func (v1 Vec2) Dot(v2 Vec2) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToSegment returns the distance from p to the segment ab.
func (p Vec2) DistanceToSegment(a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.DistanceTo(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.DistanceTo(a.Add(ab.Scale(t)))
}

// HeadingVector returns the unit vector for a heading in degrees, measured
// counter-clockwise from the +x axis of the local frame.
func HeadingVector(headingDeg float64) Vec2 {
	rad := headingDeg * math.Pi / 180.0
	return Vec2{math.Cos(rad), math.Sin(rad)}
}
