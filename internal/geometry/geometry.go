// Package geometry holds the 3D math used when snapshotting entity positions.
package geometry

import "math"

// Point3 is a position in world coordinates.
type Point3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sub returns p - q component-wise.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Distance returns the Euclidean distance between a and b.
//
// World coordinates stay within a few tens of millions, so the squared
// components never approach float64 overflow and no scaling is applied.
func Distance(a, b Point3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
