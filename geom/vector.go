// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the Euclidean primitives (points, vectors,
// triangle intersection) the mesh and particle-transport packages consume.
package geom

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Point3 is a point in 3D space.
type Point3 struct {
	X [3]float64
}

// NewPoint3 builds a point from its three coordinates.
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: [3]float64{x, y, z}}
}

// Sub returns the vector from b to o (o - b).
func (o Point3) Sub(b Point3) Vector3 {
	return Vector3{C: la.VecAdd(1, o.X[:], -1, b.X[:])}
}

// Add advances a point by a vector.
func (o Point3) Add(v Vector3) Point3 {
	var p Point3
	copy(p.X[:], la.VecAdd(1, o.X[:], 1, v.C))
	return p
}

// Dist returns the Euclidean distance between two points.
func (o Point3) Dist(b Point3) float64 {
	return o.Sub(b).Length()
}

// Vector3 is a displacement/direction in 3D space.
type Vector3 struct {
	C []float64 // length-3
}

// NewVector3 builds a vector from its three components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{C: []float64{x, y, z}}
}

// Zero3 is the zero vector.
func Zero3() Vector3 { return NewVector3(0, 0, 0) }

// Dot returns the dot product.
func (o Vector3) Dot(b Vector3) float64 {
	d := 0.0
	for i := 0; i < 3; i++ {
		d += o.C[i] * b.C[i]
	}
	return d
}

// Cross returns the cross product o × b.
func (o Vector3) Cross(b Vector3) Vector3 {
	return NewVector3(
		o.C[1]*b.C[2]-o.C[2]*b.C[1],
		o.C[2]*b.C[0]-o.C[0]*b.C[2],
		o.C[0]*b.C[1]-o.C[1]*b.C[0],
	)
}

// Length returns the Euclidean norm, grounded on gosl/la's VecNorm.
func (o Vector3) Length() float64 {
	return la.VecNorm(o.C)
}

// Scale multiplies every component by s.
func (o Vector3) Scale(s float64) Vector3 {
	c := la.VecClone(o.C)
	la.VecScale(c, 0, s, o.C)
	return Vector3{C: c}
}

// Add returns o + b.
func (o Vector3) Add(b Vector3) Vector3 {
	return Vector3{C: la.VecAdd(1, o.C, 1, b.C)}
}

// Sub returns o - b.
func (o Vector3) Sub(b Vector3) Vector3 {
	return Vector3{C: la.VecAdd(1, o.C, -1, b.C)}
}

// Normalise returns a unit-length copy of o; the zero vector maps to itself,
// mirroring EuclideanVector::normalise's guard against division by zero.
func (o Vector3) Normalise() Vector3 {
	l := o.Length()
	if l == 0 {
		return o
	}
	return o.Scale(1.0 / l)
}

// Reflect reflects o across a plane whose outward unit normal is n:
// v' = v - 2(v·n)n.
func (o Vector3) Reflect(n Vector3) Vector3 {
	d := 2 * o.Dot(n)
	return o.Sub(n.Scale(d))
}

// ApproxEqual reports whether the two vectors are equal within tol.
func (o Vector3) ApproxEqual(b Vector3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(o.C[i]-b.C[i]) > tol {
			return false
		}
	}
	return true
}

// AsPoint treats the vector as a position relative to the origin.
func (o Vector3) AsPoint() Point3 {
	return NewPoint3(o.C[0], o.C[1], o.C[2])
}
