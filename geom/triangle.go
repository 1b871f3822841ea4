// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// eps is the tolerance used for the ray/triangle barycentric test.
const eps = 1.0e-12

// Triangle is a flat triangle given by three vertices, used as a fan slice
// of a (possibly quadrilateral) mesh face during ray intersection tests.
type Triangle struct {
	A, B, C Point3
}

// Normal returns the (non-normalised) triangle normal (B-A) × (C-A).
func (t Triangle) Normal() Vector3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// RayHit describes the outcome of intersecting a ray with a triangle.
type RayHit struct {
	Hit      bool    // true if the ray crosses the triangle's plane within its bounds
	T        float64 // distance along the ray direction to the intersection point
	OnEdge   bool    // true if the hit lies exactly on a shared triangle edge (u, v, or w ~ 0)
	Point    Point3
}

// IntersectRay performs a Möller–Trumbore ray/triangle intersection test.
// origin+dir*t is the candidate hit point; only t >= 0 (forward along the
// ray) is reported as a hit. The barycentric coordinates u, v (and their
// complement w = 1-u-v) classify edge-only contact: if any of u, v, w is
// within eps of zero, the ray grazes a triangle edge rather than striking
// its interior, and the caller (§4.4.1 of the transport engine) treats that
// case as tolerated ambiguity rather than a fatal double-intersection.
func (t Triangle) IntersectRay(origin Point3, dir Vector3) RayHit {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < eps {
		return RayHit{} // ray parallel to triangle plane
	}
	invDet := 1.0 / det
	tvec := origin.Sub(t.A)
	u := tvec.Dot(pvec) * invDet
	if u < -eps || u > 1+eps {
		return RayHit{}
	}
	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < -eps || u+v > 1+eps {
		return RayHit{}
	}
	dist := edge2.Dot(qvec) * invDet
	if dist < 0 {
		return RayHit{} // plane crossed behind the origin
	}
	w := 1 - u - v
	onEdge := math.Abs(u) < eps || math.Abs(v) < eps || math.Abs(w) < eps
	return RayHit{
		Hit:    true,
		T:      dist,
		OnEdge: onEdge,
		Point:  origin.Add(dir.Scale(dist)),
	}
}

// FanTriangulate triangulates a planar polygon face (3 or 4 vertices, as
// every mesh face is per spec.md §3) by fanning from vertex 0, pairing
// (vj, vj+1) for j = 1..n-2. For a triangle (n=3) this yields the single
// triangle (v0,v1,v2); for a quadrilateral (n=4) it yields (v0,v1,v2) and
// (v0,v2,v3).
func FanTriangulate(verts []Point3) []Triangle {
	n := len(verts)
	tris := make([]Triangle, 0, n-2)
	for j := 1; j <= n-2; j++ {
		tris = append(tris, Triangle{A: verts[0], B: verts[j], C: verts[j+1]})
	}
	return tris
}

// LongestEdge returns the largest pairwise distance between the given
// vertices (the cell diameter used as a geometry sanity bound in §4.4.1).
func LongestEdge(verts []Point3) float64 {
	longest := 0.0
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if d := verts[i].Dist(verts[j]); d > longest {
				longest = d
			}
		}
	}
	return longest
}
