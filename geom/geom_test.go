// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_vector01(tst *testing.T) {
	a := NewVector3(1, 0, 0)
	b := NewVector3(0, 1, 0)
	c := a.Cross(b)
	require.InDelta(tst, 0.0, c.C[0], 1e-15)
	require.InDelta(tst, 0.0, c.C[1], 1e-15)
	require.InDelta(tst, 1.0, c.C[2], 1e-15)
	require.InDelta(tst, 1.0, a.Dot(a), 1e-15)
}

func Test_vector02_reflect(tst *testing.T) {
	v := NewVector3(1, -1, 0)
	n := NewVector3(0, 1, 0)
	r := v.Reflect(n)
	require.True(tst, r.ApproxEqual(NewVector3(1, 1, 0), 1e-12))
}

func Test_vector03_normalise_zero(tst *testing.T) {
	z := Zero3()
	require.True(tst, z.Normalise().ApproxEqual(z, 1e-15))
}

func Test_triangle01_hit(tst *testing.T) {
	tri := Triangle{
		A: NewPoint3(0, 0, 0),
		B: NewPoint3(1, 0, 0),
		C: NewPoint3(0, 1, 0),
	}
	hit := tri.IntersectRay(NewPoint3(0.25, 0.25, 1), NewVector3(0, 0, -1))
	require.True(tst, hit.Hit)
	require.InDelta(tst, 1.0, hit.T, 1e-12)
	require.False(tst, hit.OnEdge)
}

func Test_triangle02_miss(tst *testing.T) {
	tri := Triangle{
		A: NewPoint3(0, 0, 0),
		B: NewPoint3(1, 0, 0),
		C: NewPoint3(0, 1, 0),
	}
	hit := tri.IntersectRay(NewPoint3(5, 5, 1), NewVector3(0, 0, -1))
	require.False(tst, hit.Hit)
}

func Test_triangle03_edge(tst *testing.T) {
	tri := Triangle{
		A: NewPoint3(0, 0, 0),
		B: NewPoint3(1, 0, 0),
		C: NewPoint3(0, 1, 0),
	}
	hit := tri.IntersectRay(NewPoint3(0.5, 0, 1), NewVector3(0, 0, -1))
	require.True(tst, hit.Hit)
	require.True(tst, hit.OnEdge)
}

func Test_fantriangulate01_quad(tst *testing.T) {
	verts := []Point3{
		NewPoint3(0, 0, 0), NewPoint3(1, 0, 0),
		NewPoint3(1, 1, 0), NewPoint3(0, 1, 0),
	}
	tris := FanTriangulate(verts)
	require.Len(tst, tris, 2)
	require.Equal(tst, verts[0], tris[0].A)
	require.Equal(tst, verts[0], tris[1].A)
}

func Test_fantriangulate02_tri(tst *testing.T) {
	verts := []Point3{
		NewPoint3(0, 0, 0), NewPoint3(1, 0, 0), NewPoint3(0, 1, 0),
	}
	tris := FanTriangulate(verts)
	require.Len(tst, tris, 1)
}

func Test_longestedge01(tst *testing.T) {
	verts := []Point3{
		NewPoint3(0, 0, 0), NewPoint3(3, 0, 0), NewPoint3(0, 4, 0),
	}
	require.InDelta(tst, 5.0, LongestEdge(verts), 1e-12)
}
