// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/stretchr/testify/require"
)

// buildCube builds a single unit cube [0,1]^3 with all six faces as wall
// boundaries, directly through the construction contract (spec.md §4.2),
// the same shape genmesh.NewBrick(1,1,1,...) would produce.
func buildCube(tst *testing.T) *Mesh {
	m := New(netio.New())
	require.NoError(tst, m.AddCell(0, true, geom.NewPoint3(0.5, 0.5, 0.5), 1.0))
	verts := []geom.Point3{
		geom.NewPoint3(0, 0, 0), geom.NewPoint3(1, 0, 0),
		geom.NewPoint3(1, 1, 0), geom.NewPoint3(0, 1, 0),
		geom.NewPoint3(0, 0, 1), geom.NewPoint3(1, 0, 1),
		geom.NewPoint3(1, 1, 1), geom.NewPoint3(0, 1, 1),
	}
	for i, v := range verts {
		require.NoError(tst, m.AddVertex(i, v))
	}
	require.NoError(tst, m.AddRegion(0, Region{Type: "wall", Name: "cube-wall"}))

	faces := []struct {
		label    int
		verts    []int
		normal   geom.Vector3
		centroid geom.Point3
	}{
		{0, []int{0, 3, 2, 1}, geom.NewVector3(0, 0, -1), geom.NewPoint3(0.5, 0.5, 0)},    // -z
		{1, []int{4, 5, 6, 7}, geom.NewVector3(0, 0, 1), geom.NewPoint3(0.5, 0.5, 1)},     // +z
		{2, []int{0, 1, 5, 4}, geom.NewVector3(0, -1, 0), geom.NewPoint3(0.5, 0, 0.5)},    // -y
		{3, []int{3, 7, 6, 2}, geom.NewVector3(0, 1, 0), geom.NewPoint3(0.5, 1, 0.5)},     // +y
		{4, []int{0, 4, 7, 3}, geom.NewVector3(-1, 0, 0), geom.NewPoint3(0, 0.5, 0.5)},    // -x
		{5, []int{1, 2, 6, 5}, geom.NewVector3(1, 0, 0), geom.NewPoint3(1, 0.5, 0.5)},     // +x
	}
	for _, f := range faces {
		require.NoError(tst, m.AddBoundary(f.label, 0, f.verts))
		require.NoError(tst, m.AddFace(f.label, 0, f.label, true, f.verts, FaceGeometry{
			Normal: f.normal, Centroid: f.centroid, Area: 1.0, Lambda: 1.0,
		}))
	}
	require.NoError(tst, m.Finalize())
	return m
}

func Test_mesh01_cube_invariants(tst *testing.T) {
	m := buildCube(tst)
	require.Equal(tst, 1, m.NumCells())
	for i := 0; i < 6; i++ {
		f, err := m.Face(i)
		require.NoError(tst, err)
		require.NotEqual(tst, Sentinel, f.Cell1)
		if f.BoundaryID == Sentinel {
			require.NotEqual(tst, Sentinel, f.Cell2)
		} else {
			require.Equal(tst, Sentinel, f.Cell2)
		}
	}
	for i := 0; i < 6; i++ {
		b, err := m.Boundary(i)
		require.NoError(tst, err)
		require.NotEqual(tst, Sentinel, b.FaceID)
	}
}

func Test_mesh02_finalize_twice(tst *testing.T) {
	m := buildCube(tst)
	err := m.Finalize()
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.AlreadyFinalised))
}

func Test_mesh03_add_after_finalize(tst *testing.T) {
	m := buildCube(tst)
	err := m.AddCell(99, true, geom.NewPoint3(9, 9, 9), 1.0)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.AlreadyFinalised))
}

func Test_mesh04_unmapped_boundary(tst *testing.T) {
	m := New(netio.New())
	require.NoError(tst, m.AddCell(0, true, geom.NewPoint3(0.5, 0.5, 0.5), 1.0))
	require.NoError(tst, m.AddVertex(0, geom.NewPoint3(0, 0, 0)))
	require.NoError(tst, m.AddVertex(1, geom.NewPoint3(1, 0, 0)))
	require.NoError(tst, m.AddVertex(2, geom.NewPoint3(1, 1, 0)))
	require.NoError(tst, m.AddRegion(0, Region{Type: "wall"}))
	require.NoError(tst, m.AddBoundary(0, 0, []int{0, 1, 2}))
	err := m.Finalize()
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.UnmappedBoundaryFace))
}

func Test_mesh05_describe_counts(tst *testing.T) {
	m := buildCube(tst)
	s := m.DescribeCounts()
	require.Contains(tst, s, "owned=1")
	require.Contains(tst, s, "faces=6")
}

func Test_mesh06_region_of(tst *testing.T) {
	m := buildCube(tst)
	r, err := m.RegionOf(0)
	require.NoError(tst, err)
	require.Equal(tst, "wall", r.Type)
}
