// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package genmesh implements the structured-grid mesh source of spec.md
// §6: a regular brick of nx*ny*nz cells, materialised in full when the
// Brick is constructed, using original_source/SparseMatrixSourceMeshGen.cpp's
// (i,j,k) index arithmetic and gofem's inp.ReadMsh cell/vertex numbering
// conventions.
package genmesh

import (
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/internal/netio"
)

// regionWall is the single region every brick ships with: every boundary
// face belongs to it.
const (
	regionWall = 0
)

// cellRec/faceRec/boundaryRec/vertRec are the plain-slice backing store for
// Brick; Source methods index into them directly.
type cellRec struct {
	centroid geom.Point3
	volume   float64
}

type faceRec struct {
	verts      []int
	isBoundary bool
	cell1      int
	cell2      int // valid iff !isBoundary
	boundary   int // valid iff isBoundary
	area       float64
	lambda     float64
	normal     geom.Vector3
	centroid   geom.Point3
}

type boundaryRec struct {
	faceLabel int
	verts     []int
	region    int
}

// Brick is a mesh.Source that materialises a regular nx*ny*nz grid of unit
// (or dx*dy*dz-sized) cells, partitioned into contiguous slabs along x.
type Brick struct {
	nx, ny, nz int
	dx, dy, dz float64

	cells      []cellRec
	faces      []faceRec
	boundaries []boundaryRec
	verts      []geom.Point3
	cellFaces  [][]int // lazily built by indexCellFaces
}

// NewBrick builds a structured brick of nx*ny*nz cells of size dx*dy*dz,
// to be partitioned evenly into netio.Size() contiguous x-slabs (spec.md
// §6: "a structured-grid generator ... parameterised by nx, ny, nz").
func NewBrick(nx, ny, nz int, dx, dy, dz float64) *Brick {
	b := &Brick{nx: nx, ny: ny, nz: nz, dx: dx, dy: dy, dz: dz}
	b.build()
	return b
}

func (b *Brick) cellIdx(i, j, k int) int { return i + j*b.nx + k*b.nx*b.ny }
func (b *Brick) vertIdx(i, j, k int) int {
	return i + j*(b.nx+1) + k*(b.nx+1)*(b.ny+1)
}

func (b *Brick) build() {
	b.cells = make([]cellRec, b.nx*b.ny*b.nz)
	for k := 0; k < b.nz; k++ {
		for j := 0; j < b.ny; j++ {
			for i := 0; i < b.nx; i++ {
				b.cells[b.cellIdx(i, j, k)] = cellRec{
					centroid: geom.NewPoint3((float64(i)+0.5)*b.dx, (float64(j)+0.5)*b.dy, (float64(k)+0.5)*b.dz),
					volume:   b.dx * b.dy * b.dz,
				}
			}
		}
	}

	b.verts = make([]geom.Point3, (b.nx+1)*(b.ny+1)*(b.nz+1))
	for k := 0; k <= b.nz; k++ {
		for j := 0; j <= b.ny; j++ {
			for i := 0; i <= b.nx; i++ {
				b.verts[b.vertIdx(i, j, k)] = geom.NewPoint3(float64(i)*b.dx, float64(j)*b.dy, float64(k)*b.dz)
			}
		}
	}

	b.addAxisPlanes(0) // x
	b.addAxisPlanes(1) // y
	b.addAxisPlanes(2) // z
}

// addAxisPlanes generates every face plane perpendicular to the given axis
// (0=x, 1=y, 2=z): interior planes link two cells, the two end planes are
// boundary faces.
func (b *Brick) addAxisPlanes(axis int) {
	dims := [3]int{b.nx, b.ny, b.nz}
	n := dims[axis]
	other1, other2 := (axis+1)%3, (axis+2)%3
	// keep a stable (u,v) sweep order: the two axes other than `axis`, in
	// ascending index order, so faces are generated low-to-high.
	if other1 > other2 {
		other1, other2 = other2, other1
	}

	normalOut := [3]geom.Vector3{
		geom.NewVector3(1, 0, 0),
		geom.NewVector3(0, 1, 0),
		geom.NewVector3(0, 0, 1),
	}

	idx := func(axisPos, u, v int) [3]int {
		var c [3]int
		c[axis] = axisPos
		c[other1] = u
		c[other2] = v
		return c
	}

	for plane := 0; plane <= n; plane++ {
		for v := 0; v < dims[other2]; v++ {
			for u := 0; u < dims[other1]; u++ {
				lowCoord := idx(plane-1, u, v)
				highCoord := idx(plane, u, v)
				verts := b.planeVerts(axis, plane, u, v)
				centroid := avgPoints(verts)
				faceArea := planeArea(axis, b)

				f := faceRec{
					verts:    vertLabels(verts, b, axis, plane, u, v),
					centroid: centroid,
					area:     faceArea,
					lambda:   0.5,
				}

				switch {
				case plane == 0:
					f.isBoundary = true
					f.cell1 = b.cellIdx(highCoord[0], highCoord[1], highCoord[2])
					f.normal = normalOut[axis].Scale(-1)
				case plane == n:
					f.isBoundary = true
					f.cell1 = b.cellIdx(lowCoord[0], lowCoord[1], lowCoord[2])
					f.normal = normalOut[axis]
				default:
					f.isBoundary = false
					f.cell1 = b.cellIdx(lowCoord[0], lowCoord[1], lowCoord[2])
					f.cell2 = b.cellIdx(highCoord[0], highCoord[1], highCoord[2])
					f.normal = normalOut[axis]
				}

				if f.isBoundary {
					f.boundary = len(b.boundaries)
					b.boundaries = append(b.boundaries, boundaryRec{
						verts:  f.verts,
						region: regionWall,
					})
				}
				b.faces = append(b.faces, f)
				if f.isBoundary {
					b.boundaries[f.boundary].faceLabel = len(b.faces) - 1
				}
			}
		}
	}
}

func planeArea(axis int, b *Brick) float64 {
	switch axis {
	case 0:
		return b.dy * b.dz
	case 1:
		return b.dx * b.dz
	default:
		return b.dx * b.dy
	}
}

// planeVerts returns the 4 corner points of the unit face at the given
// plane index along axis, for grid cell (u,v) in the other two axes, in a
// consistent winding order.
func (b *Brick) planeVerts(axis, plane, u, v int) []geom.Point3 {
	labels := vertLabels(nil, b, axis, plane, u, v)
	out := make([]geom.Point3, len(labels))
	for i, l := range labels {
		out[i] = b.verts[l]
	}
	return out
}

func vertLabels(_ []geom.Point3, b *Brick, axis, plane, u, v int) []int {
	coord := func(a0, a1 int) [3]int {
		var c [3]int
		c[axis] = plane
		o1, o2 := (axis+1)%3, (axis+2)%3
		if o1 > o2 {
			o1, o2 = o2, o1
		}
		c[o1] = a0
		c[o2] = a1
		return c
	}
	corners := [][2]int{{u, v}, {u + 1, v}, {u + 1, v + 1}, {u, v + 1}}
	out := make([]int, 4)
	for i, c := range corners {
		p := coord(c[0], c[1])
		out[i] = b.vertIdx(p[0], p[1], p[2])
	}
	return out
}

func avgPoints(pts []geom.Point3) geom.Point3 {
	var sum [3]float64
	for _, p := range pts {
		for i := 0; i < 3; i++ {
			sum[i] += p.X[i]
		}
	}
	n := float64(len(pts))
	return geom.NewPoint3(sum[0]/n, sum[1]/n, sum[2]/n)
}
