// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package genmesh

import (
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/cpmech/cuptrace/mesh"
)

var _ mesh.Source = (*Brick)(nil)

func (b *Brick) NumCells() int      { return len(b.cells) }
func (b *Brick) NumFaces() int      { return len(b.faces) }
func (b *Brick) NumBoundaries() int { return len(b.boundaries) }
func (b *Brick) NumRegions() int    { return 1 }
func (b *Brick) NumVerts() int      { return len(b.verts) }

func (b *Brick) CellLabel(i int) int     { return i }
func (b *Brick) FaceLabel(i int) int     { return i }
func (b *Brick) VertLabel(i int) int     { return i }
func (b *Brick) BoundaryLabel(i int) int { return i }
func (b *Brick) RegionLabel(i int) int   { return i }

func (b *Brick) CellCentroid(cellLabel int) geom.Point3 { return b.cells[cellLabel].centroid }
func (b *Brick) CellVolume(cellLabel int) float64        { return b.cells[cellLabel].volume }

func (b *Brick) CellFaceCount(cellLabel int) int { return len(b.cellFaceIdx(cellLabel)) }
func (b *Brick) CellFaceLabels(cellLabel int) []int { return b.cellFaceIdx(cellLabel) }

// cellFaceIdx returns every face touching cellLabel. The per-cell face
// lists are built once, on first use, by indexCellFaces and reused after.
func (b *Brick) cellFaceIdx(cellLabel int) []int {
	if b.cellFaces == nil {
		b.indexCellFaces()
	}
	return b.cellFaces[cellLabel]
}

func (b *Brick) indexCellFaces() {
	b.cellFaces = make([][]int, len(b.cells))
	for fi, f := range b.faces {
		b.cellFaces[f.cell1] = append(b.cellFaces[f.cell1], fi)
		if !f.isBoundary {
			b.cellFaces[f.cell2] = append(b.cellFaces[f.cell2], fi)
		}
	}
}

func (b *Brick) FaceIsBoundary(faceLabel int) bool        { return b.faces[faceLabel].isBoundary }
func (b *Brick) FaceVertLabels(faceLabel int) []int       { return b.faces[faceLabel].verts }
func (b *Brick) FaceCell1Label(faceLabel int) int         { return b.faces[faceLabel].cell1 }
func (b *Brick) FaceCell2Label(faceLabel int) int         { return b.faces[faceLabel].cell2 }
func (b *Brick) FaceBoundaryLabel(faceLabel int) int      { return b.faces[faceLabel].boundary }
func (b *Brick) FaceArea(faceLabel int) float64           { return b.faces[faceLabel].area }
func (b *Brick) FaceLambda(faceLabel int) float64         { return b.faces[faceLabel].lambda }
func (b *Brick) FaceNormal(faceLabel int) geom.Vector3    { return b.faces[faceLabel].normal }
func (b *Brick) FaceCentroid(faceLabel int) geom.Point3   { return b.faces[faceLabel].centroid }

func (b *Brick) BoundaryFaceLabel(boundaryLabel int) int    { return b.boundaries[boundaryLabel].faceLabel }
func (b *Brick) BoundaryVertLabels(boundaryLabel int) []int { return b.boundaries[boundaryLabel].verts }
func (b *Brick) BoundaryRegionLabel(boundaryLabel int) int  { return b.boundaries[boundaryLabel].region }
func (b *Brick) BoundaryWallDist(boundaryLabel int) float64 { return 0 }

func (b *Brick) RegionData(regionLabel int) mesh.Region {
	return mesh.Region{Type: "wall", Name: "brick-wall"}
}

func (b *Brick) VertPos(vertLabel int) geom.Point3 { return b.verts[vertLabel] }

// PartitionOf splits the brick into netio.Size() contiguous slabs along x:
// rank r owns the cells whose i-index falls in [r*nx/nranks, (r+1)*nx/nranks).
func (b *Brick) PartitionOf(cellLabel int) int {
	nranks := netio.Size()
	i := cellLabel % b.nx
	// evenly distribute any remainder to the lowest-numbered ranks.
	base := b.nx / nranks
	rem := b.nx % nranks
	// cells [0, (base+1)*rem) belong to the first rem ranks (one extra column
	// each), the rest are split evenly among the remaining ranks.
	boundary := (base + 1) * rem
	if i < boundary {
		return i / (base + 1)
	}
	return rem + (i-boundary)/base
}
