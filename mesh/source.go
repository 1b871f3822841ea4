// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/cuptrace/geom"

// Source is the abstract mesh input of spec.md §6: a pull interface the
// mesh builder calls once during construction. Two concrete sources are
// expected: a structured-grid generator (see package genmesh) and an HDF5
// file reader with a schema of group /cell, /face, /bnd, /vert — the
// latter is an external collaborator per spec.md §1 and is not implemented
// in this core.
type Source interface {
	NumCells() int
	NumFaces() int
	NumBoundaries() int
	NumRegions() int
	NumVerts() int

	CellLabel(i int) int
	FaceLabel(i int) int
	VertLabel(i int) int
	BoundaryLabel(i int) int
	RegionLabel(i int) int

	CellFaceCount(cellLabel int) int
	CellCentroid(cellLabel int) geom.Point3
	CellVolume(cellLabel int) float64
	CellFaceLabels(cellLabel int) []int

	FaceIsBoundary(faceLabel int) bool
	FaceVertLabels(faceLabel int) []int
	FaceCell1Label(faceLabel int) int
	FaceCell2Label(faceLabel int) int // valid only if !FaceIsBoundary
	FaceBoundaryLabel(faceLabel int) int // valid only if FaceIsBoundary
	FaceArea(faceLabel int) float64
	FaceLambda(faceLabel int) float64
	FaceNormal(faceLabel int) geom.Vector3
	FaceCentroid(faceLabel int) geom.Point3

	BoundaryFaceLabel(boundaryLabel int) int
	BoundaryVertLabels(boundaryLabel int) []int
	BoundaryRegionLabel(boundaryLabel int) int
	BoundaryWallDist(boundaryLabel int) float64

	// RegionData returns the full set of region coefficients (spec.md §3);
	// Label is overwritten by the caller and need not be set.
	RegionData(regionLabel int) Region

	VertPos(vertLabel int) geom.Point3

	// PartitionOf reports which rank owns cellLabel. Used by BuildPartition
	// to decide owned-vs-ghost-vs-skip for each rank.
	PartitionOf(cellLabel int) int
}
