// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/cuptrace/geom"

// NopSource is an empty Source, useful for tests that only need a Mesh to
// exist (e.g. exercising Graph/exchange wiring) without any real geometry.
type NopSource struct{}

func (NopSource) NumCells() int      { return 0 }
func (NopSource) NumFaces() int      { return 0 }
func (NopSource) NumBoundaries() int { return 0 }
func (NopSource) NumRegions() int    { return 0 }
func (NopSource) NumVerts() int      { return 0 }

func (NopSource) CellLabel(i int) int     { return i }
func (NopSource) FaceLabel(i int) int     { return i }
func (NopSource) VertLabel(i int) int     { return i }
func (NopSource) BoundaryLabel(i int) int { return i }
func (NopSource) RegionLabel(i int) int   { return i }

func (NopSource) CellFaceCount(cellLabel int) int          { return 0 }
func (NopSource) CellCentroid(cellLabel int) geom.Point3   { return geom.Point3{} }
func (NopSource) CellVolume(cellLabel int) float64         { return 0 }
func (NopSource) CellFaceLabels(cellLabel int) []int       { return nil }

func (NopSource) FaceIsBoundary(faceLabel int) bool      { return false }
func (NopSource) FaceVertLabels(faceLabel int) []int     { return nil }
func (NopSource) FaceCell1Label(faceLabel int) int       { return 0 }
func (NopSource) FaceCell2Label(faceLabel int) int       { return 0 }
func (NopSource) FaceBoundaryLabel(faceLabel int) int    { return 0 }
func (NopSource) FaceArea(faceLabel int) float64         { return 0 }
func (NopSource) FaceLambda(faceLabel int) float64       { return 0 }
func (NopSource) FaceNormal(faceLabel int) geom.Vector3  { return geom.Vector3{} }
func (NopSource) FaceCentroid(faceLabel int) geom.Point3 { return geom.Point3{} }

func (NopSource) BoundaryFaceLabel(boundaryLabel int) int    { return 0 }
func (NopSource) BoundaryVertLabels(boundaryLabel int) []int { return nil }
func (NopSource) BoundaryRegionLabel(boundaryLabel int) int  { return 0 }
func (NopSource) BoundaryWallDist(boundaryLabel int) float64 { return 0 }

func (NopSource) RegionData(regionLabel int) Region { return Region{} }

func (NopSource) VertPos(vertLabel int) geom.Point3 { return geom.Point3{} }

func (NopSource) PartitionOf(cellLabel int) int { return 0 }

var _ Source = NopSource{}
