// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/cuptrace/internal/netio"

// BuildPartition drives a Source (spec.md §6) to populate and finalise a
// Mesh for the given rank: cells owned by rank are added as owned, any
// foreign cell sharing an interior face with an owned cell is added as a
// ghost, and only the faces/boundaries/vertices touching the resulting
// local cell set are materialised. This is the "one-time: Source ->
// Mesh.add* -> Mesh.finalize" flow of spec.md §2.
func BuildPartition(src Source, rank int, comm *netio.Comm) (*Mesh, error) {
	owned := make(map[int]bool)
	included := make(map[int]bool)
	for i := 0; i < src.NumCells(); i++ {
		label := src.CellLabel(i)
		if src.PartitionOf(label) == rank {
			owned[label] = true
			included[label] = true
		}
	}

	// one pass over interior faces to pick up the ghost layer: any foreign
	// cell adjacent to an owned cell across an interior face.
	for i := 0; i < src.NumFaces(); i++ {
		label := src.FaceLabel(i)
		if src.FaceIsBoundary(label) {
			continue
		}
		c1 := src.FaceCell1Label(label)
		c2 := src.FaceCell2Label(label)
		if owned[c1] {
			included[c2] = true
		}
		if owned[c2] {
			included[c1] = true
		}
	}

	// boundaries are only materialised if their owning cell is included,
	// so that Finalize's link-check never sees a boundary we deliberately
	// dropped.
	includedBoundary := make(map[int]bool)
	for i := 0; i < src.NumFaces(); i++ {
		label := src.FaceLabel(i)
		if !src.FaceIsBoundary(label) {
			continue
		}
		if included[src.FaceCell1Label(label)] {
			includedBoundary[src.FaceBoundaryLabel(label)] = true
		}
	}

	m := New(comm)

	for i := 0; i < src.NumCells(); i++ {
		label := src.CellLabel(i)
		if !included[label] {
			continue
		}
		if err := m.AddCell(label, owned[label], src.CellCentroid(label), src.CellVolume(label)); err != nil {
			return nil, err
		}
	}

	// vertices are only materialised if a face kept below uses them.
	includedVert := make(map[int]bool)
	for i := 0; i < src.NumFaces(); i++ {
		label := src.FaceLabel(i)
		if !included[src.FaceCell1Label(label)] {
			continue
		}
		if !src.FaceIsBoundary(label) && !included[src.FaceCell2Label(label)] {
			continue
		}
		for _, v := range src.FaceVertLabels(label) {
			includedVert[v] = true
		}
	}

	for i := 0; i < src.NumVerts(); i++ {
		label := src.VertLabel(i)
		if !includedVert[label] {
			continue
		}
		if err := m.AddVertex(label, src.VertPos(label)); err != nil {
			return nil, err
		}
	}

	for i := 0; i < src.NumRegions(); i++ {
		label := src.RegionLabel(i)
		if err := m.AddRegion(label, src.RegionData(label)); err != nil {
			return nil, err
		}
	}

	for i := 0; i < src.NumBoundaries(); i++ {
		label := src.BoundaryLabel(i)
		if !includedBoundary[label] {
			continue
		}
		region := src.BoundaryRegionLabel(label)
		verts := src.BoundaryVertLabels(label)
		if err := m.AddBoundary(label, region, verts); err != nil {
			return nil, err
		}
	}

	for i := 0; i < src.NumFaces(); i++ {
		label := src.FaceLabel(i)
		geometry := FaceGeometry{
			Lambda:   src.FaceLambda(label),
			Normal:   src.FaceNormal(label),
			Centroid: src.FaceCentroid(label),
			Area:     src.FaceArea(label),
		}
		if src.FaceIsBoundary(label) {
			c1 := src.FaceCell1Label(label)
			if !included[c1] {
				continue
			}
			boundaryLabel := src.FaceBoundaryLabel(label)
			if err := m.AddFace(label, c1, boundaryLabel, true, src.FaceVertLabels(label), geometry); err != nil {
				return nil, err
			}
		} else {
			c1 := src.FaceCell1Label(label)
			c2 := src.FaceCell2Label(label)
			if !included[c1] || !included[c2] {
				continue
			}
			if err := m.AddFace(label, c1, c2, false, src.FaceVertLabels(label), geometry); err != nil {
				return nil, err
			}
		}
	}

	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}
