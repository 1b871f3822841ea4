// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package genmesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_brick01_counts(tst *testing.T) {
	b := NewBrick(3, 1, 1, 1, 1, 1)
	require.Equal(tst, 3, b.NumCells())
	require.Equal(tst, 1, b.NumRegions())
	// axis-0 planes: 4 * (ny*nz=1) = 4; axis-1: 2 * (nx*nz=3) = 6;
	// axis-2: 2 * (nx*ny=3) = 6.
	require.Equal(tst, 16, b.NumFaces())
	// axis-0 has 2 interior planes (1 face each) out of 4; axis-1 and
	// axis-2 are entirely boundary since ny=nz=1.
	require.Equal(tst, 14, b.NumBoundaries())
}

func Test_brick02_cell_centroids(tst *testing.T) {
	b := NewBrick(3, 1, 1, 1, 1, 1)
	c0 := b.CellCentroid(b.CellLabel(0))
	require.InDelta(tst, 0.5, c0.X[0], 1e-12)
	c2 := b.CellCentroid(b.CellLabel(2))
	require.InDelta(tst, 2.5, c2.X[0], 1e-12)
}

func Test_brick03_partition_single_rank(tst *testing.T) {
	b := NewBrick(3, 1, 1, 1, 1, 1)
	for i := 0; i < b.NumCells(); i++ {
		require.Equal(tst, 0, b.PartitionOf(b.CellLabel(i)))
	}
}

func Test_brick04_face_linkage(tst *testing.T) {
	b := NewBrick(2, 1, 1, 1, 1, 1)
	boundaryCount, interiorCount := 0, 0
	for i := 0; i < b.NumFaces(); i++ {
		label := b.FaceLabel(i)
		if b.FaceIsBoundary(label) {
			boundaryCount++
			require.GreaterOrEqual(tst, b.FaceCell1Label(label), 0)
		} else {
			interiorCount++
			require.NotEqual(tst, b.FaceCell1Label(label), b.FaceCell2Label(label))
		}
	}
	// a 2x1x1 brick has exactly one interior face (the shared x=1 plane).
	require.Equal(tst, 1, interiorCount)
	require.Equal(tst, boundaryCount+interiorCount, b.NumFaces())
}

func Test_brick05_region_data(tst *testing.T) {
	b := NewBrick(1, 1, 1, 1, 1, 1)
	r := b.RegionData(0)
	require.Equal(tst, "wall", r.Type)
}
