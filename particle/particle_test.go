// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"testing"

	"github.com/cpmech/cuptrace/geom"
	"github.com/stretchr/testify/require"
)

func Test_particle01_new_defaults(tst *testing.T) {
	p := New(7, geom.NewPoint3(1, 2, 3), geom.NewVector3(0, 0, 0), 2, 5)
	require.Equal(tst, int64(7), p.ID)
	require.Equal(tst, 5, p.CellGlobal)
	require.Equal(tst, Sentinel, p.LastCellGlobal)
	require.Equal(tst, Sentinel, p.LastLastCellGlobal)
	require.Equal(tst, Sentinel, p.EntryFaceLocal)
	require.Equal(tst, 2, p.Rank)
	require.True(tst, p.Active)
	require.Equal(tst, p.Position, p.InFlightPos)
}

func Test_particle02_copy_is_independent(tst *testing.T) {
	p := New(1, geom.NewPoint3(0, 0, 0), geom.NewVector3(1, 0, 0), 0, 0)
	snap := p.Copy()
	p.Position = geom.NewPoint3(9, 9, 9)
	p.Active = false
	require.InDelta(tst, 0.0, snap.Position.X[0], 1e-12)
	require.True(tst, snap.Active)
}
