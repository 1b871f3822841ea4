// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"testing"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/genmesh"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/cpmech/cuptrace/mesh"
	"github.com/stretchr/testify/require"
)

func buildSingleRankMesh(tst *testing.T, nx, ny, nz int) *mesh.Mesh {
	b := genmesh.NewBrick(nx, ny, nz, 1, 1, 1)
	m, err := mesh.BuildPartition(b, netio.Rank(), netio.New())
	require.NoError(tst, err)
	return m
}

// Test_transport01_crosses_two_cells adapts the "particle crosses several
// cells of a structured brick" property: started inside the first cell of a
// 3x1x1 row travelling along +x, it is hand off at every interior face it
// reaches and ends inside the last cell, at x=2.6, once its travel time
// runs out (kept short of the domain's outer wall, which is out of scope
// here).
func Test_transport01_crosses_two_cells(tst *testing.T) {
	m := buildSingleRankMesh(tst, 3, 1, 1)
	sys := New(m)

	p := New(1, geom.NewPoint3(0.1, 0.5, 0.5), geom.NewVector3(1, 0, 0), netio.Rank(), 0)
	sys.AddParticle(p)

	require.NoError(tst, sys.Advance(2.5))

	require.True(tst, p.Active)
	require.Equal(tst, 2, p.CellGlobal)
	require.Equal(tst, 1, p.LastCellGlobal)
	require.Equal(tst, 0, p.LastLastCellGlobal)
	require.InDelta(tst, 2.6, p.Position.X[0], 1e-9)
	require.InDelta(tst, 0.5, p.Position.X[1], 1e-9)
	require.InDelta(tst, 0.5, p.Position.X[2], 1e-9)
}

// Test_transport02_wall_reflection is the single-cubic-cell wall-reflection
// property: a particle travelling at the +x wall reflects and the remainder
// of its travel time carries it back towards its starting point.
func Test_transport02_wall_reflection(tst *testing.T) {
	m := buildSingleRankMesh(tst, 1, 1, 1)
	sys := New(m)

	p := New(1, geom.NewPoint3(0.5, 0.5, 0.5), geom.NewVector3(1, 0, 0), netio.Rank(), 0)
	sys.AddParticle(p)

	require.NoError(tst, sys.Advance(1.0))

	require.True(tst, p.Active)
	require.Equal(tst, 0, p.CellGlobal)
	require.InDelta(tst, -1.0, p.Velocity.C[0], 1e-9)
	require.InDelta(tst, 0.0, p.Velocity.C[1], 1e-9)
	require.InDelta(tst, 0.0, p.Velocity.C[2], 1e-9)
	require.InDelta(tst, 0.5, p.Position.X[0], 1e-9)
	require.InDelta(tst, 0.5, p.Position.X[1], 1e-9)
	require.InDelta(tst, 0.5, p.Position.X[2], 1e-9)
}

// Test_transport03_stats reports active/migrating counts correctly at a
// single rank, where a particle can never be "migrating".
func Test_transport03_stats(tst *testing.T) {
	m := buildSingleRankMesh(tst, 1, 1, 1)
	sys := New(m)
	sys.AddParticle(New(1, geom.NewPoint3(0.5, 0.5, 0.5), geom.Zero3(), netio.Rank(), 0))
	sys.AddParticle(New(2, geom.NewPoint3(0.5, 0.5, 0.5), geom.Zero3(), netio.Rank(), 0))

	s := sys.Stats()
	require.Equal(tst, 2, s.Active)
	require.Equal(tst, 0, s.Migrating)
}

// Test_transport04_decay_deactivates confirms a particle whose DecayLevel
// reaches zero mid-step is dropped from the active list by Advance.
func Test_transport04_decay_deactivates(tst *testing.T) {
	m := buildSingleRankMesh(tst, 1, 1, 1)
	sys := New(m)

	// a small non-zero velocity that never reaches a face within dt, so the
	// step resolves via updatePositionAtomic's stay-in-cell branch rather
	// than a hand-off (a stationary particle never intersects any face).
	p := New(1, geom.NewPoint3(0.5, 0.5, 0.5), geom.NewVector3(0.01, 0, 0), netio.Rank(), 0)
	p.DecayLevel = 1.0
	p.DecayRate = 2.0 // drops to <=0 within the first elapsed slice
	sys.AddParticle(p)

	require.NoError(tst, sys.Advance(1.0))
	require.False(tst, p.Active)
	require.Empty(tst, sys.Particles())
}

// Test_transport05_thrash_detection confirms a particle bounced back into
// one of its two most-recently-visited cells is reported as a fatal
// RevisitedRecentCell condition rather than looping forever.
func Test_transport05_thrash_detection(tst *testing.T) {
	m := buildSingleRankMesh(tst, 3, 1, 1)
	sys := New(m)

	p := New(1, geom.NewPoint3(0.1, 0.5, 0.5), geom.NewVector3(1, 0, 0), netio.Rank(), 0)
	// pre-seed history as if the particle had travelled 2 -> 1 -> 0 and
	// now moves along +x, so the very next hand-off re-enters cell 1.
	p.LastCellGlobal = 1
	p.LastLastCellGlobal = 2
	p.CellGlobal = 0
	p.Velocity = geom.NewVector3(1, 0, 0)

	err := sys.Advance(5.0)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.RevisitedRecentCell))
}
