// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/stretchr/testify/require"
)

// newTestGraph builds a graph on a plain netio.New() Comm: at Size()==1
// Graph.Finalize never touches the Transport (discoverGhostOwners
// short-circuits), so no point-to-point traffic is needed as long as no
// ghost node is registered.
func newTestGraph() *Graph {
	return New(netio.New())
}

func Test_graph01_owned_only(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(10))
	require.NoError(tst, g.AddLocalNode(20))
	require.NoError(tst, g.AddLocalNode(30))
	require.NoError(tst, g.AddUndirectedEdge(10, 20))
	require.NoError(tst, g.AddUndirectedEdge(20, 30))

	require.NoError(tst, g.Finalize())
	require.Equal(tst, 3, g.NumOwned())
	require.Equal(tst, 0, g.NumGhost())

	l10, err := g.LabelToLocal(10)
	require.NoError(tst, err)
	l20, err := g.LabelToLocal(20)
	require.NoError(tst, err)
	require.NotEqual(tst, l10, l20)

	glob, err := g.LocalToGlobal(l10)
	require.NoError(tst, err)
	require.Equal(tst, 0, glob) // single rank: base is always 0

	back, ok := g.GlobalToLocal(glob)
	require.True(tst, ok)
	require.Equal(tst, l10, back)

	_, ok = g.GlobalToLocal(999)
	require.False(tst, ok)
}

func Test_graph02_duplicate_label(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(1))
	err := g.AddLocalNode(1)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.DuplicateNode))
}

func Test_graph03_self_loop(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(1))
	err := g.AddUndirectedEdge(1, 1)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.InvalidEdge))
}

func Test_graph04_edge_unknown_label(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(1))
	err := g.AddUndirectedEdge(1, 2)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.InvalidLabel))
}

func Test_graph05_finalize_twice(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(1))
	require.NoError(tst, g.Finalize())
	err := g.Finalize()
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.AlreadyFinalised))
}

func Test_graph06_not_finalised(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(1))
	_, err := g.LabelToLocal(1)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.NotFinalised))
}

func Test_graph07_edges_by_local_sorted(tst *testing.T) {
	g := newTestGraph()
	require.NoError(tst, g.AddLocalNode(5))
	require.NoError(tst, g.AddLocalNode(1))
	require.NoError(tst, g.AddLocalNode(3))
	require.NoError(tst, g.AddUndirectedEdge(5, 1))
	require.NoError(tst, g.AddUndirectedEdge(1, 3))
	require.NoError(tst, g.Finalize())

	edges, err := g.EdgesByLocal()
	require.NoError(tst, err)
	require.Len(tst, edges, 2)
	for i := 1; i < len(edges); i++ {
		prev, cur := edges[i-1], edges[i]
		require.True(tst, prev[0] < cur[0] || (prev[0] == cur[0] && prev[1] <= cur[1]))
	}
}
