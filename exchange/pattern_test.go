// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"testing"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/graph"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/stretchr/testify/require"
)

func finalisedSingleRankGraph(tst *testing.T) *graph.Graph {
	g := graph.New(netio.New())
	require.NoError(tst, g.AddLocalNode(1))
	require.NoError(tst, g.AddLocalNode(2))
	require.NoError(tst, g.AddLocalNode(3))
	require.NoError(tst, g.AddUndirectedEdge(1, 2))
	require.NoError(tst, g.AddUndirectedEdge(2, 3))
	require.NoError(tst, g.Finalize())
	return g
}

func Test_exchange01_no_ghosts_empty_plan(tst *testing.T) {
	g := finalisedSingleRankGraph(tst)
	pat, err := New(g)
	require.NoError(tst, err)
	require.Empty(tst, pat.SendPeers())
	require.Empty(tst, pat.RecvPeers())
}

func Test_exchange02_roundtrip_noop(tst *testing.T) {
	g := finalisedSingleRankGraph(tst)
	pat, err := New(g)
	require.NoError(tst, err)

	data := []float64{10, 20, 30}
	require.NoError(tst, pat.Start(data, 3))
	require.NoError(tst, pat.Stop(data, 3))
	// no ghosts: data is untouched by an exchange with no peers.
	require.Equal(tst, []float64{10, 20, 30}, data)
}

func Test_exchange03_stop_without_start(tst *testing.T) {
	g := finalisedSingleRankGraph(tst)
	pat, err := New(g)
	require.NoError(tst, err)
	err = pat.Stop(make([]float64, 3), 3)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.LogicError))
}

func Test_exchange04_new_requires_finalised_graph(tst *testing.T) {
	g := graph.New(netio.New())
	require.NoError(tst, g.AddLocalNode(1))
	_, err := New(g)
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.NotFinalised))
}

func Test_exchange05_startint_stopint_noop(tst *testing.T) {
	g := finalisedSingleRankGraph(tst)
	pat, err := New(g)
	require.NoError(tst, err)

	data := []int{1, 2, 3}
	require.NoError(tst, pat.StartInt(data, 3))
	require.NoError(tst, pat.StopInt(data, 3))
	require.Equal(tst, []int{1, 2, 3}, data)
}
