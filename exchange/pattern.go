// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange implements the halo-exchange communicator plan of
// spec.md §4.3: a reusable pack/send/recv/unpack plan, built once from a
// graph.Graph and reused for every "one datum per cell" exchange the mesh
// and particle-transport packages need.
package exchange

import (
	"sort"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/graph"
	"github.com/cpmech/cuptrace/internal/netio"
)

// csr is a compressed-sparse-row table: Peers[i] owns the half-open range
// [Offsets[i], Offsets[i+1]) of Idx.
type csr struct {
	Peers   []int
	Offsets []int
	Idx     []int
}

func (c csr) row(peerPos int) []int {
	return c.Idx[c.Offsets[peerPos]:c.Offsets[peerPos+1]]
}

// Pattern is a reusable exchange plan bound to one graph.Graph. It owns the
// send/recv CSRs; Start/Stop may be called repeatedly across many time
// steps without rebuilding the plan. The staging buffers are not kept on
// the plan: every Start allocates fresh send/recv buffers sized to the
// CSRs.
type Pattern struct {
	comm *netio.Comm
	send csr
	recv csr

	// inFlight holds state between Start and Stop; nil when no exchange is
	// in progress (exchangeStop without a matching exchangeStart is a
	// contract violation per spec.md §4.3).
	inFlight *inFlightState

	// intScratch backs the StartInt/StopInt float64<->int adapter.
	intScratch []float64
}

type inFlightState struct {
	sendBuf []float64
	recvBuf []float64
	reqs    []*netio.Request
}

// New builds a Pattern from a finalised graph.Graph. The graph must outlive
// the pattern (spec.md §3, "an Exchange Plan borrows the Cell Graph").
func New(g *graph.Graph) (*Pattern, error) {
	if !g.Finalized() {
		return nil, errs.New(errs.NotFinalised, "exchange: graph must be finalised before building a Pattern")
	}
	edges, err := g.EdgesByLocal()
	if err != nil {
		return nil, err
	}

	sendSets := map[int]map[int]bool{} // peer -> set of owned local idx to send
	recvOwner := map[int]int{}         // ghost local idx -> owner peer

	for _, e := range edges {
		a, b := e[0], e[1]
		if err := classifyEdge(g, a, b, sendSets, recvOwner); err != nil {
			return nil, err
		}
		if err := classifyEdge(g, b, a, sendSets, recvOwner); err != nil {
			return nil, err
		}
	}

	sendCSR := buildSendCSR(sendSets)
	recvCSR := buildRecvCSR(recvOwner)

	return &Pattern{
		comm: g.Comm(),
		send: sendCSR,
		recv: recvCSR,
	}, nil
}

// classifyEdge records, for the directed half (from, to) of an undirected
// edge, a send entry if from is owned and to is a ghost neighbour, or a
// recv entry if from is a ghost and to is its owning-rank-local endpoint.
func classifyEdge(g *graph.Graph, from, to int, sendSets map[int]map[int]bool, recvOwner map[int]int) error {
	fromGhost := g.ExistsGhost(from)
	toGhost := g.ExistsGhost(to)
	if !fromGhost && toGhost {
		owner, err := g.OwnerOf(to)
		if err != nil {
			return err
		}
		if sendSets[owner] == nil {
			sendSets[owner] = map[int]bool{}
		}
		sendSets[owner][from] = true
	}
	if fromGhost && !toGhost {
		owner, err := g.OwnerOf(from)
		if err != nil {
			return err
		}
		recvOwner[from] = owner
	}
	return nil
}

func buildSendCSR(sendSets map[int]map[int]bool) csr {
	peers := make([]int, 0, len(sendSets))
	for p := range sendSets {
		peers = append(peers, p)
	}
	sort.Ints(peers)

	var idx []int
	offsets := []int{0}
	for _, p := range peers {
		local := make([]int, 0, len(sendSets[p]))
		for l := range sendSets[p] {
			local = append(local, l)
		}
		sort.Ints(local)
		idx = append(idx, local...)
		offsets = append(offsets, len(idx))
	}
	return csr{Peers: peers, Offsets: offsets, Idx: idx}
}

func buildRecvCSR(recvOwner map[int]int) csr {
	byPeer := map[int][]int{}
	for ghostLocal, owner := range recvOwner {
		byPeer[owner] = append(byPeer[owner], ghostLocal)
	}
	peers := make([]int, 0, len(byPeer))
	for p := range byPeer {
		peers = append(peers, p)
	}
	sort.Ints(peers)

	var idx []int
	offsets := []int{0}
	for _, p := range peers {
		local := byPeer[p]
		sort.Ints(local)
		idx = append(idx, local...)
		offsets = append(offsets, len(idx))
	}
	return csr{Peers: peers, Offsets: offsets, Idx: idx}
}

// Start packs data into the staging send buffer and posts non-blocking
// sends/recvs, per spec.md §4.3's Start algorithm. data is indexed by cell
// local index and has at least n entries.
func (o *Pattern) Start(data []float64, n int) error {
	if o.inFlight != nil {
		return errs.New(errs.LogicError, "exchange: Start called while a previous exchange is still in flight")
	}
	if n > len(data) {
		return errs.New(errs.SizeMismatch, "exchange: data has %d entries, need %d", len(data), n)
	}

	st := &inFlightState{
		sendBuf: make([]float64, len(o.send.Idx)),
		recvBuf: make([]float64, len(o.recv.Idx)),
	}
	for i, localIdx := range o.send.Idx {
		if localIdx < 0 || localIdx >= n {
			return errs.New(errs.InvalidIndex, "exchange: send index %d out of range", localIdx)
		}
		st.sendBuf[i] = data[localIdx]
	}

	// post receives first, then sends, matching spec.md §4.3's Start order.
	for pos, peer := range o.recv.Peers {
		row := o.recv.row(pos)
		offset := o.recv.Offsets[pos]
		buf := st.recvBuf[offset : offset+len(row)]
		st.reqs = append(st.reqs, o.comm.IRecv(peer, buf))
	}
	for pos, peer := range o.send.Peers {
		row := o.send.row(pos)
		offset := o.send.Offsets[pos]
		buf := st.sendBuf[offset : offset+len(row)]
		st.reqs = append(st.reqs, o.comm.ISend(peer, buf))
	}

	o.inFlight = st
	return nil
}

// Stop waits for the in-flight exchange to complete and unpacks ghost
// values into data, per spec.md §4.3's Stop algorithm.
func (o *Pattern) Stop(data []float64, n int) error {
	if o.inFlight == nil {
		return errs.New(errs.LogicError, "exchange: Stop without a matching Start")
	}
	st := o.inFlight
	o.inFlight = nil

	if err := netio.WaitAll(st.reqs); err != nil {
		return errs.New(errs.MessagingFailure, "exchange: %v", err)
	}
	for i, localIdx := range o.recv.Idx {
		if localIdx < 0 || localIdx >= n {
			return errs.New(errs.InvalidIndex, "exchange: recv index %d out of range", localIdx)
		}
		data[localIdx] = st.recvBuf[i]
	}
	return nil
}

// SendPeers returns the sorted send-peer ranks (for diagnostics/tests).
func (o *Pattern) SendPeers() []int { return append([]int(nil), o.send.Peers...) }

// RecvPeers returns the sorted recv-peer ranks (for diagnostics/tests).
func (o *Pattern) RecvPeers() []int { return append([]int(nil), o.recv.Peers...) }
