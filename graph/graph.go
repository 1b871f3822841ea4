// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the Distributed Cell Graph of spec.md §4.1: the
// partitioned adjacency of owned and ghost nodes that the mesh's finalise
// step and the exchange pattern are both built on top of.
package graph

import (
	"sort"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/internal/netio"
)

// edge is an undirected pair of labels, recorded in label space until
// Finalize translates everything to local indices.
type edge struct {
	a, b int
}

// Graph is the distributed cell graph. Labels are caller-supplied opaque
// integers (matching gofem's int Cell/Vert ids): construction accumulates
// nodes and edges in label space with no global numbering, and Finalize is
// the one collective step that assigns dense local/global indices.
type Graph struct {
	comm *netio.Comm

	finalized bool

	ownedLabels []int
	ghostLabels []int
	labelSeen   map[int]bool
	edges       []edge

	// populated by Finalize
	labelToLocal  map[int]int
	localToGlobal []int
	ownerOfLocal  []int // rank owning each local index; -1 until resolved
	numOwned      int
	numGhost      int
	globalToLocal map[int]int // lazily built by GlobalToLocal
}

// New creates an empty graph bound to comm. Pass nil to use the default
// process-wide MPI world.
func New(comm *netio.Comm) *Graph {
	if comm == nil {
		comm = netio.New()
	}
	return &Graph{
		comm:      comm,
		labelSeen: make(map[int]bool),
	}
}

// AddLocalNode registers a locally-owned node under label.
func (o *Graph) AddLocalNode(label int) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "graph: AddLocalNode after Finalize")
	}
	if o.labelSeen[label] {
		return errs.New(errs.DuplicateNode, "graph: duplicate node label %d", label)
	}
	o.labelSeen[label] = true
	o.ownedLabels = append(o.ownedLabels, label)
	return nil
}

// AddGhostNode registers a ghost (shadow) node under label.
func (o *Graph) AddGhostNode(label int) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "graph: AddGhostNode after Finalize")
	}
	if o.labelSeen[label] {
		return errs.New(errs.DuplicateNode, "graph: duplicate node label %d", label)
	}
	o.labelSeen[label] = true
	o.ghostLabels = append(o.ghostLabels, label)
	return nil
}

// AddUndirectedEdge records an edge between two already-registered nodes.
// A self-loop, an edge to an unregistered label, or an edge between two
// ghost nodes is a contract violation.
func (o *Graph) AddUndirectedEdge(label1, label2 int) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "graph: AddUndirectedEdge after Finalize")
	}
	if label1 == label2 {
		return errs.New(errs.InvalidEdge, "graph: self-loop edge on label %d", label1)
	}
	if !o.labelSeen[label1] {
		return errs.New(errs.InvalidLabel, "graph: edge references unknown label %d", label1)
	}
	if !o.labelSeen[label2] {
		return errs.New(errs.InvalidLabel, "graph: edge references unknown label %d", label2)
	}
	if o.isGhostLabel(label1) && o.isGhostLabel(label2) {
		return errs.New(errs.InvalidEdge, "graph: ghost-to-ghost edge %d-%d", label1, label2)
	}
	o.edges = append(o.edges, edge{a: label1, b: label2})
	return nil
}

func (o *Graph) isGhostLabel(label int) bool {
	for _, l := range o.ghostLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Finalize is the collective step of spec.md §4.1: it assigns dense local
// indices (owned 0..L-1, then ghost L..L+G-1), derives global indices from
// a prefix scan over owned counts, and discovers ghost ownership by having
// every rank publish the labels (and global indices) it owns.
func (o *Graph) Finalize() error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "graph: Finalize called twice")
	}

	numOwned := len(o.ownedLabels)
	numGhost := len(o.ghostLabels)
	o.labelToLocal = make(map[int]int, numOwned+numGhost)
	for i, label := range o.ownedLabels {
		o.labelToLocal[label] = i
	}
	for i, label := range o.ghostLabels {
		o.labelToLocal[label] = numOwned + i
	}

	// prefix scan over owned counts: every rank learns every other rank's
	// owned-node count via the all-reduce-sum trick, then computes its own
	// exclusive prefix sum locally.
	counts := o.comm.AllGatherCounts(numOwned)
	base := 0
	for r := 0; r < netio.Rank(); r++ {
		base += counts[r]
	}

	o.localToGlobal = make([]int, numOwned+numGhost)
	o.ownerOfLocal = make([]int, numOwned+numGhost)
	me := netio.Rank()
	for i := range o.ownedLabels {
		o.localToGlobal[i] = base + i
		o.ownerOfLocal[i] = me
	}
	for i := range o.ghostLabels {
		o.ownerOfLocal[numOwned+i] = -1 // resolved below
	}

	// ghost ownership discovery: publish (label, globalIdx) for every
	// owned node, then every rank matches its ghost labels against the
	// union of all publications.
	owner, global, err := o.discoverGhostOwners(counts, base)
	if err != nil {
		return err
	}
	for i, label := range o.ghostLabels {
		r, ok := owner[label]
		if !ok {
			return errs.New(errs.InvalidLabel, "graph: no owner found for ghost label %d", label)
		}
		if r == me {
			return errs.New(errs.InvalidEdge, "graph: ghost node %d resolved to self as owner", label)
		}
		o.ownerOfLocal[numOwned+i] = r
		o.localToGlobal[numOwned+i] = global[label]
	}

	o.numOwned = numOwned
	o.numGhost = numGhost
	o.finalized = true
	return nil
}

// discoverGhostOwners performs the all-to-all publication step: every rank
// sends its (label, globalIdx) pairs to every other rank and receives
// theirs back, using the per-rank owned counts already gathered for the
// prefix scan so every receive buffer can be sized up front.
func (o *Graph) discoverGhostOwners(counts []int, base int) (owner map[int]int, global map[int]int, err error) {
	n := netio.Size()
	me := netio.Rank()
	owner = make(map[int]int)
	global = make(map[int]int)

	// record our own publication immediately
	for i, label := range o.ownedLabels {
		owner[label] = me
		global[label] = base + i
	}

	if n == 1 {
		return owner, global, nil
	}

	mine := make([]float64, 2*len(o.ownedLabels))
	for i, label := range o.ownedLabels {
		mine[2*i] = float64(label)
		mine[2*i+1] = float64(base + i)
	}

	var sendReqs, recvReqs []*netio.Request
	recvBufs := make([][]float64, n)
	for p := 0; p < n; p++ {
		if p == me {
			continue
		}
		recvBufs[p] = make([]float64, 2*counts[p])
		if len(recvBufs[p]) > 0 {
			recvReqs = append(recvReqs, o.comm.IRecv(p, recvBufs[p]))
		}
		if len(mine) > 0 {
			sendReqs = append(sendReqs, o.comm.ISend(p, mine))
		}
	}
	if err := netio.WaitAll(sendReqs); err != nil {
		return nil, nil, errs.New(errs.MessagingFailure, "graph: publish owned labels: %v", err)
	}
	if err := netio.WaitAll(recvReqs); err != nil {
		return nil, nil, errs.New(errs.MessagingFailure, "graph: receive owned labels: %v", err)
	}

	for p := 0; p < n; p++ {
		if p == me {
			continue
		}
		buf := recvBufs[p]
		for i := 0; i < len(buf)/2; i++ {
			label := int(buf[2*i])
			global[label] = int(buf[2*i+1])
			owner[label] = p
		}
	}
	return owner, global, nil
}

// LabelToLocal returns the local index assigned to label.
func (o *Graph) LabelToLocal(label int) (int, error) {
	if !o.finalized {
		return 0, errs.New(errs.NotFinalised, "graph: LabelToLocal before Finalize")
	}
	idx, ok := o.labelToLocal[label]
	if !ok {
		return 0, errs.New(errs.InvalidLabel, "graph: unknown label %d", label)
	}
	return idx, nil
}

// LocalToGlobal returns the global index of a local index.
func (o *Graph) LocalToGlobal(local int) (int, error) {
	if !o.finalized {
		return 0, errs.New(errs.NotFinalised, "graph: LocalToGlobal before Finalize")
	}
	if local < 0 || local >= len(o.localToGlobal) {
		return 0, errs.New(errs.InvalidIndex, "graph: local index %d out of range", local)
	}
	return o.localToGlobal[local], nil
}

// GlobalToLocal returns the local index of global, if global is known on
// this rank (owned or ghost); ok is false otherwise (the cell simply is
// not present locally, not a contract violation).
func (o *Graph) GlobalToLocal(global int) (local int, ok bool) {
	if o.globalToLocal == nil {
		o.globalToLocal = make(map[int]int, len(o.localToGlobal))
		for i, g := range o.localToGlobal {
			o.globalToLocal[g] = i
		}
	}
	local, ok = o.globalToLocal[global]
	return local, ok
}

// ExistsGhost reports whether local refers to a ghost node.
func (o *Graph) ExistsGhost(local int) bool {
	return o.finalized && local >= o.numOwned && local < o.numOwned+o.numGhost
}

// OwnerOf returns the owning rank of a local index.
func (o *Graph) OwnerOf(local int) (int, error) {
	if !o.finalized {
		return 0, errs.New(errs.NotFinalised, "graph: OwnerOf before Finalize")
	}
	if local < 0 || local >= len(o.ownerOfLocal) {
		return 0, errs.New(errs.InvalidIndex, "graph: local index %d out of range", local)
	}
	return o.ownerOfLocal[local], nil
}

// NumOwned returns the number of locally-owned nodes (band [0, NumOwned)).
func (o *Graph) NumOwned() int { return o.numOwned }

// NumGhost returns the number of ghost nodes (band [NumOwned, NumOwned+NumGhost)).
func (o *Graph) NumGhost() int { return o.numGhost }

// Finalized reports whether Finalize has completed.
func (o *Graph) Finalized() bool { return o.finalized }

// Comm returns the communicator handle the graph was built on, so callers
// (the mesh, the exchange pattern) can share its tag/transport.
func (o *Graph) Comm() *netio.Comm { return o.comm }

// EdgesByLocal returns every edge translated to (local index a, local index
// b), sorted for determinism; used by exchange.Pattern to build its CSRs.
func (o *Graph) EdgesByLocal() ([][2]int, error) {
	if !o.finalized {
		return nil, errs.New(errs.NotFinalised, "graph: EdgesByLocal before Finalize")
	}
	out := make([][2]int, 0, len(o.edges))
	for _, e := range o.edges {
		a := o.labelToLocal[e.a]
		b := o.labelToLocal[e.b]
		out = append(out, [2]int{a, b})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out, nil
}
