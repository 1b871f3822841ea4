// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"sort"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/exchange"
	"github.com/cpmech/gosl/io"
)

// Finalize performs the strict-order algorithm of spec.md §4.2:
//  1. collective CellGraph.Finalize
//  2. boundary-face linkage validation
//  3. reindex cell records to the graph's dense local order
//  4. build the cell->face CSR
//  5. derive per-cell stored face/vertex counts
//  6. exchange ghost-metadata counts (stored vertex, stored face)
//  7. mark the mesh finalised
func (o *Mesh) Finalize() error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: Finalize called twice")
	}

	// step 1: collective
	if err := o.graph.Finalize(); err != nil {
		return err
	}

	// step 2: every boundary must have been linked to a face
	for _, b := range o.boundaries {
		if b.FaceID == Sentinel {
			return errs.New(errs.UnmappedBoundaryFace, "mesh: boundary %d has no linked face", b.Label)
		}
	}

	// step 3: reindex cells into the graph's dense local order, and
	// rewrite every face's cell references from labels to local indices.
	n := o.graph.NumOwned() + o.graph.NumGhost()
	o.cells = make([]*Cell, n)
	for label, pc := range o.cellsByLabel {
		local, err := o.graph.LabelToLocal(label)
		if err != nil {
			return err
		}
		global, err := o.graph.LocalToGlobal(local)
		if err != nil {
			return err
		}
		o.cells[local] = &Cell{
			Label:    label,
			Centroid: pc.centroid,
			Volume:   pc.volume,
			Local:    local,
			Global:   global,
			Ghost:    o.graph.ExistsGhost(local),
		}
	}
	for _, f := range o.faces {
		c1, err := o.graph.LabelToLocal(f.Cell1)
		if err != nil {
			return err
		}
		f.Cell1 = c1
		if f.Cell2 != Sentinel {
			c2, err := o.graph.LabelToLocal(f.Cell2)
			if err != nil {
				return err
			}
			f.Cell2 = c2
		}
	}

	// step 4: cell->face CSR, one entry per cell per incident face,
	// ascending-sorted within each cell's row (determinism aid).
	rows := make([][]int, n)
	for fi, f := range o.faces {
		rows[f.Cell1] = append(rows[f.Cell1], fi)
		if f.Cell2 != Sentinel {
			rows[f.Cell2] = append(rows[f.Cell2], fi)
		}
	}
	offsets := make([]int, n+1)
	var idx []int
	for c := 0; c < n; c++ {
		sort.Ints(rows[c])
		idx = append(idx, rows[c]...)
		offsets[c+1] = len(idx)
	}
	o.cellFaceCSR.offsets = offsets
	o.cellFaceCSR.idx = idx

	// step 5: derive stored face/vertex counts from the CSR.
	for c := 0; c < n; c++ {
		faceIDs := o.FacesOfCell(c)
		o.cells[c].StoredFaceCount = len(faceIDs)
		seen := map[int]bool{}
		for _, fi := range faceIDs {
			f := o.faces[fi]
			for i := 0; i < f.NVerts; i++ {
				seen[f.Verts[i]] = true
			}
		}
		o.cells[c].StoredVertexCount = len(seen)
		if !o.cells[c].Ghost {
			o.cells[c].GlobalFaceCount = o.cells[c].StoredFaceCount
			o.cells[c].GlobalVertexCount = o.cells[c].StoredVertexCount
		}
	}

	// step 6: ghost cells cannot know their true counts locally; pull them
	// from owners via two integer exchanges over the same plan.
	pat, err := exchange.New(o.graph)
	if err != nil {
		return err
	}
	faceCounts := make([]int, n)
	vertCounts := make([]int, n)
	for c := 0; c < n; c++ {
		faceCounts[c] = o.cells[c].StoredFaceCount
		vertCounts[c] = o.cells[c].StoredVertexCount
	}
	if err := exchangeGhostCounts(pat, faceCounts, n); err != nil {
		return err
	}
	if err := exchangeGhostCounts(pat, vertCounts, n); err != nil {
		return err
	}
	for c := 0; c < n; c++ {
		if o.cells[c].Ghost {
			o.cells[c].GlobalFaceCount = faceCounts[c]
			o.cells[c].GlobalVertexCount = vertCounts[c]
		}
	}

	// step 7
	o.finalized = true
	return nil
}

func exchangeGhostCounts(pat *exchange.Pattern, counts []int, n int) error {
	if err := pat.StartInt(counts, n); err != nil {
		return err
	}
	return pat.StopInt(counts, n)
}

// FacesOfCell returns the (sorted) local face ids incident to cell c, via
// the cell->face CSR built at Finalize.
func (o *Mesh) FacesOfCell(c int) []int {
	return o.cellFaceCSR.idx[o.cellFaceCSR.offsets[c]:o.cellFaceCSR.offsets[c+1]]
}

// Cell returns the finalised cell record at local index c.
func (o *Mesh) Cell(c int) (*Cell, error) {
	if !o.finalized {
		return nil, errs.New(errs.NotFinalised, "mesh: Cell before Finalize")
	}
	if c < 0 || c >= len(o.cells) {
		return nil, errs.New(errs.InvalidIndex, "mesh: cell index %d out of range", c)
	}
	return o.cells[c], nil
}

// NumCells returns the number of locally-stored (owned + ghost) cells.
func (o *Mesh) NumCells() int { return len(o.cells) }

// Face returns the face record at local index f.
func (o *Mesh) Face(f int) (*Face, error) {
	if f < 0 || f >= len(o.faces) {
		return nil, errs.New(errs.InvalidIndex, "mesh: face index %d out of range", f)
	}
	return o.faces[f], nil
}

// Vertex returns the vertex record at local index v.
func (o *Mesh) Vertex(v int) (*Vertex, error) {
	if v < 0 || v >= len(o.verts) {
		return nil, errs.New(errs.InvalidIndex, "mesh: vertex index %d out of range", v)
	}
	return o.verts[v], nil
}

// Boundary returns the boundary record at local index b.
func (o *Mesh) Boundary(b int) (*Boundary, error) {
	if b < 0 || b >= len(o.boundaries) {
		return nil, errs.New(errs.InvalidIndex, "mesh: boundary index %d out of range", b)
	}
	return o.boundaries[b], nil
}

// Region returns the region record at local index r.
func (o *Mesh) Region(r int) (*Region, error) {
	if r < 0 || r >= len(o.regions) {
		return nil, errs.New(errs.InvalidIndex, "mesh: region index %d out of range", r)
	}
	return o.regions[r], nil
}

// FaceVerts returns the face's vertex positions, in order.
func (o *Mesh) FaceVerts(f *Face) ([]Vertex, error) {
	out := make([]Vertex, f.NVerts)
	for i := 0; i < f.NVerts; i++ {
		v, err := o.Vertex(f.Verts[i])
		if err != nil {
			return nil, err
		}
		out[i] = *v
	}
	return out, nil
}

// DescribeCounts returns a one-line debug summary, in the spirit of
// inp/msh.go's derived-data dumps.
func (o *Mesh) DescribeCounts() string {
	owned, ghost := 0, 0
	for _, c := range o.cells {
		if c.Ghost {
			ghost++
		} else {
			owned++
		}
	}
	return io.Sf("mesh: cells(owned=%d,ghost=%d) faces=%d verts=%d boundaries=%d regions=%d",
		owned, ghost, len(o.faces), len(o.verts), len(o.boundaries), len(o.regions))
}
