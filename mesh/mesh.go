// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/graph"
	"github.com/cpmech/cuptrace/internal/netio"
)

// provisionalCell is a cell record as submitted during construction, before
// Finalize permutes storage into the graph's dense local order (spec.md
// §9, "Two-phase cell indexing").
type provisionalCell struct {
	label    int
	centroid geom.Point3
	volume   float64
	ghost    bool
}

// Mesh is the Unstructured Mesh of spec.md §4.2. The zero value is not
// usable; construct with New.
type Mesh struct {
	graph *graph.Graph
	comm  *netio.Comm

	finalized bool

	// construction-phase storage (label space)
	cellsByLabel map[int]*provisionalCell
	cellOrder    []int // insertion order, for deterministic iteration

	verts      []*Vertex
	vertLabel  map[int]int // label -> index into verts

	regions     []*Region
	regionLabel map[int]int

	boundaries     []*Boundary
	boundaryLabel  map[int]int

	faces       []*Face
	faceLabel   map[int]int
	seenCellEdge map[[2]int]bool // dedupe (cell1,cell2) interior faces

	// post-Finalize storage (dense local-index space)
	cells []*Cell

	cellFaceCSR struct {
		offsets []int
		idx     []int
	}
}

// New creates an empty mesh bound to comm (nil uses the default MPI world).
func New(comm *netio.Comm) *Mesh {
	if comm == nil {
		comm = netio.New()
	}
	return &Mesh{
		graph:        graph.New(comm),
		comm:         comm,
		cellsByLabel: make(map[int]*provisionalCell),
		vertLabel:    make(map[int]int),
		regionLabel:  make(map[int]int),
		boundaryLabel: make(map[int]int),
		faceLabel:    make(map[int]int),
		seenCellEdge: make(map[[2]int]bool),
	}
}

// Graph returns the mesh's distributed cell graph.
func (o *Mesh) Graph() *graph.Graph { return o.graph }

// AddCell registers a cell, owned by this rank if owned is true, otherwise
// a ghost shadow of a cell owned elsewhere.
func (o *Mesh) AddCell(label int, owned bool, centroid geom.Point3, volume float64) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: AddCell after Finalize")
	}
	if _, exists := o.cellsByLabel[label]; exists {
		return errs.New(errs.DuplicateNode, "mesh: duplicate cell label %d", label)
	}
	if owned {
		if err := o.graph.AddLocalNode(label); err != nil {
			return err
		}
	} else {
		if err := o.graph.AddGhostNode(label); err != nil {
			return err
		}
	}
	o.cellsByLabel[label] = &provisionalCell{label: label, centroid: centroid, volume: volume, ghost: !owned}
	o.cellOrder = append(o.cellOrder, label)
	return nil
}

// AddVertex registers a vertex position.
func (o *Mesh) AddVertex(label int, pos geom.Point3) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: AddVertex after Finalize")
	}
	if _, exists := o.vertLabel[label]; exists {
		return errs.New(errs.DuplicateNode, "mesh: duplicate vertex label %d", label)
	}
	o.vertLabel[label] = len(o.verts)
	o.verts = append(o.verts, &Vertex{Label: label, Pos: pos})
	return nil
}

// AddRegion registers a boundary-condition region.
func (o *Mesh) AddRegion(label int, r Region) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: AddRegion after Finalize")
	}
	if _, exists := o.regionLabel[label]; exists {
		return errs.New(errs.DuplicateNode, "mesh: duplicate region label %d", label)
	}
	r.Label = label
	o.regionLabel[label] = len(o.regions)
	o.regions = append(o.regions, &r)
	return nil
}

// AddBoundary registers a boundary record, referencing its region and
// vertices by label. FaceID is left Sentinel until a boundary face links it
// (see AddFace); Finalize rejects any boundary still unlinked.
func (o *Mesh) AddBoundary(label, regionLabel int, vertexLabels []int) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: AddBoundary after Finalize")
	}
	if _, exists := o.boundaryLabel[label]; exists {
		return errs.New(errs.DuplicateNode, "mesh: duplicate boundary label %d", label)
	}
	if len(vertexLabels) < 3 || len(vertexLabels) > 4 {
		return errs.New(errs.InvalidVertexCount, "mesh: boundary %d has %d vertices", label, len(vertexLabels))
	}
	regionIdx, ok := o.regionLabel[regionLabel]
	if !ok {
		return errs.New(errs.InvalidLabel, "mesh: boundary %d references unknown region %d", label, regionLabel)
	}
	var vlocal [4]int
	vlocal[3] = Sentinel
	for i, vl := range vertexLabels {
		vi, ok := o.vertLabel[vl]
		if !ok {
			return errs.New(errs.InvalidLabel, "mesh: boundary %d references unknown vertex %d", label, vl)
		}
		vlocal[i] = vi
	}
	o.boundaryLabel[label] = len(o.boundaries)
	o.boundaries = append(o.boundaries, &Boundary{
		Label:    label,
		FaceID:   Sentinel,
		Verts:    vlocal,
		NVerts:   len(vertexLabels),
		RegionID: regionIdx,
	})
	return nil
}

// FaceGeometry bundles the geometric attributes a face is constructed with
// (kept as a struct to avoid an unwieldy AddFace parameter list).
type FaceGeometry struct {
	Lambda   float64
	Normal   geom.Vector3
	Centroid geom.Point3
	Rlencos  float64
	Area     float64
	XPAC     geom.Point3
	XNAC     geom.Point3
}

// AddFace registers a face. cell1Label must reference an existing cell.
// When isBoundary is false, cell2OrBoundaryLabel is a second cell label and
// the (cell1,cell2) pair becomes an edge of the cell graph; when true, it is
// a boundary label and the referenced boundary is back-linked to this face.
func (o *Mesh) AddFace(label, cell1Label, cell2OrBoundaryLabel int, isBoundary bool, vertexLabels []int, geometry FaceGeometry) error {
	if o.finalized {
		return errs.New(errs.AlreadyFinalised, "mesh: AddFace after Finalize")
	}
	if _, exists := o.faceLabel[label]; exists {
		return errs.New(errs.DuplicateNode, "mesh: duplicate face label %d", label)
	}
	if len(vertexLabels) < 3 || len(vertexLabels) > 4 {
		return errs.New(errs.InvalidVertexCount, "mesh: face %d has %d vertices", label, len(vertexLabels))
	}
	if _, ok := o.cellsByLabel[cell1Label]; !ok {
		return errs.New(errs.InvalidLabel, "mesh: face %d references unknown cell %d", label, cell1Label)
	}

	var vlocal [4]int
	vlocal[3] = Sentinel
	for i, vl := range vertexLabels {
		vi, ok := o.vertLabel[vl]
		if !ok {
			return errs.New(errs.InvalidLabel, "mesh: face %d references unknown vertex %d", label, vl)
		}
		vlocal[i] = vi
	}

	boundaryID := Sentinel
	if isBoundary {
		bidx, ok := o.boundaryLabel[cell2OrBoundaryLabel]
		if !ok {
			return errs.New(errs.InvalidLabel, "mesh: face %d references unknown boundary %d", label, cell2OrBoundaryLabel)
		}
		if o.boundaries[bidx].FaceID != Sentinel {
			return errs.New(errs.DuplicateFaceEdge, "mesh: boundary %d already linked to a face", cell2OrBoundaryLabel)
		}
		boundaryID = bidx
	} else {
		if _, ok := o.cellsByLabel[cell2OrBoundaryLabel]; !ok {
			return errs.New(errs.InvalidLabel, "mesh: face %d references unknown cell %d", label, cell2OrBoundaryLabel)
		}
		key := edgeKey(cell1Label, cell2OrBoundaryLabel)
		if o.seenCellEdge[key] {
			return errs.New(errs.DuplicateFaceEdge, "mesh: edge %d-%d already has a face", cell1Label, cell2OrBoundaryLabel)
		}
		if err := o.graph.AddUndirectedEdge(cell1Label, cell2OrBoundaryLabel); err != nil {
			return err
		}
		o.seenCellEdge[key] = true
	}

	o.faceLabel[label] = len(o.faces)
	f := &Face{
		Label:      label,
		Verts:      vlocal,
		NVerts:     len(vertexLabels),
		BoundaryID: boundaryID,
		Lambda:     geometry.Lambda,
		Normal:     geometry.Normal,
		Centroid:   geometry.Centroid,
		Rlencos:    geometry.Rlencos,
		Area:       geometry.Area,
		XPAC:       geometry.XPAC,
		XNAC:       geometry.XNAC,
	}
	// cell references are resolved to final local indices at Finalize time
	// (the permutation step of spec.md §4.2); until then we stash the
	// labels in the Cell1/Cell2 fields and fix them up in place.
	f.Cell1 = cell1Label
	if isBoundary {
		f.Cell2 = Sentinel
	} else {
		f.Cell2 = cell2OrBoundaryLabel
	}
	o.faces = append(o.faces, f)

	if isBoundary {
		o.boundaries[boundaryID].FaceID = len(o.faces) - 1
	}
	return nil
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Finalized reports whether Finalize has completed.
func (o *Mesh) Finalized() bool { return o.finalized }
